// Package events publishes booking lifecycle events to Kafka so staff
// tooling can react to guest-initiated changes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

const (
	batchTimeout = 5 * time.Millisecond
	maxAttempts  = 3
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka writes BookingEvents to a single topic, keyed by booking id so
// every event of one booking lands on the same partition.
type Kafka struct {
	w messageWriter
}

// NewKafka builds a publisher for brokers/topic. Each Publish is a single
// message, so batches are flushed as soon as they hold one.
func NewKafka(brokers []string, topic string, writeTimeout time.Duration) *Kafka {
	return &Kafka{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           batchTimeout,
		MaxAttempts:            maxAttempts,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}}
}

// Publish serialises ev as JSON and writes it.
func (k *Kafka) Publish(ctx context.Context, ev model.BookingEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.BookingID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", ev.Type, err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.w.Close()
}

// Noop drops every event. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, model.BookingEvent) error { return nil }

func (Noop) Close() error { return nil }
