// Package repository implements all database queries for the cabin booking system.
// It uses pgx directly (no ORM); every row is read as an untyped record and
// handed to the schema package before it leaves this layer.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/schema"
)

// Querier is the subset of *pgxpool.Pool the repositories rely on.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// queryOne runs sql and collects exactly one row as a record.
// pgx.ErrNoRows is returned untouched so callers can map it.
func queryOne(ctx context.Context, db Querier, sql string, args ...any) (schema.Record, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
}

// queryAll runs sql and collects every row as a record.
func queryAll(ctx context.Context, db Querier, sql string, args ...any) ([]schema.Record, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}

// fail logs the cause and returns the fixed guest-facing backend error.
func fail(ctx context.Context, log *slog.Logger, message string, cause error) error {
	log.ErrorContext(ctx, message, slog.Any("error", cause))
	return model.Backend(message, cause)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExpandDays turns booked intervals into the calendar days they occupy.
// Both endpoints are included and days are flattened in input order.
func ExpandDays(ranges []model.DateRange) []time.Time {
	var days []time.Time
	for _, r := range ranges {
		end := startOfDay(r.End)
		for d := startOfDay(r.Start); !d.After(end); d = d.AddDate(0, 0, 1) {
			days = append(days, d)
		}
	}
	return days
}

func wrapParse(entity string, err error) error {
	return fmt.Errorf("parse %s: %w", entity, err)
}
