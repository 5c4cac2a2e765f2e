package model

import "time"

// BookingEventType names a booking lifecycle transition.
type BookingEventType string

const (
	BookingCreated BookingEventType = "booking.created"
	BookingUpdated BookingEventType = "booking.updated"
	BookingDeleted BookingEventType = "booking.deleted"
)

// BookingEvent is emitted after a successful booking mutation.
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  int64            `json:"booking_id"`
	CabinID    int64            `json:"cabin_id,omitempty"`
	GuestID    int64            `json:"guest_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}
