package service

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

// CabinStore reads cabins.
type CabinStore interface {
	GetByID(ctx context.Context, id int64) (*model.Cabin, error)
	List(ctx context.Context) ([]model.Cabin, error)
}

// BookingStore persists bookings. The Owned writes only touch rows of guestID.
type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ListByGuest(ctx context.Context, guestID int64) ([]model.GuestBooking, error)
	BookedDates(ctx context.Context, cabinID int64) ([]time.Time, error)
	Create(ctx context.Context, b model.NewBooking) (*model.Booking, error)
	UpdateOwned(ctx context.Context, id, guestID int64, u model.BookingUpdate) (*model.Booking, error)
	DeleteOwned(ctx context.Context, id, guestID int64) error
}

// GuestStore persists guest records.
type GuestStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Guest, error)
	Create(ctx context.Context, g model.NewGuest) (*model.Guest, error)
	Update(ctx context.Context, id int64, u model.GuestUpdate) (*model.Guest, error)
}

// SettingStore reads the single settings row.
type SettingStore interface {
	Get(ctx context.Context) (*model.Settings, error)
}

// CountryLister lists the selectable nationalities.
type CountryLister interface {
	List(ctx context.Context) ([]model.Country, error)
}

// Revalidator marks a previously rendered view stale.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}

// EventPublisher emits booking lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, ev model.BookingEvent) error
}
