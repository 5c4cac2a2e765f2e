package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

var discard = slog.New(slog.DiscardHandler)

type mockCabins struct{ mock.Mock }

func (m *mockCabins) GetByID(ctx context.Context, id int64) (*model.Cabin, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Cabin)
	return c, args.Error(1)
}

func (m *mockCabins) List(ctx context.Context) ([]model.Cabin, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]model.Cabin)
	return c, args.Error(1)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.Booking)
	return b, args.Error(1)
}

func (m *mockBookings) ListByGuest(ctx context.Context, guestID int64) ([]model.GuestBooking, error) {
	args := m.Called(ctx, guestID)
	b, _ := args.Get(0).([]model.GuestBooking)
	return b, args.Error(1)
}

func (m *mockBookings) BookedDates(ctx context.Context, cabinID int64) ([]time.Time, error) {
	args := m.Called(ctx, cabinID)
	d, _ := args.Get(0).([]time.Time)
	return d, args.Error(1)
}

func (m *mockBookings) Create(ctx context.Context, b model.NewBooking) (*model.Booking, error) {
	args := m.Called(ctx, b)
	out, _ := args.Get(0).(*model.Booking)
	return out, args.Error(1)
}

func (m *mockBookings) UpdateOwned(ctx context.Context, id, guestID int64, u model.BookingUpdate) (*model.Booking, error) {
	args := m.Called(ctx, id, guestID, u)
	out, _ := args.Get(0).(*model.Booking)
	return out, args.Error(1)
}

func (m *mockBookings) DeleteOwned(ctx context.Context, id, guestID int64) error {
	return m.Called(ctx, id, guestID).Error(0)
}

type mockGuests struct{ mock.Mock }

func (m *mockGuests) GetByEmail(ctx context.Context, email string) (*model.Guest, error) {
	args := m.Called(ctx, email)
	g, _ := args.Get(0).(*model.Guest)
	return g, args.Error(1)
}

func (m *mockGuests) Create(ctx context.Context, g model.NewGuest) (*model.Guest, error) {
	args := m.Called(ctx, g)
	out, _ := args.Get(0).(*model.Guest)
	return out, args.Error(1)
}

func (m *mockGuests) Update(ctx context.Context, id int64, u model.GuestUpdate) (*model.Guest, error) {
	args := m.Called(ctx, id, u)
	out, _ := args.Get(0).(*model.Guest)
	return out, args.Error(1)
}

type mockSettings struct{ mock.Mock }

func (m *mockSettings) Get(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*model.Settings)
	return s, args.Error(1)
}

type mockCountries struct{ mock.Mock }

func (m *mockCountries) List(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]model.Country)
	return c, args.Error(1)
}

type mockRevalidator struct{ mock.Mock }

func (m *mockRevalidator) Revalidate(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, ev model.BookingEvent) error {
	return m.Called(ctx, ev).Error(0)
}
