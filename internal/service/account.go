package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

// AccountService serves the guest account area.
type AccountService struct {
	guests      GuestStore
	bookings    BookingStore
	countries   CountryLister
	revalidator Revalidator
	log         *slog.Logger
}

// NewAccountService constructs an AccountService with its dependencies.
func NewAccountService(
	guests GuestStore,
	bookings BookingStore,
	countries CountryLister,
	revalidator Revalidator,
	log *slog.Logger,
) *AccountService {
	return &AccountService{
		guests:      guests,
		bookings:    bookings,
		countries:   countries,
		revalidator: revalidator,
		log:         log,
	}
}

// Profile returns the guest record behind session.
func (s *AccountService) Profile(ctx context.Context, session *model.Session) (*model.Guest, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}
	guest, err := s.guests.GetByEmail(ctx, session.Email)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, model.ErrNotAuthenticated
	}
	return guest, nil
}

// UpdateProfile validates and stores the national id and nationality of
// the session's guest.
func (s *AccountService) UpdateProfile(ctx context.Context, session *model.Session, form ProfileForm) (*model.Guest, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}

	if !validNationalID(form.NationalID) {
		return nil, model.Validation("nationalID", "Must be alphanumeric")
	}

	nationality, flag := splitNationality(form.Nationality)
	if strings.TrimSpace(nationality) == "" {
		return nil, model.Validation("nationality", "Please select your nationality")
	}

	guest, err := s.guests.Update(ctx, session.GuestID, model.GuestUpdate{
		NationalID:  form.NationalID,
		Nationality: nationality,
		CountryFlag: flag,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "profile updated", slog.Int64("guest_id", session.GuestID))

	rctx := context.WithoutCancel(ctx)
	if err := s.revalidator.Revalidate(rctx, ProfilePath); err != nil {
		s.log.WarnContext(rctx, "revalidate failed", slog.String("path", ProfilePath), slog.Any("error", err))
	}
	return guest, nil
}

// Reservations lists the session guest's bookings.
func (s *AccountService) Reservations(ctx context.Context, session *model.Session) ([]model.GuestBooking, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}
	bookings, err := s.bookings.ListByGuest(ctx, session.GuestID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []model.GuestBooking{}
	}
	return bookings, nil
}

// Reservation loads one booking for the edit form. Bookings of other
// guests are refused.
func (s *AccountService) Reservation(ctx context.Context, session *model.Session, bookingID int64) (*model.Booking, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}
	if bookingID < 1 {
		return nil, model.ErrBookingNotFound
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != session.GuestID {
		return nil, model.ErrNotAuthorized
	}
	return booking, nil
}

// Countries returns the selectable nationalities.
func (s *AccountService) Countries(ctx context.Context) ([]model.Country, error) {
	return s.countries.List(ctx)
}
