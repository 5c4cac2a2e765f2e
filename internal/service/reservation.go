// Package service implements the booking workflow, validation, and
// orchestration between HTTP handlers and the repository layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

const (
	ThankYouPath         = "/cabins/thankyou"
	ReservationsPath     = "/account/reservations"
	ProfilePath          = "/account/profile"
	editReservationPath  = "/account/reservations/edit/%d"
	cabinPath            = "/cabins/%d"
	numGuestsMessage     = "Number of guests must be a whole number of at least 1"
	invalidBookingIDText = "Invalid booking id"

	// SideEffectTimeout bounds revalidation and event publishing after a write.
	SideEffectTimeout = 3 * time.Second
)

// CabinDetailPath is the cached detail view of a cabin.
func CabinDetailPath(cabinID int64) string {
	return fmt.Sprintf(cabinPath, cabinID)
}

// EditReservationPath is the cached edit view of a booking.
func EditReservationPath(bookingID int64) string {
	return fmt.Sprintf(editReservationPath, bookingID)
}

// ReservationService performs the guest-initiated booking mutations.
// Every operation is gated by the session's guest id.
type ReservationService struct {
	cabins      CabinStore
	bookings    BookingStore
	settings    SettingStore
	revalidator Revalidator
	events      EventPublisher
	log         *slog.Logger
	now         func() time.Time

	sideEffectTimeout time.Duration
}

// NewReservationService constructs a ReservationService with its dependencies.
func NewReservationService(
	cabins CabinStore,
	bookings BookingStore,
	settings SettingStore,
	revalidator Revalidator,
	events EventPublisher,
	log *slog.Logger,
) *ReservationService {
	return &ReservationService{
		cabins:      cabins,
		bookings:    bookings,
		settings:    settings,
		revalidator: revalidator,
		events:      events,
		log:         log,
		now:         time.Now,

		sideEffectTimeout: SideEffectTimeout,
	}
}

// Create books draft's cabin for the session's guest. Price, night count
// and status are assembled here; nothing the client sends is trusted for them.
func (s *ReservationService) Create(ctx context.Context, session *model.Session, draft BookingDraft, form ReservationForm) (*Outcome, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}
	if draft.StartDate == nil || draft.EndDate == nil {
		return nil, model.ErrMissingDates
	}

	numGuests, err := parsePositive("numGuests", form.NumGuests, numGuestsMessage)
	if err != nil {
		return nil, err
	}
	observations := optionalObservations(form.Observations)

	start, end := startOfDay(*draft.StartDate), startOfDay(*draft.EndDate)
	if !end.After(start) {
		return nil, model.Validation("endDate", "End date must be after start date")
	}
	if start.Before(startOfDay(s.now())) {
		return nil, model.Validation("startDate", "Start date cannot be in the past")
	}

	var (
		cabin    *model.Cabin
		settings *model.Settings
		booked   []time.Time
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cabin, err = s.cabins.GetByID(gctx, draft.CabinID)
		return err
	})
	g.Go(func() (err error) {
		settings, err = s.settings.Get(gctx)
		return err
	})
	g.Go(func() (err error) {
		booked, err = s.bookings.BookedDates(gctx, draft.CabinID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	numNights := nightsBetween(start, end)
	if numNights < settings.MinBookingLength || numNights > settings.MaxBookingLength {
		return nil, model.Validation("dates", fmt.Sprintf(
			"Bookings must be between %d and %d nights", settings.MinBookingLength, settings.MaxBookingLength))
	}

	if err := checkGuestLimit(numGuests, cabin, settings); err != nil {
		return nil, err
	}

	if overlaps(start, end, booked) {
		return nil, model.ErrDatesUnavailable
	}

	cabinPrice := numNights * model.CabinPrice{RegularPrice: cabin.RegularPrice, Discount: cabin.Discount}.Nightly()
	booking, err := s.bookings.Create(ctx, model.NewBooking{
		StartDate:    start,
		EndDate:      end,
		NumNights:    numNights,
		NumGuests:    int(numGuests),
		CabinPrice:   cabinPrice,
		ExtrasPrice:  0,
		TotalPrice:   cabinPrice,
		Status:       model.StatusUnconfirmed,
		HasBreakfast: false,
		IsPaid:       false,
		Observations: observations,
		CabinID:      cabin.ID,
		GuestID:      session.GuestID,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "booking created",
		slog.Int64("booking_id", booking.ID),
		slog.Int64("cabin_id", cabin.ID),
		slog.Int64("guest_id", session.GuestID),
		slog.Int("num_nights", numNights),
	)
	s.afterMutation(ctx, model.BookingEvent{
		Type:      model.BookingCreated,
		BookingID: booking.ID,
		CabinID:   booking.CabinID,
		GuestID:   session.GuestID,
	}, CabinDetailPath(cabin.ID), ReservationsPath)

	return &Outcome{Booking: booking, Redirect: ThankYouPath}, nil
}

// Update edits the guest count and observations of one of the session's bookings.
func (s *ReservationService) Update(ctx context.Context, session *model.Session, form EditReservationForm) (*Outcome, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}

	bookingID, err := parsePositive("bookingId", form.BookingID, invalidBookingIDText)
	if err != nil {
		return nil, err
	}
	numGuests, err := parsePositive("numGuests", form.NumGuests, numGuestsMessage)
	if err != nil {
		return nil, err
	}
	observations := optionalObservations(form.Observations)

	owned, err := s.ownedBooking(ctx, session, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCabinGuestLimit(ctx, owned.CabinID, numGuests); err != nil {
		return nil, err
	}

	booking, err := s.bookings.UpdateOwned(ctx, bookingID, session.GuestID, model.BookingUpdate{
		NumGuests:    int(numGuests),
		Observations: observations,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "booking updated",
		slog.Int64("booking_id", bookingID),
		slog.Int64("guest_id", session.GuestID),
	)
	s.afterMutation(ctx, model.BookingEvent{
		Type:      model.BookingUpdated,
		BookingID: bookingID,
		CabinID:   booking.CabinID,
		GuestID:   session.GuestID,
	}, ReservationsPath, EditReservationPath(bookingID))

	return &Outcome{Booking: booking, Redirect: ReservationsPath}, nil
}

// Delete removes one of the session's bookings.
func (s *ReservationService) Delete(ctx context.Context, session *model.Session, bookingID int64) error {
	if session == nil {
		return model.ErrNotAuthenticated
	}

	if _, err := s.ownedBooking(ctx, session, bookingID); err != nil {
		return err
	}

	if err := s.bookings.DeleteOwned(ctx, bookingID, session.GuestID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "booking deleted",
		slog.Int64("booking_id", bookingID),
		slog.Int64("guest_id", session.GuestID),
	)
	s.afterMutation(ctx, model.BookingEvent{
		Type:      model.BookingDeleted,
		BookingID: bookingID,
		GuestID:   session.GuestID,
	}, ReservationsPath, EditReservationPath(bookingID))

	return nil
}

// ownedBooking returns bookingID from the session guest's bookings.
// The writes are also conditional on guest_id, so a booking reassigned
// between this check and the write is still refused.
func (s *ReservationService) ownedBooking(ctx context.Context, session *model.Session, bookingID int64) (*model.GuestBooking, error) {
	owned, err := s.bookings.ListByGuest(ctx, session.GuestID)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(owned, func(b model.GuestBooking) bool { return b.ID == bookingID })
	if i < 0 {
		s.log.WarnContext(ctx, "booking mutation refused",
			slog.Int64("booking_id", bookingID),
			slog.Int64("guest_id", session.GuestID),
		)
		return nil, model.ErrNotAuthorized
	}
	return &owned[i], nil
}

// checkCabinGuestLimit loads cabinID and the settings row and applies
// checkGuestLimit.
func (s *ReservationService) checkCabinGuestLimit(ctx context.Context, cabinID, numGuests int64) error {
	var (
		cabin    *model.Cabin
		settings *model.Settings
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cabin, err = s.cabins.GetByID(gctx, cabinID)
		return err
	})
	g.Go(func() (err error) {
		settings, err = s.settings.Get(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return checkGuestLimit(numGuests, cabin, settings)
}

// checkGuestLimit caps numGuests at the cabin's capacity and the
// per-booking maximum, whichever is lower.
func checkGuestLimit(numGuests int64, cabin *model.Cabin, settings *model.Settings) error {
	maxGuests := min(cabin.MaxCapacity, settings.MaxGuestsPerBooking)
	if numGuests > int64(maxGuests) {
		return model.Validation("numGuests", fmt.Sprintf("This cabin takes at most %d guests", maxGuests))
	}
	return nil
}

// afterMutation invalidates stale views and emits ev. The write has
// already succeeded, so failures here are logged and swallowed.
func (s *ReservationService) afterMutation(ctx context.Context, ev model.BookingEvent, paths ...string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout)
	defer cancel()
	for _, p := range paths {
		if err := s.revalidator.Revalidate(ctx, p); err != nil {
			s.log.WarnContext(ctx, "revalidate failed", slog.String("path", p), slog.Any("error", err))
		}
	}

	ev.OccurredAt = s.now().UTC()
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "publish booking event failed",
			slog.String("type", string(ev.Type)),
			slog.Int64("booking_id", ev.BookingID),
			slog.Any("error", err),
		)
	}
}

// overlaps reports whether any day of [start, end] is already booked.
func overlaps(start, end time.Time, booked []time.Time) bool {
	taken := make(map[time.Time]struct{}, len(booked))
	for _, d := range booked {
		taken[startOfDay(d)] = struct{}{}
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, ok := taken[d]; ok {
			return true
		}
	}
	return false
}
