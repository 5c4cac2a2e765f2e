package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/schema"
)

const bookingColumns = `id, created_at, start_date, end_date, num_nights, num_guests,
	cabin_price, extras_price, total_price, status, has_breakfast, is_paid,
	observations, cabin_id, guest_id`

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db  Querier
	log *slog.Logger
	now func() time.Time
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db Querier, log *slog.Logger) *BookingRepository {
	return &BookingRepository{db: db, log: log, now: time.Now}
}

// GetByID returns a single booking or model.ErrBookingNotFound.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	row, err := queryOne(ctx, r.db,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, model.ErrBookingNotFound
		}
		return nil, fail(ctx, r.log, "Booking could not get loaded", err)
	}

	booking, err := schema.ParseBooking(row)
	if err != nil {
		return nil, fail(ctx, r.log, "Booking could not get loaded", wrapParse("booking", err))
	}
	return booking, nil
}

// ListByGuest returns a guest's bookings ordered by start date. Only the
// cabin name and image are joined in, which is all the list shows.
func (r *BookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]model.GuestBooking, error) {
	rows, err := queryAll(ctx, r.db,
		`SELECT b.id, b.created_at, b.start_date, b.end_date, b.num_nights, b.num_guests,
		        b.status, b.total_price, b.guest_id, b.cabin_id,
		        json_build_object('name', c.name, 'image', c.image) AS cabins
		 FROM bookings b
		 JOIN cabins c ON c.id = b.cabin_id
		 WHERE b.guest_id = $1
		 ORDER BY b.start_date`,
		guestID,
	)
	if err != nil {
		return nil, fail(ctx, r.log, "Bookings could not get loaded", err)
	}

	bookings, err := schema.ParseGuestBookings(rows)
	if err != nil {
		return nil, fail(ctx, r.log, "Bookings could not get loaded", wrapParse("bookings", err))
	}
	return bookings, nil
}

// BookedDates returns every calendar day occupied on cabinID by a booking
// that starts today or later, or that is currently checked in.
func (r *BookingRepository) BookedDates(ctx context.Context, cabinID int64) ([]time.Time, error) {
	today := startOfDay(r.now())

	rows, err := queryAll(ctx, r.db,
		`SELECT start_date, end_date
		 FROM bookings
		 WHERE cabin_id = $1
		   AND (start_date >= $2 OR status = $3)`,
		cabinID, today, string(model.StatusCheckedIn),
	)
	if err != nil {
		return nil, fail(ctx, r.log, "Bookings could not get loaded", err)
	}

	ranges, err := schema.ParseDateRanges(rows)
	if err != nil {
		return nil, fail(ctx, r.log, "Bookings could not get loaded", wrapParse("booked dates", err))
	}
	return ExpandDays(ranges), nil
}

// Create inserts b and returns the stored row.
func (r *BookingRepository) Create(ctx context.Context, b model.NewBooking) (*model.Booking, error) {
	row, err := queryOne(ctx, r.db,
		`INSERT INTO bookings (start_date, end_date, num_nights, num_guests, cabin_price,
		                       extras_price, total_price, status, has_breakfast, is_paid,
		                       observations, cabin_id, guest_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+bookingColumns,
		b.StartDate, b.EndDate, b.NumNights, b.NumGuests, b.CabinPrice,
		b.ExtrasPrice, b.TotalPrice, string(b.Status), b.HasBreakfast, b.IsPaid,
		b.Observations, b.CabinID, b.GuestID,
	)
	if err != nil {
		return nil, fail(ctx, r.log, "Booking could not be created", err)
	}

	booking, err := schema.ParseBooking(row)
	if err != nil {
		return nil, fail(ctx, r.log, "Booking could not be created", wrapParse("booking", err))
	}
	return booking, nil
}

// UpdateOwned writes u to booking id only if it belongs to guestID.
// A booking that is missing or owned by someone else yields model.ErrNotAuthorized.
func (r *BookingRepository) UpdateOwned(ctx context.Context, id, guestID int64, u model.BookingUpdate) (*model.Booking, error) {
	row, err := queryOne(ctx, r.db,
		`UPDATE bookings
		 SET num_guests = $3, observations = $4
		 WHERE id = $1 AND guest_id = $2
		 RETURNING `+bookingColumns,
		id, guestID, u.NumGuests, u.Observations,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, model.ErrNotAuthorized
		}
		return nil, fail(ctx, r.log, "Booking could not be updated", err)
	}

	booking, err := schema.ParseBooking(row)
	if err != nil {
		return nil, fail(ctx, r.log, "Booking could not be updated", wrapParse("booking", err))
	}
	return booking, nil
}

// DeleteOwned removes booking id only if it belongs to guestID.
func (r *BookingRepository) DeleteOwned(ctx context.Context, id, guestID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM bookings WHERE id = $1 AND guest_id = $2`,
		id, guestID,
	)
	if err != nil {
		return fail(ctx, r.log, "Booking could not be deleted", fmt.Errorf("delete booking %d: %w", id, err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotAuthorized
	}
	return nil
}
