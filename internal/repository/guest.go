package repository

import (
	"context"
	"log/slog"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/schema"
)

const guestColumns = `id, created_at, full_name, email, national_id, nationality, country_flag`

// GuestRepository handles persistence for guests.
type GuestRepository struct {
	db  Querier
	log *slog.Logger
}

// NewGuestRepository constructs a GuestRepository.
func NewGuestRepository(db Querier, log *slog.Logger) *GuestRepository {
	return &GuestRepository{db: db, log: log}
}

// GetByEmail looks a guest up by email. Guests are uniquely identified by
// their email address; a missing guest is (nil, nil), not an error.
func (r *GuestRepository) GetByEmail(ctx context.Context, email string) (*model.Guest, error) {
	row, err := queryOne(ctx, r.db,
		`SELECT `+guestColumns+` FROM guests WHERE email = $1`,
		email,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fail(ctx, r.log, "Guest could not be loaded", err)
	}

	guest, err := schema.ParseGuest(row)
	if err != nil {
		return nil, fail(ctx, r.log, "Guest could not be loaded", wrapParse("guest", err))
	}
	return guest, nil
}

// Create inserts a new guest and returns the stored row.
func (r *GuestRepository) Create(ctx context.Context, g model.NewGuest) (*model.Guest, error) {
	row, err := queryOne(ctx, r.db,
		`INSERT INTO guests (email, full_name)
		 VALUES ($1, $2)
		 RETURNING `+guestColumns,
		g.Email, g.FullName,
	)
	if err != nil {
		return nil, fail(ctx, r.log, "Guest could not be created", err)
	}

	guest, err := schema.ParseGuest(row)
	if err != nil {
		return nil, fail(ctx, r.log, "Guest could not be created", wrapParse("guest", err))
	}
	return guest, nil
}

// Update writes the editable profile fields of guest id.
func (r *GuestRepository) Update(ctx context.Context, id int64, u model.GuestUpdate) (*model.Guest, error) {
	row, err := queryOne(ctx, r.db,
		`UPDATE guests
		 SET national_id = $2, nationality = $3, country_flag = $4
		 WHERE id = $1
		 RETURNING `+guestColumns,
		id, u.NationalID, u.Nationality, u.CountryFlag,
	)
	if err != nil {
		return nil, fail(ctx, r.log, "Guest could not be updated", err)
	}

	guest, err := schema.ParseGuest(row)
	if err != nil {
		return nil, fail(ctx, r.log, "Guest could not be updated", wrapParse("guest", err))
	}
	return guest, nil
}
