package repository

import (
	"context"
	"log/slog"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/schema"
)

// SettingRepository reads the operator-configured booking settings.
type SettingRepository struct {
	db  Querier
	log *slog.Logger
}

// NewSettingRepository constructs a SettingRepository.
func NewSettingRepository(db Querier, log *slog.Logger) *SettingRepository {
	return &SettingRepository{db: db, log: log}
}

// Get returns the singleton settings row. Zero or several rows are both errors.
func (r *SettingRepository) Get(ctx context.Context) (*model.Settings, error) {
	row, err := queryOne(ctx, r.db,
		`SELECT min_booking_length, max_booking_length, max_guests_per_booking, breakfast_price
		 FROM settings`,
	)
	if err != nil {
		return nil, fail(ctx, r.log, "Settings could not be loaded", err)
	}

	settings, err := schema.ParseSettings(row)
	if err != nil {
		return nil, fail(ctx, r.log, "Settings could not be loaded", wrapParse("settings", err))
	}
	return settings, nil
}
