package repository

import (
	"context"
	"log/slog"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
	"github.com/Shivanand-hulikatti/cabin-booking/internal/schema"
)

// CabinRepository handles reads of cabins. Cabins are read-only here.
type CabinRepository struct {
	db  Querier
	log *slog.Logger
}

// NewCabinRepository constructs a CabinRepository.
func NewCabinRepository(db Querier, log *slog.Logger) *CabinRepository {
	return &CabinRepository{db: db, log: log}
}

// GetByID returns a single cabin or model.ErrCabinNotFound.
func (r *CabinRepository) GetByID(ctx context.Context, id int64) (*model.Cabin, error) {
	row, err := queryOne(ctx, r.db,
		`SELECT id, created_at, name, description, image, max_capacity, regular_price, discount
		 FROM cabins WHERE id = $1`,
		id,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, model.ErrCabinNotFound
		}
		return nil, fail(ctx, r.log, "Cabin could not be loaded", err)
	}

	cabin, err := schema.ParseCabin(row)
	if err != nil {
		return nil, fail(ctx, r.log, "Cabin could not be loaded", wrapParse("cabin", err))
	}
	return cabin, nil
}

// List returns the summary of every cabin ordered by name.
func (r *CabinRepository) List(ctx context.Context) ([]model.Cabin, error) {
	rows, err := queryAll(ctx, r.db,
		`SELECT id, name, max_capacity, regular_price, discount, image
		 FROM cabins
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fail(ctx, r.log, "Cabins could not be loaded", err)
	}

	cabins, err := schema.ParseCabinSummaries(rows)
	if err != nil {
		return nil, fail(ctx, r.log, "Cabins could not be loaded", wrapParse("cabins", err))
	}
	return cabins, nil
}
