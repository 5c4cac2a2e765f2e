package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Shivanand-hulikatti/cabin-booking/internal/model"
)

// Capacity buckets accepted by the cabin list filter.
const (
	CapacityAll    = "all"
	CapacitySmall  = "small"
	CapacityMedium = "medium"
	CapacityLarge  = "large"
)

// ReservationPanel is everything the date selector and reservation form
// need for one cabin.
type ReservationPanel struct {
	Cabin       *model.Cabin    `json:"cabin"`
	Settings    *model.Settings `json:"settings"`
	BookedDates []time.Time     `json:"booked_dates"`
}

// CabinService serves the public cabin pages.
type CabinService struct {
	cabins   CabinStore
	bookings BookingStore
	settings SettingStore
	log      *slog.Logger
}

// NewCabinService constructs a CabinService with its dependencies.
func NewCabinService(cabins CabinStore, bookings BookingStore, settings SettingStore, log *slog.Logger) *CabinService {
	return &CabinService{cabins: cabins, bookings: bookings, settings: settings, log: log}
}

// ListCabins returns the cabins matching the capacity bucket. An empty or
// unknown filter returns every cabin.
func (s *CabinService) ListCabins(ctx context.Context, capacity string) ([]model.Cabin, error) {
	cabins, err := s.cabins.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCapacity(cabins, capacity), nil
}

// GetCabin returns a single cabin by ID.
func (s *CabinService) GetCabin(ctx context.Context, id int64) (*model.Cabin, error) {
	if id < 1 {
		return nil, model.ErrCabinNotFound
	}
	return s.cabins.GetByID(ctx, id)
}

// ReservationPanel loads the cabin, the booking settings and the cabin's
// booked days concurrently.
func (s *CabinService) ReservationPanel(ctx context.Context, cabinID int64) (*ReservationPanel, error) {
	if cabinID < 1 {
		return nil, model.ErrCabinNotFound
	}

	var panel ReservationPanel
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		panel.Cabin, err = s.cabins.GetByID(gctx, cabinID)
		return err
	})
	g.Go(func() (err error) {
		panel.Settings, err = s.settings.Get(gctx)
		return err
	})
	g.Go(func() (err error) {
		panel.BookedDates, err = s.bookings.BookedDates(gctx, cabinID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if panel.BookedDates == nil {
		panel.BookedDates = []time.Time{}
	}
	return &panel, nil
}

func filterByCapacity(cabins []model.Cabin, capacity string) []model.Cabin {
	var keep func(int) bool
	switch capacity {
	case CapacitySmall:
		keep = func(n int) bool { return n <= 3 }
	case CapacityMedium:
		keep = func(n int) bool { return n >= 4 && n <= 7 }
	case CapacityLarge:
		keep = func(n int) bool { return n >= 8 }
	default:
		return cabins
	}

	filtered := make([]model.Cabin, 0, len(cabins))
	for _, c := range cabins {
		if keep(c.MaxCapacity) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
