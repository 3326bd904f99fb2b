package stats

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/random"
)

var ErrInvalidParameter = apperror.New(http.StatusBadRequest, "invalid statistics parameter")

type BoatSource interface {
	All(ctx context.Context) ([]*boat.Boat, error)
}

type BookingSource interface {
	All(ctx context.Context) ([]*booking.Booking, error)
}

type Dashboard struct {
	Statuses []StatusCount
	Monthly  []MonthCount
	Income   Income
}

type Service interface {
	Summary(ctx context.Context) (*Dashboard, error)
	Forecast(ctx context.Context, metric Metric, period Period) ([]ForecastPoint, error)
	Recommendations(ctx context.Context, metric Metric, period Period) ([]BoatRecommendations, error)
	Occupancy(ctx context.Context, period OccupancyPeriod, boatID int64) ([]BoatOccupancy, error)
}

type service struct {
	boats    BoatSource
	bookings BookingSource
	rnd      random.Source
	now      func() time.Time
}

func NewService(boats BoatSource, bookings BookingSource, rnd random.Source, now func() time.Time) Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{boats: boats, bookings: bookings, rnd: rnd, now: now}
}

// load fetches boats and bookings concurrently.
func (s *service) load(ctx context.Context) ([]*boat.Boat, []*booking.Booking, error) {
	var boats []*boat.Boat
	var bookings []*booking.Booking

	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		var err error
		boats, err = s.boats.All(ctx)
		return err
	})
	gg.Go(func() error {
		var err error
		bookings, err = s.bookings.All(ctx)
		return err
	})
	if err := gg.Wait(); err != nil {
		return nil, nil, err
	}
	return boats, bookings, nil
}

func (s *service) Summary(ctx context.Context) (*Dashboard, error) {
	bookings, err := s.bookings.All(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Statuses: StatusBreakdown(bookings),
		Monthly:  Monthly(bookings, DefaultMonths),
		Income:   IncomeStats(bookings, DefaultMonths),
	}, nil
}

func (s *service) Forecast(ctx context.Context, metric Metric, period Period) ([]ForecastPoint, error) {
	boats, bookings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Forecast(History(bookings, len(boats), s.now()), metric, period, s.rnd), nil
}

func (s *service) Recommendations(ctx context.Context, metric Metric, period Period) ([]BoatRecommendations, error) {
	boats, bookings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	points := Forecast(History(bookings, len(boats), now), metric, period, s.rnd)
	return Recommendations(boats, points, metric, now), nil
}

// Occupancy reports day-level occupancy. A non-zero boatID restricts the result to that boat.
func (s *service) Occupancy(ctx context.Context, period OccupancyPeriod, boatID int64) ([]BoatOccupancy, error) {
	boats, bookings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if boatID != 0 {
		var filtered []*boat.Boat
		for _, b := range boats {
			if b.ID == boatID {
				filtered = append(filtered, b)
			}
		}
		boats = filtered
	}
	return Occupancy(boats, bookings, period, s.now()), nil
}
