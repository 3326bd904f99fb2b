package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/random"
)

type bookingList []*booking.Booking

func (l bookingList) All(context.Context) ([]*booking.Booking, error) { return l, nil }

type failingBookings struct{ err error }

func (f failingBookings) All(context.Context) ([]*booking.Booking, error) { return nil, f.err }

func newStatsService(bookings BookingSource) Service {
	boats := boat.NewMemoryRepository(boat.SeedCatalog())
	return NewService(boats, bookings, random.Fixed(0.5), func() time.Time { return statsNow })
}

func TestService(t *testing.T) {
	ctx := context.Background()
	bookings := bookingList{
		stay("a", 1, booking.StatusConfirmed, 14, 16),
		stay("c", 3, booking.StatusPending, 17, 21),
	}
	for _, b := range bookings {
		b.CreatedAt = statsNow.AddDate(0, 0, -1)
		b.TotalPrice = 400
	}
	svc := newStatsService(bookings)

	t.Run("Summary: Aggregates", func(t *testing.T) {
		d, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Len(t, d.Statuses, 2)
		assert.Equal(t, 400.0, d.Income.Total)
		require.Len(t, d.Monthly, 1)
		assert.Equal(t, 2, d.Monthly[0].Count)
	})

	t.Run("Forecast: Uses Catalog Size", func(t *testing.T) {
		points, err := svc.Forecast(ctx, MetricOccupancy, PeriodMonth)
		require.NoError(t, err)
		require.Len(t, points, 12)
		assert.InDelta(t, 2.0/6*100*0.2, points[5].Actual, 1e-9)
	})

	t.Run("Recommendations: One Entry Per Boat", func(t *testing.T) {
		recs, err := svc.Recommendations(ctx, MetricRevenue, PeriodMonth)
		require.NoError(t, err)
		assert.Len(t, recs, len(boat.SeedCatalog()))
	})

	t.Run("Occupancy: Filter By Boat", func(t *testing.T) {
		occ, err := svc.Occupancy(ctx, OccupancyWeek, 3)
		require.NoError(t, err)
		require.Len(t, occ, 1)
		assert.Equal(t, int64(3), occ[0].BoatID)

		all, err := svc.Occupancy(ctx, OccupancyWeek, 0)
		require.NoError(t, err)
		assert.Len(t, all, len(boat.SeedCatalog()))
	})

	t.Run("Load: Source Error", func(t *testing.T) {
		boom := errors.New("boom")
		svc := newStatsService(failingBookings{err: boom})
		_, err := svc.Forecast(ctx, MetricRevenue, PeriodMonth)
		assert.ErrorIs(t, err, boom)
		_, err = svc.Summary(ctx)
		assert.ErrorIs(t, err, boom)
	})
}
