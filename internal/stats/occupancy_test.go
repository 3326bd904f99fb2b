package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
)

func stay(id string, boatID int64, status booking.Status, from, to int) *booking.Booking {
	return &booking.Booking{
		ID:         id,
		BoatID:     boatID,
		Status:     status,
		ClientName: "Client " + id,
		StartDate:  time.Date(2024, 5, from, 10, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 5, to, 10, 0, 0, 0, time.UTC),
	}
}

func TestOccupancyPeriodRange(t *testing.T) {
	from, to := OccupancyWeek.Range(statsNow)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC), to)

	from, to = OccupancyMonth.Range(statsNow)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), to)

	from, to = OccupancyQuarter.Range(statsNow)
	assert.Equal(t, 90, int(to.Sub(from).Hours()/24))
}

func TestOccupancy(t *testing.T) {
	boats := []*boat.Boat{
		{ID: 1, Name: "One"},
		{ID: 2, Name: "Two"},
		{ID: 3, Name: "Three"},
	}
	bookings := []*booking.Booking{
		stay("a", 1, booking.StatusConfirmed, 14, 16),
		stay("b", 2, booking.StatusCancelled, 15, 21),
		stay("c", 3, booking.StatusPending, 17, 21),
	}

	got := Occupancy(boats, bookings, OccupancyWeek, statsNow)
	require.Len(t, got, 3)

	t.Run("Occupancy: Sorted By Rate", func(t *testing.T) {
		assert.Equal(t, []int64{3, 1, 2}, []int64{got[0].BoatID, got[1].BoatID, got[2].BoatID})
		assert.InDelta(t, 5.0/7*100, got[0].Rate, 1e-9)
		assert.InDelta(t, 2.0/7*100, got[1].Rate, 1e-9)
		assert.Zero(t, got[2].Rate)
	})

	t.Run("Occupancy: Day Details", func(t *testing.T) {
		days := got[1].Days
		require.Len(t, days, 7)
		assert.True(t, days[0].Booked)
		assert.Equal(t, "a", days[0].BookingID)
		assert.Equal(t, "Client a", days[0].ClientName)
		assert.True(t, days[1].Booked)
		assert.False(t, days[2].Booked)
	})

	t.Run("Occupancy: Cancelled Ignored", func(t *testing.T) {
		for _, d := range got[2].Days {
			assert.False(t, d.Booked)
		}
	})

	t.Run("Occupancy: Month Length", func(t *testing.T) {
		month := Occupancy(boats[:1], bookings, OccupancyMonth, statsNow)
		assert.Len(t, month[0].Days, 31)
		assert.InDelta(t, 3.0/31*100, month[0].Rate, 1e-9)
	})
}
