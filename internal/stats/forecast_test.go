package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/random"
)

var statsNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func TestHistory(t *testing.T) {
	bookings := []*booking.Booking{
		created(booking.StatusCancelled, 1000, 2023, time.July),
		created(booking.StatusConfirmed, 500, 2024, time.May),
		created(booking.StatusPending, 500, 2024, time.May),
		// outside the window
		created(booking.StatusConfirmed, 999, 2023, time.May),
	}

	h := History(bookings, 2, statsNow)
	require.Len(t, h, 12)
	assert.Equal(t, YearMonth{2023, time.June}, h[0].YearMonth)
	assert.Equal(t, YearMonth{2024, time.May}, h[11].YearMonth)

	t.Run("History: Revenue Counts Every Status", func(t *testing.T) {
		assert.Equal(t, 1000.0, h[1].Revenue)
		assert.Equal(t, 1000.0, h[11].Revenue)
		assert.Equal(t, 2, h[11].Bookings)
	})

	t.Run("History: Occupancy Approximation", func(t *testing.T) {
		assert.InDelta(t, 20.0, h[11].Occupancy, 1e-9)
		assert.Zero(t, h[5].Occupancy)
	})

	t.Run("History: No Boats", func(t *testing.T) {
		h := History(bookings, 0, statsNow)
		assert.InDelta(t, 40.0, h[11].Occupancy, 1e-9)
	})
}

func TestForecast(t *testing.T) {
	t.Run("Forecast: Same Month Last Year", func(t *testing.T) {
		bookings := []*booking.Booking{created(booking.StatusConfirmed, 1000, 2023, time.July)}
		points := Forecast(History(bookings, 1, statsNow), MetricRevenue, PeriodMonth, random.Fixed(0.5))

		require.Len(t, points, 12)
		for _, p := range points[:6] {
			assert.False(t, p.IsForecast)
		}
		assert.Equal(t, YearMonth{2023, time.December}, points[0].YearMonth)
		assert.Equal(t, YearMonth{2024, time.June}, points[6].YearMonth)
		assert.True(t, points[6].IsForecast)
		assert.Zero(t, points[6].Forecast)
		assert.Equal(t, 1500.0, points[7].Forecast)
	})

	t.Run("Forecast: Preceding Month Then Average", func(t *testing.T) {
		history := []HistoryPoint{
			{YearMonth: YearMonth{2024, time.January}, Revenue: 100},
			{YearMonth: YearMonth{2024, time.February}, Revenue: 300},
		}
		points := Forecast(history, MetricRevenue, PeriodMonth, random.Fixed(0.5))

		require.Len(t, points, 8)
		assert.Equal(t, 100.0, points[0].Actual)
		assert.Equal(t, 240.0, points[2].Forecast)
		assert.Equal(t, 180.0, points[3].Forecast)
	})

	t.Run("Forecast: Horizon Per Period", func(t *testing.T) {
		h := History(nil, 1, statsNow)
		assert.Len(t, Forecast(h, MetricDemand, PeriodQuarter, random.Fixed(0)), 10)
		assert.Len(t, Forecast(h, MetricDemand, PeriodYear, random.Fixed(0)), 8)
	})

	t.Run("Forecast: Jitter Bounds", func(t *testing.T) {
		history := []HistoryPoint{{YearMonth: YearMonth{2024, time.April}, Bookings: 100}}
		low := Forecast(history, MetricDemand, PeriodYear, random.Fixed(0))
		high := Forecast(history, MetricDemand, PeriodYear, random.Fixed(0.999))
		assert.Equal(t, 90.0, low[1].Forecast)
		assert.Equal(t, 110.0, high[1].Forecast)
	})

	t.Run("Forecast: Empty History", func(t *testing.T) {
		assert.Empty(t, Forecast(nil, MetricRevenue, PeriodMonth, random.Fixed(0.5)))
	})
}

func TestParse(t *testing.T) {
	m, err := ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, MetricOccupancy, m)

	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	_, err = ParseMetric("profit")
	assert.Error(t, err)
	_, err = ParsePeriod("decade")
	assert.Error(t, err)
	_, err = ParseOccupancyPeriod("day")
	assert.Error(t, err)
}

func TestRecommendations(t *testing.T) {
	boats := []*boat.Boat{{ID: 1, Name: "Sea Breeze", Price: 100}}

	t.Run("Recommendations: Seasonal Revenue", func(t *testing.T) {
		points := []ForecastPoint{
			{YearMonth: YearMonth{2024, time.January}, Actual: 100},
			{YearMonth: YearMonth{2024, time.February}, Forecast: 240, IsForecast: true},
			{YearMonth: YearMonth{2024, time.March}, Forecast: 0, IsForecast: true},
			{YearMonth: YearMonth{2024, time.April}, Forecast: 180, IsForecast: true},
			{YearMonth: YearMonth{2024, time.May}, Forecast: 160, IsForecast: true},
			{YearMonth: YearMonth{2024, time.June}, Forecast: 150, IsForecast: true},
		}
		now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

		got := Recommendations(boats, points, MetricRevenue, now)
		require.Len(t, got, 1)
		recs := got[0].Recommendations
		require.Len(t, recs, 3)

		assert.Equal(t, YearMonth{2024, time.July}, recs[0].YearMonth)
		assert.Equal(t, 125.0, recs[0].Recommended)
		assert.Equal(t, 113.0, recs[0].Min)
		assert.Equal(t, 138.0, recs[0].Max)
		assert.Equal(t, 25.0, recs[0].ChangePct)

		assert.Equal(t, YearMonth{2024, time.September}, recs[2].YearMonth)
		assert.Equal(t, 105.0, recs[2].Recommended)
		assert.Equal(t, 5.0, recs[2].ChangePct)
	})

	t.Run("Recommendations: Demand Adjustment", func(t *testing.T) {
		points := []ForecastPoint{
			{YearMonth: YearMonth{2024, time.April}, Actual: 2},
			{YearMonth: YearMonth{2024, time.May}, Forecast: 4, IsForecast: true},
		}
		got := Recommendations(boats, points, MetricDemand, statsNow)
		require.Len(t, got[0].Recommendations, 1)
		assert.Equal(t, 110.0, got[0].Recommendations[0].Recommended)
		assert.Equal(t, 10.0, got[0].Recommendations[0].ChangePct)
	})

	t.Run("Recommendations: No Points", func(t *testing.T) {
		assert.Empty(t, Recommendations(boats, nil, MetricRevenue, statsNow))
	})
}
