package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/random"
)

// Seasonality is the demand multiplier per calendar month.
var Seasonality = map[time.Month]float64{
	time.January:   0.7,
	time.February:  0.7,
	time.March:     0.8,
	time.April:     0.9,
	time.May:       1.0,
	time.June:      1.2,
	time.July:      1.5,
	time.August:    1.5,
	time.September: 1.1,
	time.October:   0.9,
	time.November:  0.8,
	time.December:  0.7,
}

func seasonality(m time.Month) float64 {
	if f, ok := Seasonality[m]; ok {
		return f
	}
	return 1
}

type Metric string

const (
	MetricOccupancy Metric = "occupancy"
	MetricRevenue   Metric = "revenue"
	MetricDemand    Metric = "demand"
)

type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

const (
	historyMonths   = 12
	displayedMonths = 6
)

// Horizon is the number of future months forecast for a period.
func (p Period) Horizon() int {
	switch p {
	case PeriodQuarter:
		return 4
	case PeriodYear:
		return 2
	default:
		return 6
	}
}

func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricOccupancy, MetricRevenue, MetricDemand:
		return m, nil
	case "":
		return MetricOccupancy, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodMonth, PeriodQuarter, PeriodYear:
		return p, nil
	case "":
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// HistoryPoint aggregates the bookings created in one month.
type HistoryPoint struct {
	YearMonth
	Bookings  int
	Revenue   float64
	Occupancy float64
}

func (h HistoryPoint) value(m Metric) float64 {
	switch m {
	case MetricRevenue:
		return h.Revenue
	case MetricDemand:
		return float64(h.Bookings)
	default:
		return h.Occupancy
	}
}

// History builds the zero-filled 12-month window ending at now's month.
// Revenue counts every booking regardless of status. Occupancy approximates
// the share of booked days as bookings / boats × 100 × 0.2.
func History(bookings []*booking.Booking, boatCount int, now time.Time) []HistoryPoint {
	current := monthOf(now)
	first := current.Add(-(historyMonths - 1))

	points := make([]HistoryPoint, historyMonths)
	index := make(map[YearMonth]int, historyMonths)
	for i := range points {
		ym := first.Add(i)
		points[i].YearMonth = ym
		index[ym] = i
	}

	for _, b := range bookings {
		if i, ok := index[monthOf(b.CreatedAt)]; ok {
			points[i].Bookings++
			points[i].Revenue += b.TotalPrice
		}
	}

	boats := math.Max(float64(boatCount), 1)
	for i := range points {
		points[i].Occupancy = float64(points[i].Bookings) / boats * 100 * 0.2
	}
	return points
}

// ForecastPoint is either an observed month (Actual set) or a predicted one.
type ForecastPoint struct {
	YearMonth
	Actual     float64
	Forecast   float64
	IsForecast bool
}

// Forecast predicts metric for the months after the last history point.
// The base for a month is the same month a year earlier, else the month just
// before it, else the history average; it is scaled by seasonality and a
// jitter in [0.9, 1.1) drawn from rnd, then rounded. The result holds the last
// six history points followed by the forecasts.
func Forecast(history []HistoryPoint, metric Metric, period Period, rnd random.Source) []ForecastPoint {
	if len(history) == 0 {
		return []ForecastPoint{}
	}

	byMonth := make(map[YearMonth]HistoryPoint, len(history))
	var sum float64
	for _, h := range history {
		byMonth[h.YearMonth] = h
		sum += h.value(metric)
	}
	average := sum / float64(len(history))

	out := make([]ForecastPoint, 0, displayedMonths+period.Horizon())
	for _, h := range lastN(history, displayedMonths) {
		out = append(out, ForecastPoint{YearMonth: h.YearMonth, Actual: h.value(metric)})
	}

	target := history[len(history)-1].YearMonth
	for i := 0; i < period.Horizon(); i++ {
		target = target.Add(1)

		base := average
		if h, ok := byMonth[target.Add(-12)]; ok {
			base = h.value(metric)
		} else if h, ok := byMonth[target.Add(-1)]; ok {
			base = h.value(metric)
		}

		jitter := 0.9 + rnd.Float64()*0.2
		out = append(out, ForecastPoint{
			YearMonth:  target,
			Forecast:   math.Round(base * seasonality(target.Month) * jitter),
			IsForecast: true,
		})
	}
	return out
}
