package booking

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// DayCount is the number of started days between start and end, in either order.
func DayCount(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(float64(d) / float64(day)))
}

// TotalPrice is the rental price for the range at pricePerDay.
func TotalPrice(start, end time.Time, pricePerDay float64) float64 {
	return float64(DayCount(start, end)) * pricePerDay
}
