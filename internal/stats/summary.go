// Package stats computes the admin dashboard read models from the booking
// collection. Every function is pure; callers pass the current time.
package stats

import (
	"sort"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
)

// DefaultMonths is how many months the monthly breakdowns keep.
const DefaultMonths = 6

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func monthOf(t time.Time) YearMonth {
	t = t.UTC()
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Before reports whether ym is an earlier month than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Add returns the month n months after ym (n may be negative).
func (ym YearMonth) Add(n int) YearMonth {
	t := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

type StatusCount struct {
	Status booking.Status
	Count  int
}

// StatusBreakdown counts bookings per status. Statuses without bookings are omitted.
func StatusBreakdown(bookings []*booking.Booking) []StatusCount {
	counts := make(map[booking.Status]int)
	for _, b := range bookings {
		counts[b.Status]++
	}

	out := []StatusCount{}
	for _, st := range booking.Statuses {
		if n := counts[st]; n > 0 {
			out = append(out, StatusCount{Status: st, Count: n})
		}
	}
	return out
}

type MonthCount struct {
	YearMonth
	Count int
}

// Monthly counts bookings by creation month, chronologically, keeping the last
// n months that have bookings.
func Monthly(bookings []*booking.Booking, n int) []MonthCount {
	counts := make(map[YearMonth]int)
	for _, b := range bookings {
		counts[monthOf(b.CreatedAt)]++
	}

	out := make([]MonthCount, 0, len(counts))
	for ym, c := range counts {
		out = append(out, MonthCount{YearMonth: ym, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearMonth.Before(out[j].YearMonth) })
	return lastN(out, n)
}

type MonthIncome struct {
	YearMonth
	Income float64
}

type Income struct {
	Total   float64
	Average float64
	ByMonth []MonthIncome
}

// counted reports whether a booking contributes to income.
func counted(b *booking.Booking) bool {
	return b.Status == booking.StatusConfirmed || b.Status == booking.StatusCompleted
}

// IncomeStats sums totalPrice over confirmed and completed bookings. ByMonth
// groups the same bookings by creation month and keeps the last n months.
func IncomeStats(bookings []*booking.Booking, n int) Income {
	var inc Income
	var count int
	byMonth := make(map[YearMonth]float64)

	for _, b := range bookings {
		if !counted(b) {
			continue
		}
		inc.Total += b.TotalPrice
		count++
		byMonth[monthOf(b.CreatedAt)] += b.TotalPrice
	}
	if count > 0 {
		inc.Average = inc.Total / float64(count)
	}

	months := make([]MonthIncome, 0, len(byMonth))
	for ym, v := range byMonth {
		months = append(months, MonthIncome{YearMonth: ym, Income: v})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].YearMonth.Before(months[j].YearMonth) })
	inc.ByMonth = lastN(months, n)
	return inc
}

func lastN[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
