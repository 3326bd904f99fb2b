package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
)

type OccupancyPeriod string

const (
	OccupancyWeek    OccupancyPeriod = "week"
	OccupancyMonth   OccupancyPeriod = "month"
	OccupancyQuarter OccupancyPeriod = "quarter"
)

func ParseOccupancyPeriod(s string) (OccupancyPeriod, error) {
	switch p := OccupancyPeriod(s); p {
	case OccupancyWeek, OccupancyMonth, OccupancyQuarter:
		return p, nil
	case "":
		return OccupancyMonth, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Range returns the first and last day covered by period, both inclusive.
// Week is today plus six days, quarter today plus ninety days, and month the
// calendar month containing today.
func (p OccupancyPeriod) Range(now time.Time) (time.Time, time.Time) {
	today := truncateDay(now)
	switch p {
	case OccupancyWeek:
		return today, today.AddDate(0, 0, 6)
	case OccupancyQuarter:
		return today, today.AddDate(0, 0, 90)
	default:
		first := today.AddDate(0, 0, 1-today.Day())
		return first, first.AddDate(0, 1, -1)
	}
}

type DayStatus struct {
	Date       time.Time
	Booked     bool
	BookingID  string
	ClientName string
}

type BoatOccupancy struct {
	BoatID   int64
	BoatName string
	Days     []DayStatus
	Rate     float64
}

// Occupancy marks, for each boat and each day of period, whether a
// non-cancelled booking covers the day. Booking dates are compared by UTC day,
// inclusive at both ends. Boats are sorted by occupancy rate, highest first.
func Occupancy(boats []*boat.Boat, bookings []*booking.Booking, period OccupancyPeriod, now time.Time) []BoatOccupancy {
	from, to := period.Range(now)

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	byBoat := make(map[int64][]*booking.Booking)
	for _, b := range bookings {
		if b.Status != booking.StatusCancelled {
			byBoat[b.BoatID] = append(byBoat[b.BoatID], b)
		}
	}

	out := make([]BoatOccupancy, 0, len(boats))
	for _, bt := range boats {
		occ := BoatOccupancy{BoatID: bt.ID, BoatName: bt.Name, Days: make([]DayStatus, len(days))}
		booked := 0
		for i, d := range days {
			occ.Days[i] = DayStatus{Date: d}
			for _, b := range byBoat[bt.ID] {
				if !d.Before(truncateDay(b.StartDate)) && !d.After(truncateDay(b.EndDate)) {
					occ.Days[i] = DayStatus{Date: d, Booked: true, BookingID: b.ID, ClientName: b.ClientName}
					booked++
					break
				}
			}
		}
		if len(days) > 0 {
			occ.Rate = float64(booked) / float64(len(days)) * 100
		}
		out = append(out, occ)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Rate > out[j].Rate })
	return out
}
