package booking

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Overlaps reports whether the closed intervals [aStart, aEnd] and [bStart, bEnd]
// intersect. Ranges that only touch at an endpoint overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// Conflicts reports whether any non-cancelled booking in existing intersects [start, end].
func Conflicts(existing []*Booking, start, end time.Time) bool {
	for _, b := range existing {
		if b.Status == StatusCancelled {
			continue
		}
		if Overlaps(b.StartDate, b.EndDate, start, end) {
			return true
		}
	}
	return false
}

// Checker answers availability questions against a Repository.
type Checker struct {
	repo Repository
	log  *zap.Logger
}

func NewChecker(repo Repository, log *zap.Logger) *Checker {
	return &Checker{repo: repo, log: log}
}

// IsAvailable reports whether boatID is free over [start, end].
// A repository failure is logged and reported as unavailable.
func (c *Checker) IsAvailable(ctx context.Context, boatID int64, start, end time.Time) bool {
	existing, err := c.repo.ActiveForBoat(ctx, boatID)
	if err != nil {
		c.log.Error("availability lookup failed",
			zap.Int64("boatID", boatID),
			zap.Time("start", start),
			zap.Time("end", end),
			zap.Error(err),
		)
		return false
	}
	return !Conflicts(existing, start, end)
}
