package booking

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	bookings []*Booking
}

// NewMemoryRepository returns a Repository holding bookings in memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if Conflicts(r.activeForBoat(b.BoatID), b.StartDate, b.EndDate) {
		return ErrUnavailable
	}
	r.bookings = append(r.bookings, b.Clone())
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b := r.find(id); b != nil {
		return b.Clone(), nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*Booking{}
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.BoatID != 0 && b.BoatID != filter.BoatID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		matched = append(matched, b.Clone())
	}

	// Newest first.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.PerPage
	if start >= total {
		return []*Booking{}, total, nil
	}
	end := start + filter.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memoryRepository) All(ctx context.Context) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Booking, len(r.bookings))
	for i, b := range r.bookings {
		out[i] = b.Clone()
	}
	return out, nil
}

func (r *memoryRepository) ActiveForBoat(ctx context.Context, boatID int64) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := r.activeForBoat(boatID)
	out := make([]*Booking, len(active))
	for i, b := range active {
		out[i] = b.Clone()
	}
	return out, nil
}

func (r *memoryRepository) activeForBoat(boatID int64) []*Booking {
	var out []*Booking
	for _, b := range r.bookings {
		if b.BoatID == boatID && b.Status != StatusCancelled {
			out = append(out, b)
		}
	}
	return out
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.find(id)
	if b == nil {
		return nil, ErrNotFound
	}
	if b.Status != from {
		return nil, ErrStatusChanged
	}
	b.Status = to
	b.UpdatedAt = at
	return b.Clone(), nil
}

func (r *memoryRepository) find(id string) *Booking {
	for _, b := range r.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}
