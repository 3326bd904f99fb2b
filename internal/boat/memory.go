package boat

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu     sync.RWMutex
	boats  []*Boat
	nextID int64
}

// NewMemoryRepository returns a Repository holding seed in memory.
func NewMemoryRepository(seed []*Boat) Repository {
	r := &memoryRepository{nextID: 1}
	now := time.Now().UTC()
	for _, b := range seed {
		c := b.Clone()
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
		r.boats = append(r.boats, c)
	}
	return r
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Boat, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, total := Apply(r.boats, filter)
	out := make([]*Boat, len(page))
	for i, b := range page {
		out[i] = b.Clone()
	}
	return out, total, nil
}

func (r *memoryRepository) All(ctx context.Context) ([]*Boat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Boat, len(r.boats))
	for i, b := range r.boats {
		out[i] = b.Clone()
	}
	return out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id int64) (*Boat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.boats[i].Clone(), nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) Create(ctx context.Context, b *Boat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now().UTC()
	r.boats = append(r.boats, b.Clone())
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, b *Boat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(b.ID)
	if i < 0 {
		return ErrNotFound
	}
	c := b.Clone()
	c.CreatedAt = r.boats[i].CreatedAt
	r.boats[i] = c
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.boats = append(r.boats[:i], r.boats[i+1:]...)
	return nil
}

func (r *memoryRepository) indexOf(id int64) int {
	for i, b := range r.boats {
		if b.ID == id {
			return i
		}
	}
	return -1
}
