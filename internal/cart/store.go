package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/kvstore"
)

// Store is a cart persisted as a JSON array under a single kv key.
// The value is read once by Open and rewritten after every mutation.
// A Store is not safe for concurrent use; Service serialises access per key.
type Store struct {
	kv    kvstore.Store
	key   string
	items []Item
}

// Open loads the cart stored under key. A value that cannot be decoded is
// logged and discarded, and the cart starts empty.
func Open(ctx context.Context, kv kvstore.Store, key string, log *zap.Logger) (*Store, error) {
	s := &Store{kv: kv, key: key, items: []Item{}}

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart failed: %w", err)
	}
	if !ok {
		return s, nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn("discarding unreadable cart", zap.String("key", key), zap.Error(err))
		return s, nil
	}
	// Drop entries no valid mutation could have produced.
	for _, it := range items {
		if reason := s.reject(it); reason != "" {
			log.Warn("discarding invalid cart entry",
				zap.String("key", key),
				zap.Int64("boatID", it.BoatID),
				zap.Int("days", it.Days),
				zap.String("reason", reason),
			)
			continue
		}
		s.items = append(s.items, it)
	}
	return s, nil
}

// reject names why a stored entry cannot be loaded, or returns "".
func (s *Store) reject(it Item) string {
	switch {
	case it.BoatID <= 0:
		return "invalid boat id"
	case it.Days < 1:
		return "days below 1"
	case s.index(it.BoatID) >= 0:
		return "duplicate boat"
	}
	return ""
}

// AddItem increases Days of the item with the same boat, or appends it.
func (s *Store) AddItem(ctx context.Context, item Item) error {
	if item.Days < 1 {
		return ErrInvalidDays
	}
	if i := s.index(item.BoatID); i >= 0 {
		s.items[i].Days += item.Days
	} else {
		s.items = append(s.items, item)
	}
	return s.persist(ctx)
}

// RemoveItem drops the boat from the cart. Absent boats are ignored.
func (s *Store) RemoveItem(ctx context.Context, boatID int64) error {
	i := s.index(boatID)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist(ctx)
}

// SetDays overwrites the rental length. Values below 1 are ignored.
func (s *Store) SetDays(ctx context.Context, boatID int64, days int) error {
	if days < 1 {
		return nil
	}
	i := s.index(boatID)
	if i < 0 {
		return nil
	}
	s.items[i].Days = days
	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.items = []Item{}
	return s.persist(ctx)
}

// Items returns a copy of the cart contents in insertion order.
func (s *Store) Items() []Item {
	return append([]Item{}, s.items...)
}

// TotalItems is the number of distinct boats in the cart.
func (s *Store) TotalItems() int {
	return len(s.items)
}

func (s *Store) TotalPrice() float64 {
	var total float64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

// Summary prices the cart with an optional promo code.
func (s *Store) Summary(promo string) (Summary, error) {
	sum := Summary{
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	}
	sum.FinalPrice = sum.TotalPrice

	if strings.TrimSpace(promo) == "" {
		return sum, nil
	}
	pct, err := Discount(promo)
	if err != nil {
		return Summary{}, err
	}
	sum.PromoCode = strings.ToUpper(strings.TrimSpace(promo))
	sum.DiscountPercent = pct
	sum.FinalPrice = sum.TotalPrice - sum.TotalPrice*pct/100
	return sum, nil
}

func (s *Store) index(boatID int64) int {
	for i, it := range s.items {
		if it.BoatID == boatID {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode cart failed: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("save cart failed: %w", err)
	}
	return nil
}
