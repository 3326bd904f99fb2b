package cart

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/kvstore"
)

// lockStripes is the number of mutexes shared by all cart sessions.
const lockStripes = 64

// Key returns the kv key holding a session's cart.
func Key(session string) string {
	return "cart:" + session
}

// BoatLookup resolves boats being added to a cart.
type BoatLookup interface {
	GetByID(ctx context.Context, id int64) (*boat.Boat, error)
}

// View is the cart contents with totals.
type View struct {
	Items      []Item
	TotalItems int
	TotalPrice float64
}

// CheckoutRequest holds the contact details and the first rental day shared by
// every item.
type CheckoutRequest struct {
	UserID      string
	StartDate   time.Time
	ClientName  string
	ClientEmail string
	ClientPhone string
	Comments    string
}

// CheckoutResult lists the bookings that were created. Failed is set when an
// item could not be booked; that item and the ones after it stay in the cart.
type CheckoutResult struct {
	Bookings []*booking.Booking
	Failed   *CheckoutFailure
}

type CheckoutFailure struct {
	BoatID int64
	Err    error
}

type Service interface {
	Get(ctx context.Context, session string) (*View, error)
	Add(ctx context.Context, session string, boatID int64, days int) (*View, error)
	SetDays(ctx context.Context, session string, boatID int64, days int) (*View, error)
	Remove(ctx context.Context, session string, boatID int64) (*View, error)
	Clear(ctx context.Context, session string) error
	Summary(ctx context.Context, session, promo string) (Summary, error)
	Checkout(ctx context.Context, session string, req CheckoutRequest) (*CheckoutResult, error)
}

type service struct {
	kv       kvstore.Store
	boats    BoatLookup
	bookings booking.Service
	log      *zap.Logger

	locks [lockStripes]sync.Mutex
}

func NewService(kv kvstore.Store, boats BoatLookup, bookings booking.Service, log *zap.Logger) Service {
	return &service{
		kv:       kv,
		boats:    boats,
		bookings: bookings,
		log:      log.Named("cart"),
	}
}

// with opens the session's cart under its lock and runs fn.
func (s *service) with(ctx context.Context, session string, fn func(*Store) error) error {
	key := Key(session)
	mu := s.lockFor(key)
	mu.Lock()
	defer mu.Unlock()

	st, err := Open(ctx, s.kv, key, s.log)
	if err != nil {
		return err
	}
	return fn(st)
}

// lockFor maps key onto one of the striped mutexes.
func (s *service) lockFor(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.locks[h.Sum32()%lockStripes]
}

func view(st *Store) *View {
	return &View{
		Items:      st.Items(),
		TotalItems: st.TotalItems(),
		TotalPrice: st.TotalPrice(),
	}
}

func (s *service) Get(ctx context.Context, session string) (*View, error) {
	var v *View
	err := s.with(ctx, session, func(st *Store) error {
		v = view(st)
		return nil
	})
	return v, err
}

func (s *service) Add(ctx context.Context, session string, boatID int64, days int) (*View, error) {
	if days < 1 {
		return nil, ErrInvalidDays
	}
	b, err := s.boats.GetByID(ctx, boatID)
	if err != nil {
		if errors.Is(err, boat.ErrNotFound) {
			return nil, ErrBoatNotFound
		}
		return nil, fmt.Errorf("lookup boat failed: %w", err)
	}

	var v *View
	err = s.with(ctx, session, func(st *Store) error {
		if err := st.AddItem(ctx, Item{
			BoatID: b.ID,
			Name:   b.Name,
			Price:  b.Price,
			Image:  b.MainImage(),
			Days:   days,
		}); err != nil {
			return err
		}
		v = view(st)
		return nil
	})
	return v, err
}

func (s *service) SetDays(ctx context.Context, session string, boatID int64, days int) (*View, error) {
	var v *View
	err := s.with(ctx, session, func(st *Store) error {
		if err := st.SetDays(ctx, boatID, days); err != nil {
			return err
		}
		v = view(st)
		return nil
	})
	return v, err
}

func (s *service) Remove(ctx context.Context, session string, boatID int64) (*View, error) {
	var v *View
	err := s.with(ctx, session, func(st *Store) error {
		if err := st.RemoveItem(ctx, boatID); err != nil {
			return err
		}
		v = view(st)
		return nil
	})
	return v, err
}

func (s *service) Clear(ctx context.Context, session string) error {
	return s.with(ctx, session, func(st *Store) error {
		return st.Clear(ctx)
	})
}

func (s *service) Summary(ctx context.Context, session, promo string) (Summary, error) {
	var sum Summary
	err := s.with(ctx, session, func(st *Store) error {
		var err error
		sum, err = st.Summary(promo)
		return err
	})
	return sum, err
}

// Checkout books every cart item for [StartDate, StartDate+Days) in cart order.
// It stops at the first item that cannot be booked. Booked items are removed
// from the cart as they succeed, so the cart ends empty only when all succeed.
func (s *service) Checkout(ctx context.Context, session string, req CheckoutRequest) (*CheckoutResult, error) {
	result := &CheckoutResult{Bookings: []*booking.Booking{}}

	err := s.with(ctx, session, func(st *Store) error {
		items := st.Items()
		if len(items) == 0 {
			return ErrEmptyCart
		}

		for _, it := range items {
			flow := booking.NewFlow(s.bookings)
			b, err := flow.Submit(ctx, booking.SubmitRequest{
				BoatID:      it.BoatID,
				UserID:      req.UserID,
				StartDate:   req.StartDate,
				EndDate:     req.StartDate.AddDate(0, 0, it.Days),
				ClientName:  req.ClientName,
				ClientEmail: req.ClientEmail,
				ClientPhone: req.ClientPhone,
				Comments:    req.Comments,
			})
			if err != nil {
				s.log.Info("checkout stopped",
					zap.Int64("boatID", it.BoatID),
					zap.String("flowState", string(flow.State())),
					zap.Error(err),
				)
				result.Failed = &CheckoutFailure{BoatID: it.BoatID, Err: err}
				return nil
			}
			result.Bookings = append(result.Bookings, b)
			if err := st.RemoveItem(ctx, it.BoatID); err != nil {
				return err
			}
		}
		return st.Clear(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
