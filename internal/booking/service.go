package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
)

// Event types published on booking lifecycle changes.
const (
	EventCreated       = "booking.created"
	EventStatusChanged = "booking.status_changed"
)

// BoatLookup resolves the boat a booking refers to.
type BoatLookup interface {
	GetByID(ctx context.Context, id int64) (*boat.Boat, error)
}

// EventPublisher receives booking lifecycle events.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

// Quote is the outcome of an availability check with the price it would cost.
type Quote struct {
	BoatID     int64
	StartDate  time.Time
	EndDate    time.Time
	Available  bool
	Days       int
	TotalPrice float64
}

type Service interface {
	CheckAvailability(ctx context.Context, boatID int64, start, end time.Time) (*Quote, error)
	Submit(ctx context.Context, req SubmitRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	All(ctx context.Context) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id string, to Status) (*Booking, error)
	Cancel(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error)
	CompleteFinished(ctx context.Context, now time.Time) (int, error)
}

type Option func(*service)

// WithClock overrides the time source used for validation and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithPublisher sets the receiver of lifecycle events.
func WithPublisher(p EventPublisher) Option {
	return func(s *service) { s.publisher = p }
}

type service struct {
	repo      Repository
	boats     BoatLookup
	checker   *Checker
	publisher EventPublisher
	now       func() time.Time
	log       *zap.Logger
}

func NewService(repo Repository, boats BoatLookup, log *zap.Logger, opts ...Option) Service {
	log = log.Named("booking")
	s := &service{
		repo:    repo,
		boats:   boats,
		checker: NewChecker(repo, log),
		now:     func() time.Time { return time.Now().UTC() },
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) lookupBoat(ctx context.Context, id int64) (*boat.Boat, error) {
	b, err := s.boats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, boat.ErrNotFound) {
			return nil, ErrBoatNotFound
		}
		return nil, fmt.Errorf("lookup boat failed: %w", err)
	}
	return b, nil
}

func (s *service) CheckAvailability(ctx context.Context, boatID int64, start, end time.Time) (*Quote, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}
	b, err := s.lookupBoat(ctx, boatID)
	if err != nil {
		return nil, err
	}

	return &Quote{
		BoatID:     boatID,
		StartDate:  start,
		EndDate:    end,
		Available:  s.checker.IsAvailable(ctx, boatID, start, end),
		Days:       DayCount(start, end),
		TotalPrice: TotalPrice(start, end, b.Price),
	}, nil
}

// Submit validates req, re-checks availability and stores a pending booking.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Booking, error) {
	now := s.now()
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	b, err := s.lookupBoat(ctx, req.BoatID)
	if err != nil {
		return nil, err
	}

	if !s.checker.IsAvailable(ctx, req.BoatID, req.StartDate, req.EndDate) {
		return nil, ErrUnavailable
	}

	bk := &Booking{
		ID:          uuid.New().String(),
		BoatID:      b.ID,
		BoatName:    b.Name,
		UserID:      req.UserID,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		Status:      StatusPending,
		TotalPrice:  TotalPrice(req.StartDate, req.EndDate, b.Price),
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Comments:    req.Comments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The repository repeats the overlap check atomically with the insert.
	if err := s.repo.Create(ctx, bk); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("bookingID", bk.ID),
		zap.Int64("boatID", bk.BoatID),
		zap.Float64("totalPrice", bk.TotalPrice),
	)
	s.publish(EventCreated, bk)
	return bk, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	filter.normalize()
	return s.repo.List(ctx, filter)
}

func (s *service) All(ctx context.Context) ([]*Booking, error) {
	return s.repo.All(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id string, to Status) (*Booking, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, current, to)
}

// Cancel cancels a booking on behalf of its owner or an admin.
func (s *service) Cancel(ctx context.Context, id, actorID string, isAdmin bool) (*Booking, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && (actorID == "" || current.UserID != actorID) {
		return nil, ErrPermissionDenied
	}
	return s.transition(ctx, current, StatusCancelled)
}

func (s *service) transition(ctx context.Context, current *Booking, to Status) (*Booking, error) {
	if !CanTransition(current.Status, to) {
		return nil, ErrIllegalTransition.Detail("%s -> %s", current.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, current.ID, current.Status, to, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Info("booking status changed",
		zap.String("bookingID", updated.ID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(to)),
	)
	s.publish(EventStatusChanged, updated)
	return updated, nil
}

// CompleteFinished marks confirmed bookings whose end date is before now as completed.
// It returns how many bookings were completed.
func (s *service) CompleteFinished(ctx context.Context, now time.Time) (int, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, b := range all {
		if b.Status != StatusConfirmed || !b.EndDate.Before(now) {
			continue
		}
		if _, err := s.transition(ctx, b, StatusCompleted); err != nil {
			// Another writer got there first; leave it.
			if errors.Is(err, ErrStatusChanged) {
				continue
			}
			return completed, err
		}
		completed++
	}
	return completed, nil
}

func (s *service) publish(eventType string, b *Booking) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(eventType, EventPayload{
		ID:         b.ID,
		BoatID:     b.BoatID,
		BoatName:   b.BoatName,
		Status:     string(b.Status),
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		TotalPrice: b.TotalPrice,
	})
}

// EventPayload is the body of a booking lifecycle event.
type EventPayload struct {
	ID         string    `json:"id"`
	BoatID     int64     `json:"boatId"`
	BoatName   string    `json:"boatName"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
}
