package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type recordedEvent struct {
	Type    string
	Payload EventPayload
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) Publish(eventType string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Type: eventType, Payload: payload.(EventPayload)})
}

func newTestService(t *testing.T) (Service, *recorder) {
	t.Helper()
	rec := &recorder{}
	boats := boat.NewService(boat.NewMemoryRepository(boat.SeedCatalog()))
	svc := NewService(NewMemoryRepository(), boats, zap.NewNop(),
		WithClock(func() time.Time { return testNow }),
		WithPublisher(rec),
	)
	return svc, rec
}

func validRequest(boatID int64, start, end time.Time) SubmitRequest {
	return SubmitRequest{
		BoatID:      boatID,
		StartDate:   start,
		EndDate:     end,
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
		ClientPhone: "+15550100",
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Pending With Computed Price", func(t *testing.T) {
		svc, rec := newTestService(t)

		b, err := svc.Submit(ctx, validRequest(1, date(2024, 5, 10), date(2024, 5, 13)))
		require.NoError(t, err)

		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, 15000.0, b.TotalPrice)
		assert.Equal(t, "Yamaha 190 FSH Sport", b.BoatName)
		_, err = uuid.Parse(b.ID)
		assert.NoError(t, err)

		require.Len(t, rec.events, 1)
		assert.Equal(t, EventCreated, rec.events[0].Type)
		assert.Equal(t, b.ID, rec.events[0].Payload.ID)
	})

	t.Run("Start Today Is Allowed", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Submit(ctx, validRequest(2, date(2024, 5, 1), date(2024, 5, 2)))
		assert.NoError(t, err)
	})

	t.Run("Conflict: Nothing Written", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Submit(ctx, validRequest(1, date(2024, 5, 10), date(2024, 5, 15)))
		require.NoError(t, err)

		_, err = svc.Submit(ctx, validRequest(1, date(2024, 5, 15), date(2024, 5, 20)))
		assert.ErrorIs(t, err, ErrUnavailable)

		all, err := svc.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("Validation: Names Every Failing Field", func(t *testing.T) {
		svc, _ := newTestService(t)
		req := SubmitRequest{
			BoatID:      1,
			StartDate:   date(2024, 4, 30),
			EndDate:     date(2024, 4, 29),
			ClientName:  "J",
			ClientEmail: "not-an-email",
			ClientPhone: "123",
		}

		_, err := svc.Submit(ctx, req)
		require.ErrorIs(t, err, ErrValidation)
		msg := err.(interface{ Unwrap() error }).Unwrap().Error()
		assert.Contains(t, msg, "clientName")
		assert.Contains(t, msg, "clientEmail")
		assert.Contains(t, msg, "clientPhone")
		assert.Contains(t, msg, "startDate must be today or later")
		assert.Contains(t, msg, "endDate must be after startDate")
	})

	t.Run("Unknown Boat", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Submit(ctx, validRequest(42, date(2024, 5, 10), date(2024, 5, 11)))
		assert.ErrorIs(t, err, ErrBoatNotFound)
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Submit(ctx, validRequest(3, date(2024, 5, 10), date(2024, 5, 15)))
	require.NoError(t, err)

	q, err := svc.CheckAvailability(ctx, 3, date(2024, 5, 15), date(2024, 5, 20))
	require.NoError(t, err)
	assert.False(t, q.Available)

	q, err = svc.CheckAvailability(ctx, 3, date(2024, 5, 16), date(2024, 5, 20))
	require.NoError(t, err)
	assert.True(t, q.Available)
	assert.Equal(t, 4, q.Days)
	assert.Equal(t, 36000.0, q.TotalPrice)

	_, err = svc.CheckAvailability(ctx, 3, date(2024, 5, 20), date(2024, 5, 20))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestStatusChanges(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New().String()

	t.Run("Admin Lifecycle", func(t *testing.T) {
		svc, rec := newTestService(t)
		b, err := svc.Submit(ctx, validRequest(1, date(2024, 5, 10), date(2024, 5, 12)))
		require.NoError(t, err)

		b, err = svc.UpdateStatus(ctx, b.ID, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, b.Status)

		b, err = svc.UpdateStatus(ctx, b.ID, StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, b.Status)

		_, err = svc.UpdateStatus(ctx, b.ID, StatusPending)
		assert.ErrorIs(t, err, ErrIllegalTransition)

		assert.Len(t, rec.events, 3)
		assert.Equal(t, EventStatusChanged, rec.events[2].Type)
		assert.Equal(t, "completed", rec.events[2].Payload.Status)
	})

	t.Run("Same Status Rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		b, err := svc.Submit(ctx, validRequest(1, date(2024, 5, 10), date(2024, 5, 12)))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, b.ID, StatusPending)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("Cancel: Owner Allowed, Stranger Denied", func(t *testing.T) {
		svc, _ := newTestService(t)
		req := validRequest(2, date(2024, 5, 10), date(2024, 5, 12))
		req.UserID = owner
		b, err := svc.Submit(ctx, req)
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, b.ID, uuid.New().String(), false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		b, err = svc.Cancel(ctx, b.ID, owner, false)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, b.Status)

		_, err = svc.Cancel(ctx, b.ID, owner, false)
		assert.ErrorIs(t, err, ErrIllegalTransition)

		// Cancelled dates are free again.
		_, err = svc.Submit(ctx, validRequest(2, date(2024, 5, 10), date(2024, 5, 12)))
		assert.NoError(t, err)
	})

	t.Run("Guest Booking Cancel Needs Admin", func(t *testing.T) {
		svc, _ := newTestService(t)
		b, err := svc.Submit(ctx, validRequest(2, date(2024, 5, 10), date(2024, 5, 12)))
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, b.ID, "", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = svc.Cancel(ctx, b.ID, "", true)
		assert.NoError(t, err)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdateStatus(ctx, uuid.New().String(), StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCompleteFinished(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	past, err := svc.Submit(ctx, validRequest(1, date(2024, 5, 2), date(2024, 5, 4)))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, past.ID, StatusConfirmed)
	require.NoError(t, err)

	pending, err := svc.Submit(ctx, validRequest(2, date(2024, 5, 2), date(2024, 5, 4)))
	require.NoError(t, err)

	future, err := svc.Submit(ctx, validRequest(3, date(2024, 5, 20), date(2024, 5, 24)))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, future.ID, StatusConfirmed)
	require.NoError(t, err)

	n, err := svc.CompleteFinished(ctx, date(2024, 5, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := svc.GetByID(ctx, past.ID)
	assert.Equal(t, StatusCompleted, got.Status)
	got, _ = svc.GetByID(ctx, pending.ID)
	assert.Equal(t, StatusPending, got.Status)
	got, _ = svc.GetByID(ctx, future.ID)
	assert.Equal(t, StatusConfirmed, got.Status)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	owner := uuid.New().String()

	for i, boatID := range []int64{1, 2, 3} {
		req := validRequest(boatID, date(2024, 5, 10+i), date(2024, 5, 11+i))
		if boatID != 2 {
			req.UserID = owner
		}
		_, err := svc.Submit(ctx, req)
		require.NoError(t, err)
	}

	items, total, err := svc.List(ctx, Filter{UserID: owner})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)

	items, total, err = svc.List(ctx, Filter{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 1)
}
