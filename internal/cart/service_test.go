package cart

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
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/kvstore"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, booking.Service, kvstore.Store) {
	t.Helper()
	boats := boat.NewService(boat.NewMemoryRepository(boat.SeedCatalog()))
	bookings := booking.NewService(booking.NewMemoryRepository(), boats, zap.NewNop(),
		booking.WithClock(func() time.Time { return testNow }))
	kv := kvstore.NewMemory()
	return NewService(kv, boats, bookings, zap.NewNop()), bookings, kv
}

func checkoutRequest(start time.Time) CheckoutRequest {
	return CheckoutRequest{
		StartDate:   start,
		ClientName:  "Sam Lee",
		ClientEmail: "sam@example.com",
		ClientPhone: "5550100",
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("Add: Snapshots Boat And Merges", func(t *testing.T) {
		svc, _, kv := newTestService(t)
		session := uuid.New().String()

		_, err := svc.Add(ctx, session, 1, 2)
		require.NoError(t, err)
		v, err := svc.Add(ctx, session, 1, 1)
		require.NoError(t, err)

		require.Len(t, v.Items, 1)
		assert.Equal(t, "Yamaha 190 FSH Sport", v.Items[0].Name)
		assert.Equal(t, 5000.0, v.Items[0].Price)
		assert.NotEmpty(t, v.Items[0].Image)
		assert.Equal(t, 3, v.Items[0].Days)
		assert.Equal(t, 15000.0, v.TotalPrice)

		_, ok, err := kv.Get(ctx, Key(session))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Add: Unknown Boat", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Add(ctx, uuid.New().String(), 99, 1)
		assert.ErrorIs(t, err, ErrBoatNotFound)
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		a, b := uuid.New().String(), uuid.New().String()
		_, err := svc.Add(ctx, a, 1, 1)
		require.NoError(t, err)

		v, err := svc.Get(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, v.Items)
	})
}

func TestSessionLocks(t *testing.T) {
	ctx := context.Background()

	t.Run("Concurrent Adds: No Lost Updates", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		session := uuid.New().String()

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Add(ctx, session, 1, 1)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		v, err := svc.Get(ctx, session)
		require.NoError(t, err)
		require.Len(t, v.Items, 1)
		assert.Equal(t, 20, v.Items[0].Days)
	})

	t.Run("Many Sessions: Fixed Lock Set", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		s := svc.(*service)

		seen := map[*sync.Mutex]struct{}{}
		for range 1000 {
			seen[s.lockFor(Key(uuid.New().String()))] = struct{}{}
		}
		assert.LessOrEqual(t, len(seen), lockStripes)

		key := Key(uuid.New().String())
		assert.Same(t, s.lockFor(key), s.lockFor(key))
	})
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("All Items Booked: Cart Cleared", func(t *testing.T) {
		svc, bookings, _ := newTestService(t)
		session := uuid.New().String()
		_, err := svc.Add(ctx, session, 1, 2)
		require.NoError(t, err)
		_, err = svc.Add(ctx, session, 2, 1)
		require.NoError(t, err)

		res, err := svc.Checkout(ctx, session, checkoutRequest(start))
		require.NoError(t, err)
		assert.Nil(t, res.Failed)
		require.Len(t, res.Bookings, 2)
		assert.Equal(t, start.AddDate(0, 0, 2), res.Bookings[0].EndDate)
		assert.Equal(t, 10000.0, res.Bookings[0].TotalPrice)
		assert.Equal(t, booking.StatusPending, res.Bookings[1].Status)

		v, err := svc.Get(ctx, session)
		require.NoError(t, err)
		assert.Empty(t, v.Items)

		all, err := bookings.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Conflict: Booked Items Leave, Rest Stay", func(t *testing.T) {
		svc, bookings, _ := newTestService(t)
		_, err := bookings.Submit(ctx, booking.SubmitRequest{
			BoatID:      2,
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 1),
			ClientName:  "Other",
			ClientEmail: "other@example.com",
			ClientPhone: "5550199",
		})
		require.NoError(t, err)

		session := uuid.New().String()
		for _, id := range []int64{1, 2, 3} {
			_, err := svc.Add(ctx, session, id, 1)
			require.NoError(t, err)
		}

		res, err := svc.Checkout(ctx, session, checkoutRequest(start))
		require.NoError(t, err)
		require.NotNil(t, res.Failed)
		assert.Equal(t, int64(2), res.Failed.BoatID)
		assert.ErrorIs(t, res.Failed.Err, booking.ErrUnavailable)
		assert.Len(t, res.Bookings, 1)

		v, err := svc.Get(ctx, session)
		require.NoError(t, err)
		require.Len(t, v.Items, 2)
		assert.Equal(t, int64(2), v.Items[0].BoatID)
		assert.Equal(t, int64(3), v.Items[1].BoatID)
	})

	t.Run("Empty Cart", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Checkout(ctx, uuid.New().String(), checkoutRequest(start))
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("Invalid Contact Fails First Item", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		session := uuid.New().String()
		_, err := svc.Add(ctx, session, 1, 1)
		require.NoError(t, err)

		req := checkoutRequest(start)
		req.ClientEmail = "bad"
		res, err := svc.Checkout(ctx, session, req)
		require.NoError(t, err)
		require.NotNil(t, res.Failed)
		assert.ErrorIs(t, res.Failed.Err, booking.ErrValidation)

		v, _ := svc.Get(ctx, session)
		assert.Len(t, v.Items, 1)
	})
}
