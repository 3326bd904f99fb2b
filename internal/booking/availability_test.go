package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	a1, a2 := date(2024, 5, 10), date(2024, 5, 15)

	assert.True(t, Overlaps(a1, a2, date(2024, 5, 15), date(2024, 5, 20)), "shared end day overlaps")
	assert.True(t, Overlaps(a1, a2, date(2024, 5, 5), date(2024, 5, 10)), "shared start day overlaps")
	assert.True(t, Overlaps(a1, a2, date(2024, 5, 11), date(2024, 5, 12)), "contained range overlaps")
	assert.False(t, Overlaps(a1, a2, date(2024, 5, 16), date(2024, 5, 20)))
	assert.False(t, Overlaps(a1, a2, date(2024, 5, 1), date(2024, 5, 9)))
}

func TestConflicts(t *testing.T) {
	existing := []*Booking{
		{BoatID: 1, StartDate: date(2024, 5, 10), EndDate: date(2024, 5, 15), Status: StatusConfirmed},
		{BoatID: 1, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), Status: StatusCancelled},
	}

	t.Run("Boundary Day Is Unavailable", func(t *testing.T) {
		assert.True(t, Conflicts(existing, date(2024, 5, 15), date(2024, 5, 20)))
	})

	t.Run("Next Day Is Available", func(t *testing.T) {
		assert.False(t, Conflicts(existing, date(2024, 5, 16), date(2024, 5, 20)))
	})

	t.Run("Cancelled Bookings Do Not Block", func(t *testing.T) {
		assert.False(t, Conflicts(existing, date(2024, 6, 1), date(2024, 6, 5)))
	})
}

type mockRepository struct {
	mock.Mock
	Repository
}

func (m *mockRepository) ActiveForBoat(ctx context.Context, boatID int64) ([]*Booking, error) {
	args := m.Called(ctx, boatID)
	bookings, _ := args.Get(0).([]*Booking)
	return bookings, args.Error(1)
}

func TestCheckerFailsClosed(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ActiveForBoat", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))
	repo.On("ActiveForBoat", mock.Anything, int64(4)).Return([]*Booking{}, nil)

	checker := NewChecker(repo, zap.NewNop())

	assert.False(t, checker.IsAvailable(context.Background(), 3, date(2030, 1, 1), date(2030, 1, 2)))
	assert.True(t, checker.IsAvailable(context.Background(), 4, date(2030, 1, 1), date(2030, 1, 2)))
	repo.AssertExpectations(t)
}
