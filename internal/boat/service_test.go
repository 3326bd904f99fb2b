package boat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(SeedCatalog()))

	t.Run("Create: Assigns Next ID", func(t *testing.T) {
		b, err := svc.Create(ctx, CreateRequest{Name: "  Lund 1875 ", Price: 6000, Capacity: 7, Categories: []string{"fishing"}})
		require.NoError(t, err)
		assert.Equal(t, int64(7), b.ID)
		assert.Equal(t, "Lund 1875", b.Name)
		assert.False(t, b.CreatedAt.IsZero())
	})

	t.Run("Create: Validation Errors", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: " ", Price: 1, Capacity: 1})
		assert.ErrorIs(t, err, ErrEmptyName)

		_, err = svc.Create(ctx, CreateRequest{Name: "x", Price: 0, Capacity: 1})
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = svc.Create(ctx, CreateRequest{Name: "x", Price: 1, Capacity: 0})
		assert.ErrorIs(t, err, ErrInvalidCapacity)

		_, err = svc.Create(ctx, CreateRequest{Name: "x", Price: 1, Capacity: 1, Rating: 6})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("Update: Partial", func(t *testing.T) {
		price := 5500.0
		b, err := svc.Update(ctx, 1, UpdateRequest{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 5500.0, b.Price)
		assert.Equal(t, "Yamaha 190 FSH Sport", b.Name)

		got, err := svc.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 5500.0, got.Price)
	})

	t.Run("Update: Not Found", func(t *testing.T) {
		_, err := svc.Update(ctx, 99, UpdateRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("AddImage: Appends URL", func(t *testing.T) {
		b, err := svc.AddImage(ctx, 6, "/v1/files/abc")
		require.NoError(t, err)
		assert.Len(t, b.Images, 4)
		assert.Equal(t, "/v1/files/abc", b.Images[3])
	})

	t.Run("Returned Boats Are Copies", func(t *testing.T) {
		b, err := svc.GetByID(ctx, 2)
		require.NoError(t, err)
		b.Categories[0] = "mutated"

		again, err := svc.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "family", again.Categories[0])
	})

	t.Run("Delete: Then Not Found", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, 4))
		_, err := svc.GetByID(ctx, 4)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, 4), ErrNotFound)
	})

	t.Run("List: Invalid Sort", func(t *testing.T) {
		_, _, err := svc.List(ctx, Filter{SortBy: "bogus"})
		assert.ErrorIs(t, err, ErrInvalidSort)
	})
}
