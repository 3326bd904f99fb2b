package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nekogravitycat/boat-rental-backend/internal/auth"
)

func newTestService() Service {
	return NewService(NewMemoryRepository(), auth.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:                 "  Jane Doe ",
		Email:                " Jane@Example.COM ",
		Password:             "password123",
		PasswordConfirmation: "password123",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Register: Success", func(t *testing.T) {
		svc := newTestService()
		u, err := svc.Register(ctx, validInput())
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "Jane Doe", u.Name)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.Equal(t, RoleUser, u.Role)
		assert.NotEqual(t, "password123", u.PasswordHash)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("Register: Duplicate Email", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Register(ctx, validInput())
		require.NoError(t, err)

		in := validInput()
		in.Email = "JANE@example.com"
		_, err = svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("Register: Short Password", func(t *testing.T) {
		in := validInput()
		in.Password, in.PasswordConfirmation = "short", "short"
		_, err := newTestService().Register(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, errors.Unwrap(err).Error(), "password")
	})

	t.Run("Register: Invalid Email", func(t *testing.T) {
		in := validInput()
		in.Email = "not-an-email"
		_, err := newTestService().Register(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Register: Confirmation Mismatch", func(t *testing.T) {
		in := validInput()
		in.PasswordConfirmation = "password124"
		_, err := newTestService().Register(ctx, in)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registered, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	t.Run("Login: Success", func(t *testing.T) {
		u, err := svc.Login(ctx, "JANE@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("Login: Wrong Password", func(t *testing.T) {
		_, err := svc.Login(ctx, "jane@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Login: Unknown Email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("GetByID: Not Found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	admin, err := svc.EnsureAdmin(ctx, "Admin@Example.com", "adminpass")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "admin@example.com", admin.Email)

	t.Run("EnsureAdmin: Idempotent", func(t *testing.T) {
		again, err := svc.EnsureAdmin(ctx, "admin@example.com", "adminpass")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, again.ID)
	})

	t.Run("EnsureAdmin: Can Log In", func(t *testing.T) {
		u, err := svc.Login(ctx, "admin@example.com", "adminpass")
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("EnsureAdmin: Weak Password", func(t *testing.T) {
		_, err := newTestService().EnsureAdmin(ctx, "root@example.com", "short")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
