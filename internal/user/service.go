package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nekogravitycat/boat-rental-backend/internal/auth"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// RegisterInput carries the fields of a self-service sign-up.
type RegisterInput struct {
	Name                 string `validate:"required,max=100"`
	Email                string `validate:"required,email"`
	Password             string `validate:"required,min=8"`
	PasswordConfirmation string
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// EnsureAdmin creates the admin account unless the email already exists.
	EnsureAdmin(ctx context.Context, email, password string) (*User, error)
}

type service struct {
	repo     Repository
	hasher   auth.PasswordHasher
	validate *validator.Validate
	log      *zap.Logger
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, log *zap.Logger) Service {
	return &service{
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.Named("user"),
	}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = strings.ToLower(fe.Field())
			}
			return nil, ErrValidation.Detail("invalid %s", strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("failed to validate registration: %w", err)
	}
	if in.Password != in.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	return s.create(ctx, in.Name, in.Email, in.Password, RoleUser)
}

func (s *service) create(ctx context.Context, name, email, password string, role Role) (*User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailAlreadyUsed) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user created", zap.String("userID", u.ID), zap.String("role", string(role)))
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)

	existing, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		if !existing.IsAdmin() {
			s.log.Warn("admin email belongs to a regular user", zap.String("email", cleanEmail))
		}
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check admin account: %w", err)
	}
	if len(password) < MinPasswordLength {
		return nil, ErrValidation.Detail("admin password must be at least %d characters", MinPasswordLength)
	}

	return s.create(ctx, "Administrator", cleanEmail, password, RoleAdmin)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
