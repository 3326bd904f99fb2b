package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrValidation         = apperror.New(http.StatusBadRequest, "invalid registration")
	ErrPasswordMismatch   = apperror.New(http.StatusBadRequest, "password confirmation does not match")
)

// Role is fixed at creation.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Clone() *User {
	c := *u
	return &c
}
