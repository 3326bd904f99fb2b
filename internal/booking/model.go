package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrBoatNotFound      = apperror.New(http.StatusNotFound, "boat not found")
	ErrUnavailable       = apperror.New(http.StatusConflict, "boat is not available for the selected dates")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrValidation        = apperror.New(http.StatusBadRequest, "validation failed")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrIllegalTransition = apperror.New(http.StatusConflict, "illegal status transition")
	ErrStatusChanged     = apperror.New(http.StatusConflict, "booking status was changed concurrently")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

type Booking struct {
	ID          string
	BoatID      int64
	BoatName    string
	UserID      string // empty for guest bookings
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
	TotalPrice  float64
	ClientName  string
	ClientEmail string
	ClientPhone string
	Comments    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a copy detached from repository state.
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}

// Filter narrows a booking listing. Zero fields are ignored.
type Filter struct {
	UserID  string
	BoatID  int64
	Status  Status
	Page    int
	PerPage int
}

const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

func (f *Filter) normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
}
