package http

import (
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	BoatID int64  `form:"boatId" binding:"omitempty,min=1"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	UserID string `form:"userId" binding:"omitempty,uuid"`
}

// AvailabilityRequest accepts dates as YYYY-MM-DD or RFC3339.
type AvailabilityRequest struct {
	BoatID    int64  `form:"boatId" binding:"required,min=1"`
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

func (r *AvailabilityRequest) Dates() (time.Time, time.Time, error) {
	start, err := request.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := request.ParseDate(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

type AvailabilityResponse struct {
	BoatID     int64     `json:"boatId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Available  bool      `json:"available"`
	Days       int       `json:"days"`
	TotalPrice float64   `json:"totalPrice"`
}

func NewAvailabilityResponse(q *booking.Quote) AvailabilityResponse {
	return AvailabilityResponse{
		BoatID:     q.BoatID,
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		Available:  q.Available,
		Days:       q.Days,
		TotalPrice: q.TotalPrice,
	}
}

// CreateBookingRequest is the storefront booking form.
// Field rules are enforced by the booking service so every entry point shares them.
type CreateBookingRequest struct {
	BoatID      int64  `json:"boatId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
	Comments    string `json:"comments"`
}

func (r *CreateBookingRequest) SubmitRequest(userID string) (booking.SubmitRequest, error) {
	req := booking.SubmitRequest{
		BoatID:      r.BoatID,
		UserID:      userID,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Comments:    r.Comments,
	}
	var err error
	if r.StartDate != "" {
		if req.StartDate, err = request.ParseDate(r.StartDate); err != nil {
			return req, booking.ErrValidation.Detail("startDate: %v", err)
		}
	}
	if r.EndDate != "" {
		if req.EndDate, err = request.ParseDate(r.EndDate); err != nil {
			return req, booking.ErrValidation.Detail("endDate: %v", err)
		}
	}
	return req, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	BoatID      int64     `json:"boatId"`
	BoatName    string    `json:"boatName"`
	UserID      *string   `json:"userId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
	TotalPrice  float64   `json:"totalPrice"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	ClientPhone string    `json:"clientPhone"`
	Comments    string    `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	var userID *string
	if b.UserID != "" {
		id := b.UserID
		userID = &id
	}
	return BookingResponse{
		ID:          b.ID,
		BoatID:      b.BoatID,
		BoatName:    b.BoatName,
		UserID:      userID,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Status:      string(b.Status),
		TotalPrice:  b.TotalPrice,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		ClientPhone: b.ClientPhone,
		Comments:    b.Comments,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// SubmitResponse wraps a created booking with the flow state that produced it.
type SubmitResponse struct {
	State   string          `json:"state"`
	Booking BookingResponse `json:"booking"`
}
