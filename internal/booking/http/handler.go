package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/boat-rental-backend/internal/auth"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/request"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// CheckAvailability reports whether a boat is free over a date range and what it would cost.
func (h *Handler) CheckAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	start, end, err := req.Dates()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	q, err := h.service.CheckAvailability(c.Request.Context(), req.BoatID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewAvailabilityResponse(q))
}

// Create submits a booking. Guests may book; an authenticated user becomes the owner.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	req, err := body.SubmitRequest(auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	flow := booking.NewFlow(h.service)
	b, err := flow.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, SubmitResponse{
		State:   string(flow.State()),
		Booking: NewBookingResponse(b),
	})
}

// List returns all bookings to admins and only their own to other users.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	filter := booking.Filter{
		UserID:  auth.GetUserID(c),
		BoatID:  req.BoatID,
		Status:  booking.Status(req.Status),
		Page:    req.Page,
		PerPage: req.PerPage,
	}
	// Admins can see all or filter by specific user
	if auth.IsAdmin(c) {
		filter.UserID = req.UserID
	}
	if filter.Page < 1 {
		filter.Page = booking.DefaultPage
	}
	if filter.PerPage < 1 {
		filter.PerPage = booking.DefaultPerPage
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	response.Page(c, items, filter.Page, filter.PerPage, total)
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByUUIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !auth.IsAdmin(c) && b.UserID != auth.GetUserID(c) {
		// Hide other users' bookings entirely.
		response.Error(c, booking.ErrNotFound)
		return
	}
	response.OK(c, http.StatusOK, NewBookingResponse(b))
}

// UpdateStatus moves a booking through its lifecycle.
// Access Control: admin only.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByUUIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewBookingResponse(b))
}

// Cancel cancels a booking. Access Control: owner or admin.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByUUIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.ID, auth.GetUserID(c), auth.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewBookingResponse(b))
}
