package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nekogravitycat/boat-rental-backend/internal/auth"
	"github.com/nekogravitycat/boat-rental-backend/internal/booking"
	"github.com/nekogravitycat/boat-rental-backend/internal/cart"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/request"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
)

const (
	SessionHeader = "X-Cart-Session"
	sessionKey    = "cartSession"
)

// RequireSession validates the X-Cart-Session header and stores it in the context.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(session); err != nil {
			response.Error(c, cart.ErrMissingSession)
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

func session(c *gin.Context) string {
	return c.GetString(sessionKey)
}

type Handler struct {
	service cart.Service
}

func NewHandler(service cart.Service) *Handler {
	return &Handler{service: service}
}

// NewSession hands out a fresh cart session id.
func (h *Handler) NewSession(c *gin.Context) {
	response.OK(c, http.StatusCreated, SessionResponse{
		Session:   uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	})
}

func (h *Handler) Get(c *gin.Context) {
	v, err := h.service.Get(c.Request.Context(), session(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewCartResponse(v))
}

// Add puts a boat in the cart or extends the days of one already there.
func (h *Handler) Add(c *gin.Context) {
	var body AddItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	v, err := h.service.Add(c.Request.Context(), session(c), body.BoatID, body.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewCartResponse(v))
}

func (h *Handler) SetDays(c *gin.Context) {
	var uri BoatIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid boat id")
		return
	}
	var body SetDaysRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	v, err := h.service.SetDays(c.Request.Context(), session(c), uri.BoatID, body.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewCartResponse(v))
}

func (h *Handler) Remove(c *gin.Context) {
	var uri BoatIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid boat id")
		return
	}

	v, err := h.service.Remove(c.Request.Context(), session(c), uri.BoatID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewCartResponse(v))
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), session(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) Summary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	sum, err := h.service.Summary(c.Request.Context(), session(c), req.Promo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, NewSummaryResponse(sum))
}

// Checkout books every cart item. A partial failure answers with the failing
// item's status code and lists the bookings that were made.
func (h *Handler) Checkout(c *gin.Context) {
	var body CheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	start, err := request.ParseDate(body.StartDate)
	if err != nil {
		response.Error(c, booking.ErrValidation.Detail("startDate: %v", err))
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), session(c), cart.CheckoutRequest{
		UserID:      auth.GetUserID(c),
		StartDate:   start,
		ClientName:  body.ClientName,
		ClientEmail: body.ClientEmail,
		ClientPhone: body.ClientPhone,
		Comments:    body.Comments,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Failed != nil {
		status, msg := response.Describe(result.Failed.Err)
		if status >= http.StatusInternalServerError {
			_ = c.Error(result.Failed.Err)
		}
		c.AbortWithStatusJSON(status, response.Envelope{
			Error: "checkout incomplete: " + msg,
			Data:  NewCheckoutResponse(result),
		})
		return
	}
	response.OK(c, http.StatusCreated, NewCheckoutResponse(result))
}
