package http

import (
	"time"

	bookingHttp "github.com/nekogravitycat/boat-rental-backend/internal/booking/http"
	"github.com/nekogravitycat/boat-rental-backend/internal/cart"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/response"
)

type AddItemRequest struct {
	BoatID int64 `json:"boatId" binding:"required,min=1"`
	Days   int   `json:"days" binding:"required,min=1"`
}

// SetDaysRequest allows any value; days below 1 leave the item unchanged.
type SetDaysRequest struct {
	Days int `json:"days"`
}

type BoatIDRequest struct {
	BoatID int64 `uri:"boatId" binding:"required,min=1"`
}

type SummaryRequest struct {
	Promo string `form:"promo"`
}

type CheckoutRequest struct {
	StartDate   string `json:"startDate" binding:"required"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
	Comments    string `json:"comments"`
}

type ItemResponse struct {
	BoatID   int64   `json:"boatId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Days     int     `json:"days"`
	Subtotal float64 `json:"subtotal"`
}

type CartResponse struct {
	Items      []ItemResponse `json:"items"`
	TotalItems int            `json:"totalItems"`
	TotalPrice float64        `json:"totalPrice"`
}

func NewCartResponse(v *cart.View) CartResponse {
	items := make([]ItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = ItemResponse{
			BoatID:   it.BoatID,
			Name:     it.Name,
			Price:    it.Price,
			Image:    it.Image,
			Days:     it.Days,
			Subtotal: it.Subtotal(),
		}
	}
	return CartResponse{Items: items, TotalItems: v.TotalItems, TotalPrice: v.TotalPrice}
}

type SummaryResponse struct {
	TotalItems      int     `json:"totalItems"`
	TotalPrice      float64 `json:"totalPrice"`
	PromoCode       string  `json:"promoCode,omitempty"`
	DiscountPercent float64 `json:"discountPercent"`
	FinalPrice      float64 `json:"finalPrice"`
}

func NewSummaryResponse(s cart.Summary) SummaryResponse {
	return SummaryResponse{
		TotalItems:      s.TotalItems,
		TotalPrice:      s.TotalPrice,
		PromoCode:       s.PromoCode,
		DiscountPercent: s.DiscountPercent,
		FinalPrice:      s.FinalPrice,
	}
}

type CheckoutFailureResponse struct {
	BoatID int64  `json:"boatId"`
	Error  string `json:"error"`
}

type CheckoutResponse struct {
	Bookings []bookingHttp.BookingResponse `json:"bookings"`
	Failed   *CheckoutFailureResponse      `json:"failed,omitempty"`
}

func NewCheckoutResponse(r *cart.CheckoutResult) CheckoutResponse {
	resp := CheckoutResponse{Bookings: make([]bookingHttp.BookingResponse, len(r.Bookings))}
	for i, b := range r.Bookings {
		resp.Bookings[i] = bookingHttp.NewBookingResponse(b)
	}
	if r.Failed != nil {
		resp.Failed = &CheckoutFailureResponse{BoatID: r.Failed.BoatID, Error: failureMessage(r.Failed.Err)}
	}
	return resp
}

type SessionResponse struct {
	Session   string    `json:"session"`
	CreatedAt time.Time `json:"createdAt"`
}

func failureMessage(err error) string {
	_, msg := response.Describe(err)
	return msg
}
