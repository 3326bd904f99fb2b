package cart

import (
	"net/http"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/apperror"
)

var (
	ErrInvalidDays      = apperror.New(http.StatusBadRequest, "days must be at least 1")
	ErrInvalidPromoCode = apperror.New(http.StatusBadRequest, "invalid promo code")
	ErrBoatNotFound     = apperror.New(http.StatusNotFound, "boat not found")
	ErrEmptyCart        = apperror.New(http.StatusBadRequest, "cart is empty")
	ErrMissingSession   = apperror.New(http.StatusBadRequest, "X-Cart-Session header must be a UUID")
)

// Item is one boat in the cart. Name, Price and Image are snapshots taken
// when the boat was first added.
type Item struct {
	BoatID int64   `json:"boatId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Days   int     `json:"days"`
}

// Subtotal is Price × Days.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Days)
}

// Summary is the priced view of a cart.
type Summary struct {
	TotalItems      int
	TotalPrice      float64
	PromoCode       string
	DiscountPercent float64
	FinalPrice      float64
}
