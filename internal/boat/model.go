package boat

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "boat not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price must be positive")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be positive")
	ErrInvalidRating   = apperror.New(http.StatusBadRequest, "rating must be between 0 and 5")
	ErrInvalidSort     = apperror.New(http.StatusBadRequest, "invalid sortBy")
	ErrInvalidRange    = apperror.New(http.StatusBadRequest, "minPrice must not exceed maxPrice")
)

// Specifications are the free-form technical details shown on a boat page.
type Specifications struct {
	Engine   string
	Power    string
	MaxSpeed string
	Fuel     string
}

// Boat is a rentable vessel. Price is per day.
type Boat struct {
	ID             int64
	Name           string
	Description    string
	Price          float64
	Capacity       int
	Length         float64
	Year           int
	Rating         float64
	Categories     []string
	Features       []string
	Images         []string
	IsNew          bool
	Specifications Specifications
	CreatedAt      time.Time
}

// Clone returns a deep copy so callers cannot mutate repository state.
func (b *Boat) Clone() *Boat {
	c := *b
	c.Categories = append([]string(nil), b.Categories...)
	c.Features = append([]string(nil), b.Features...)
	c.Images = append([]string(nil), b.Images...)
	return &c
}

// MainImage returns the first image URL or an empty string.
func (b *Boat) MainImage() string {
	if len(b.Images) == 0 {
		return ""
	}
	return b.Images[0]
}

type SortBy string

const (
	SortPopular   SortBy = "popular"
	SortPriceAsc  SortBy = "priceAsc"
	SortPriceDesc SortBy = "priceDesc"
	SortNewest    SortBy = "newest"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 9
)

// Filter defines catalog listing parameters.
type Filter struct {
	Search      string
	Categories  []string
	MinPrice    *float64
	MaxPrice    *float64
	MinCapacity *int
	SortBy      SortBy
	Page        int
	PerPage     int
}

// Normalize fills defaults and validates the filter.
func (f *Filter) Normalize() error {
	if f.SortBy == "" {
		f.SortBy = SortPopular
	}
	switch f.SortBy {
	case SortPopular, SortPriceAsc, SortPriceDesc, SortNewest:
	default:
		return ErrInvalidSort
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return ErrInvalidRange
	}
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	return nil
}
