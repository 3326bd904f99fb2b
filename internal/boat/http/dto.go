package http

import (
	"strings"
	"time"

	"github.com/nekogravitycat/boat-rental-backend/internal/boat"
	"github.com/nekogravitycat/boat-rental-backend/internal/pkg/request"
)

// ListBoatsRequest defines catalog query parameters.
// category may be repeated or comma separated.
type ListBoatsRequest struct {
	request.ListParams
	Search      string   `form:"search"`
	Category    []string `form:"category"`
	MinPrice    *float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice    *float64 `form:"maxPrice" binding:"omitempty,min=0"`
	MinCapacity *int     `form:"minCapacity" binding:"omitempty,min=1"`
	SortBy      string   `form:"sortBy" binding:"omitempty,oneof=popular priceAsc priceDesc newest"`
}

func (r *ListBoatsRequest) Filter() boat.Filter {
	var categories []string
	for _, c := range r.Category {
		for _, part := range strings.Split(c, ",") {
			if part = strings.TrimSpace(part); part != "" {
				categories = append(categories, part)
			}
		}
	}
	return boat.Filter{
		Search:      strings.TrimSpace(r.Search),
		Categories:  categories,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		MinCapacity: r.MinCapacity,
		SortBy:      boat.SortBy(r.SortBy),
		Page:        r.Page,
		PerPage:     r.PerPage,
	}
}

type SpecificationsDTO struct {
	Engine   string `json:"engine"`
	Power    string `json:"power"`
	MaxSpeed string `json:"maxSpeed"`
	Fuel     string `json:"fuel"`
}

func (s SpecificationsDTO) model() boat.Specifications {
	return boat.Specifications{Engine: s.Engine, Power: s.Power, MaxSpeed: s.MaxSpeed, Fuel: s.Fuel}
}

type BoatResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	Capacity       int               `json:"capacity"`
	Length         float64           `json:"length"`
	Year           int               `json:"year"`
	Rating         float64           `json:"rating"`
	Categories     []string          `json:"categories"`
	Features       []string          `json:"features"`
	Images         []string          `json:"images"`
	IsNew          bool              `json:"isNew"`
	Specifications SpecificationsDTO `json:"specifications"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func NewBoatResponse(b *boat.Boat) BoatResponse {
	return BoatResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		Capacity:    b.Capacity,
		Length:      b.Length,
		Year:        b.Year,
		Rating:      b.Rating,
		Categories:  orEmpty(b.Categories),
		Features:    orEmpty(b.Features),
		Images:      orEmpty(b.Images),
		IsNew:       b.IsNew,
		Specifications: SpecificationsDTO{
			Engine:   b.Specifications.Engine,
			Power:    b.Specifications.Power,
			MaxSpeed: b.Specifications.MaxSpeed,
			Fuel:     b.Specifications.Fuel,
		},
		CreatedAt: b.CreatedAt,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type CreateBoatRequest struct {
	Name           string            `json:"name" binding:"required"`
	Description    string            `json:"description"`
	Price          float64           `json:"price" binding:"required,gt=0"`
	Capacity       int               `json:"capacity" binding:"required,min=1"`
	Length         float64           `json:"length" binding:"omitempty,min=0"`
	Year           int               `json:"year" binding:"omitempty,min=1900"`
	Rating         float64           `json:"rating" binding:"omitempty,min=0,max=5"`
	Categories     []string          `json:"categories"`
	Features       []string          `json:"features"`
	Images         []string          `json:"images" binding:"omitempty,dive,required"`
	IsNew          bool              `json:"isNew"`
	Specifications SpecificationsDTO `json:"specifications"`
}

func (r *CreateBoatRequest) ServiceRequest() boat.CreateRequest {
	return boat.CreateRequest{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		Capacity:       r.Capacity,
		Length:         r.Length,
		Year:           r.Year,
		Rating:         r.Rating,
		Categories:     r.Categories,
		Features:       r.Features,
		Images:         r.Images,
		IsNew:          r.IsNew,
		Specifications: r.Specifications.model(),
	}
}

type UpdateBoatRequest struct {
	Name           *string            `json:"name" binding:"omitempty,min=1"`
	Description    *string            `json:"description"`
	Price          *float64           `json:"price" binding:"omitempty,gt=0"`
	Capacity       *int               `json:"capacity" binding:"omitempty,min=1"`
	Length         *float64           `json:"length" binding:"omitempty,min=0"`
	Year           *int               `json:"year" binding:"omitempty,min=1900"`
	Rating         *float64           `json:"rating" binding:"omitempty,min=0,max=5"`
	Categories     []string           `json:"categories"`
	Features       []string           `json:"features"`
	Images         []string           `json:"images" binding:"omitempty,dive,required"`
	IsNew          *bool              `json:"isNew"`
	Specifications *SpecificationsDTO `json:"specifications"`
}

func (r *UpdateBoatRequest) ServiceRequest() boat.UpdateRequest {
	req := boat.UpdateRequest{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Length:      r.Length,
		Year:        r.Year,
		Rating:      r.Rating,
		Categories:  r.Categories,
		Features:    r.Features,
		Images:      r.Images,
		IsNew:       r.IsNew,
	}
	if r.Specifications != nil {
		s := r.Specifications.model()
		req.Specifications = &s
	}
	return req
}
