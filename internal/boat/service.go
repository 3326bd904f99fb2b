package boat

import (
	"context"
	"strings"
)

type CreateRequest struct {
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
}

// UpdateRequest carries a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Name           *string
	Description    *string
	Price          *float64
	Capacity       *int
	Length         *float64
	Year           *int
	Rating         *float64
	Categories     []string
	Features       []string
	Images         []string
	IsNew          *bool
	Specifications *Specifications
}

type Service interface {
	List(ctx context.Context, filter Filter) ([]*Boat, int, error)
	All(ctx context.Context) ([]*Boat, error)
	GetByID(ctx context.Context, id int64) (*Boat, error)
	Create(ctx context.Context, req CreateRequest) (*Boat, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Boat, error)
	Delete(ctx context.Context, id int64) error
	AddImage(ctx context.Context, id int64, url string) (*Boat, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Boat, int, error) {
	if err := filter.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

func (s *service) All(ctx context.Context) ([]*Boat, error) {
	return s.repo.All(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Boat, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Boat, error) {
	b := &Boat{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Price:          req.Price,
		Capacity:       req.Capacity,
		Length:         req.Length,
		Year:           req.Year,
		Rating:         req.Rating,
		Categories:     req.Categories,
		Features:       req.Features,
		Images:         req.Images,
		IsNew:          req.IsNew,
		Specifications: req.Specifications,
	}
	if err := validate(b); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Boat, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.Capacity != nil {
		b.Capacity = *req.Capacity
	}
	if req.Length != nil {
		b.Length = *req.Length
	}
	if req.Year != nil {
		b.Year = *req.Year
	}
	if req.Rating != nil {
		b.Rating = *req.Rating
	}
	if req.Categories != nil {
		b.Categories = req.Categories
	}
	if req.Features != nil {
		b.Features = req.Features
	}
	if req.Images != nil {
		b.Images = req.Images
	}
	if req.IsNew != nil {
		b.IsNew = *req.IsNew
	}
	if req.Specifications != nil {
		b.Specifications = *req.Specifications
	}

	if err := validate(b); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddImage appends url to the boat's gallery.
func (s *service) AddImage(ctx context.Context, id int64, url string) (*Boat, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Images = append(b.Images, url)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func validate(b *Boat) error {
	if b.Name == "" {
		return ErrEmptyName
	}
	if b.Price <= 0 {
		return ErrInvalidPrice
	}
	if b.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if b.Rating < 0 || b.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
