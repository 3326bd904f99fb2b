package booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// SubmitRequest is a booking submission from the storefront form.
type SubmitRequest struct {
	BoatID      int64     `label:"boatId" validate:"required,min=1"`
	UserID      string    `label:"userId" validate:"omitempty,uuid"`
	StartDate   time.Time `label:"startDate" validate:"required"`
	EndDate     time.Time `label:"endDate" validate:"required"`
	ClientName  string    `label:"clientName" validate:"required,min=2"`
	ClientEmail string    `label:"clientEmail" validate:"required,email"`
	ClientPhone string    `label:"clientPhone" validate:"required,min=6"`
	Comments    string    `label:"comments" validate:"max=2000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("label")
	})
	return v
}

func (r *SubmitRequest) trim() {
	r.ClientName = strings.TrimSpace(r.ClientName)
	r.ClientEmail = strings.TrimSpace(r.ClientEmail)
	r.ClientPhone = strings.TrimSpace(r.ClientPhone)
	r.Comments = strings.TrimSpace(r.Comments)
}

// Validate checks the form fields and the date range against now.
// The start date may be any time on the current UTC day or later.
func (r *SubmitRequest) Validate(now time.Time) error {
	r.trim()

	var problems []string
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate submission failed: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	if !r.StartDate.IsZero() && !r.EndDate.IsZero() {
		today := now.UTC().Truncate(day)
		if r.StartDate.UTC().Before(today) {
			problems = append(problems, "startDate must be today or later")
		}
		if !r.EndDate.After(r.StartDate) {
			problems = append(problems, "endDate must be after startDate")
		}
	}

	if len(problems) > 0 {
		return ErrValidation.Detail("%s", strings.Join(problems, "; "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "uuid":
		return fe.Field() + " must be a UUID"
	default:
		return fe.Field() + " is invalid"
	}
}
