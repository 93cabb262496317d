package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"reunion-backend/domain/core/valueobjects"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "decade" restricts a field to the eight timeline period labels.
	v.RegisterValidation("decade", func(fl validator.FieldLevel) bool {
		return valueobjects.IsValidDecade(fl.Field().String())
	})
	// "reaction" restricts a field to the named reaction categories.
	v.RegisterValidation("reaction", func(fl validator.FieldLevel) bool {
		return valueobjects.IsValidReaction(fl.Field().String())
	})
	return v
}

// ValidateStruct validates a struct based on its validation tags
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return err
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "decade":
		return fmt.Sprintf("%s must be a valid decade label", field)
	case "reaction":
		return fmt.Sprintf("%s must be a known reaction", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
