package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/storefront/storefront-api/internal/core/domain"
)

// Custom tags registered on every Schema.
const (
	TagEmail         = "email_format"
	TagPassword      = "strong_password"
	TagPasswordBytes = "password_bytes"
)

// Schema validates request structs declared with `validate` tags and reports
// only the first violation, named after the field's JSON key.
type Schema struct {
	v *validator.Validate
}

// NewSchema returns a Schema with the storefront custom tags registered.
func NewSchema() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation(TagPassword, func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	_ = v.RegisterValidation(TagPasswordBytes, func(fl validator.FieldLevel) bool {
		return FitsPasswordBytes(fl.Field().String())
	})

	return &Schema{v: v}
}

// Validate returns nil or a VALIDATION_ERROR describing the first offending
// field and the constraint it broke.
func (s *Schema) Validate(payload any) error {
	err := s.v.Struct(payload)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return domain.NewValidationError(fieldError(ve[0]))
	}
	return domain.NewValidationError("")
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fmt.Sprintf("%q", fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case TagEmail, "email":
		return field + " must be a valid email"
	case TagPassword:
		return field + " must be at least 6 characters long and contain an uppercase letter, " +
			"a lowercase letter, a number and one of " + passwordSymbols
	case TagPasswordBytes:
		return fmt.Sprintf("%s length must be less than or equal to %d bytes long", field, MaxPasswordBytes)
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		return field + " must contain only digits"
	case "excluded_with_all", "isdefault":
		return field + " is not allowed"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
