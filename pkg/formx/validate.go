package formx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError is a validation failure on one field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + " " + e.Message
}

// Rule is a cross-field check. It returns nil when the data is valid.
type Rule[D any] func(D) *FieldError

// Validate runs the struct tag rules of d followed by rules. Only the first
// failure of a field is reported.
func Validate[D any](d D, rules ...Rule[D]) []FieldError {
	var out []FieldError
	seen := map[string]bool{}
	add := func(fe FieldError) {
		if seen[fe.Field] {
			return
		}
		seen[fe.Field] = true
		out = append(out, fe)
	}

	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				add(FieldError{Field: fe.Field(), Message: describe(fe)})
			}
		}
	}
	for _, rule := range rules {
		if fe := rule(d); fe != nil {
			add(*fe)
		}
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "e164":
		return "must be a phone number in international format"
	default:
		return "is invalid"
	}
}

// GreaterThan requires high to exceed low when both are set
func GreaterThan[D any](field, message string, low, high func(D) *float64) Rule[D] {
	return func(d D) *FieldError {
		l, h := low(d), high(d)
		if l == nil || h == nil || *h > *l {
			return nil
		}
		return &FieldError{Field: field, Message: message}
	}
}

// After requires end to be later than start when both are set
func After[D any](field, message string, start, end func(D) *time.Time) Rule[D] {
	return func(d D) *FieldError {
		s, e := start(d), end(d)
		if s == nil || e == nil || e.After(*s) {
			return nil
		}
		return &FieldError{Field: field, Message: message}
	}
}

// Unless disables rule when skip reports true
func Unless[D any](skip func(D) bool, rule Rule[D]) Rule[D] {
	return func(d D) *FieldError {
		if skip(d) {
			return nil
		}
		return rule(d)
	}
}
