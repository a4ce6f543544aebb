package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trimsync/barbershop-api/internal/apperr"
)

// Request validates inbound request structs beyond what JSON binding covers.
type Request struct {
	validate *validator.Validate
}

func NewRequest() *Request {
	return &Request{validate: validator.New()}
}

// Struct runs tag validation and translates failures into one validation
// error the HTTP layer can return as a 400.
func (r *Request) Struct(v any) error {
	err := r.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(err, apperr.KindValidation, "invalid_request", "invalid request")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, translate(fe))
	}

	return apperr.Validation("invalid_request", strings.Join(msgs, "; "))
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a valid uuid", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fe.Error()
	}
}
