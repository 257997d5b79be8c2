// Package validate wraps go-playground/validator with the field naming and
// messages used in API error responses.
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"hostelcare/internal/pkg/response"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Report JSON/form names instead of Go field names
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return val
}

// Struct validates s and returns one FieldError per failed rule, or nil
func Struct(s interface{}) []response.FieldError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []response.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, response.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please provide a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

var messages = map[string]string{
	"fullName.required":    "Full name is required",
	"password.min":         "Password must be at least 6 characters",
	"password.required":    "Password is required",
	"role.oneof":           "Role must be student or warden",
	"title.required":       "Title is required",
	"description.required": "Description is required",
	"location.required":    "Location is required",
	"category.oneof":       "Invalid category",
	"category.required":    "Invalid category",
	"urgency.oneof":        "Invalid urgency level",
	"urgency.required":     "Invalid urgency level",
}
