// Package validation checks request payloads against their declared rules
// and reports every failed field at once, keyed by JSON field name.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the JSON field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages maps "<Struct>.<jsonField>" (optionally suffixed with the
// failed tag) to the message the API contract specifies for that rule.
var messages = map[string]string{
	"SpotInput.address":     "Street address is required",
	"SpotInput.city":        "City is required",
	"SpotInput.state":       "State is required",
	"SpotInput.country":     "Country is required",
	"SpotInput.lat":         "Latitude is not valid",
	"SpotInput.lng":         "Longitude is not valid",
	"SpotInput.name":        "Name is required",
	"SpotInput.name.max":    "Name must be less than 50 characters",
	"SpotInput.description": "Description is required",
	"SpotInput.price":       "Price per day must be between 1 and 10000",

	"ImageInput.url": "Image URL is required",

	"ReviewInput.review": "Review text is required",
	"ReviewInput.stars":  "Stars must be an integer from 1 to 5",

	"BookingInput.startDate":          "startDate is required",
	"BookingInput.startDate.datetime": "startDate must be a valid date",
	"BookingInput.endDate":            "endDate is required",
	"BookingInput.endDate.datetime":   "endDate must be a valid date",

	"SignupInput.firstName":         "First Name is required",
	"SignupInput.lastName":          "Last Name is required",
	"SignupInput.email":             "Invalid email",
	"SignupInput.username":          "Username is required",
	"SignupInput.username.min":      "Username must be 4 characters or more",
	"SignupInput.username.excludes": "Username cannot be an email",
	"SignupInput.password":          "Password is required",
	"SignupInput.password.min":      "Password must be 6 characters or more",

	"LoginInput.credential": "Email or username is required",
	"LoginInput.password":   "Password is required",
}

// Check validates a payload struct. It returns nil when the payload is
// valid, otherwise a map of JSON field name to message covering every
// violated rule. Rules never short-circuit: all fields are evaluated in
// one pass.
func Check(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": "Invalid request body"}
	}

	fieldErrors := map[string]string{}
	for _, fieldErr := range validationErrors {
		field := fieldErr.Field()
		if _, seen := fieldErrors[field]; seen {
			continue
		}
		fieldErrors[field] = messageFor(fieldErr)
	}
	return fieldErrors
}

func messageFor(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if msg, ok := messages[namespace+"."+fieldErr.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[namespace]; ok {
		return msg
	}
	return fieldErr.Field() + " is invalid"
}
