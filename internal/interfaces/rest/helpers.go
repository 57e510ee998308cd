package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"
)

// DecodeJSON reads the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// ValidationDetails flattens validator errors into field -> message pairs
// the error mapper can serialize.
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		details["body"] = err.Error()
		return details
	}

	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			details[field] = fmt.Sprintf("the %s field is required", field)
		case "min":
			details[field] = fmt.Sprintf("the %s must be at least %s characters", field, fieldErr.Param())
		case "max":
			details[field] = fmt.Sprintf("the %s may not be greater than %s characters", field, fieldErr.Param())
		case "email":
			details[field] = "the email must be a valid email address"
		default:
			details[field] = fmt.Sprintf("the %s field is invalid", field)
		}
	}

	return details
}
