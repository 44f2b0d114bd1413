package style

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a named preset does not exist.
var ErrNotFound = errors.New("style preset not found")

// ValidationError reports a malformed style payload.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field '%s': %s", e.Field, e.Message)
	}
	return e.Message
}

// Details surfaces structured fields for API error responses.
func (e *ValidationError) Details() map[string]interface{} {
	d := make(map[string]interface{})
	if e.Field != "" {
		d["field"] = e.Field
	}
	return d
}
