package schema

import "net/http"

type (
	// Response is the envelope wrapping every API response.
	Response[T any] struct {
		Status    int          `json:"status"`
		Message   string       `json:"message"`
		Data      *T           `json:"data,omitempty"`
		Timestamp string       `json:"timestamp"`
		Errors    []FieldError `json:"errors,omitempty"`
	}

	// FieldError describes a rejected request field.
	FieldError struct {
		Field         string `json:"field"`
		ErrorMessage  string `json:"errorMessage"`
		RejectedValue string `json:"rejectedValue"`
	}

	// Empty is the payload of endpoints that return no data.
	Empty struct{}
)

// OK returns true when the envelope reports business level success
func (r *Response[T]) OK() bool {
	return r != nil && r.Status == http.StatusOK
}

// FieldErrors returns field to error message map, the last message for a field wins
func (r *Response[T]) FieldErrors() map[string]string {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	ret := make(map[string]string, len(r.Errors))
	for _, fieldError := range r.Errors {
		ret[fieldError.Field] = fieldError.ErrorMessage
	}
	return ret
}
