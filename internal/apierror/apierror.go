// Package apierror defines the JSON envelope for every 4xx/5xx response.
// Messages are user-facing; internal error text never goes in here.
package apierror

// APIError is the canonical error envelope.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError adds the offending request fields.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewValidation(msg string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}
