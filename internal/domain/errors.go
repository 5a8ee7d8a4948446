package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a unique field collides with an existing record.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrDuplicateSubmission is returned when the submitting address already reviewed inside the window.
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInactiveAccount     = errors.New("account is inactive")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("insufficient permissions")
	// ErrSelfLockout is returned when an identity targets its own account with a lockout operation.
	ErrSelfLockout = errors.New("operation would lock out the caller")
)

// ValidationError describes a rejected input field. Message is safe to show to end users.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
