package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// RequiredText trims value and checks its length in runes.
func RequiredText(field, label, value string, min, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewValidationError(field, fmt.Sprintf("%s es requerido", label))
	}
	n := utf8.RuneCountInString(trimmed)
	if n < min {
		return "", NewValidationError(field, fmt.Sprintf("%s debe tener al menos %d caracteres", label, min))
	}
	if max > 0 && n > max {
		return "", NewValidationError(field, fmt.Sprintf("%s no puede exceder %d caracteres", label, max))
	}
	return trimmed, nil
}

// OptionalText trims value and enforces an upper bound. Empty input is allowed.
func OptionalText(field, label, value string, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if utf8.RuneCountInString(trimmed) > max {
		return "", NewValidationError(field, fmt.Sprintf("%s no puede exceder %d caracteres", label, max))
	}
	return trimmed, nil
}

// NormalizeEmail lowercases and validates an address. Empty input is rejected only when required.
func NormalizeEmail(field, value string, required bool, max int) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		if required {
			return "", NewValidationError(field, "El email es requerido")
		}
		return "", nil
	}
	if max > 0 && utf8.RuneCountInString(email) > max {
		return "", NewValidationError(field, fmt.Sprintf("El email no puede exceder %d caracteres", max))
	}
	if !emailPattern.MatchString(email) {
		return "", NewValidationError(field, "Por favor ingrese un email válido")
	}
	return email, nil
}
