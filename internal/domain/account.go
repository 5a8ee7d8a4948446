package domain

import (
	"strings"
	"time"
)

// Role gates access to back-office operations.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	// RoleUser is recognised but not granted anything beyond authentication.
	RoleUser Role = "usuario"
)

const (
	UsernameMin = 3
	UsernameMax = 50
	PasswordMin = 6
	// PasswordMax is in bytes; bcrypt refuses longer input.
	PasswordMax    = 72
	AccountMailMax = 254
)

// ParseRole accepts the three known roles.
func ParseRole(value string) (Role, error) {
	switch Role(strings.TrimSpace(value)) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", NewValidationError("role", "Rol inválido")
}

// Account is a back-office login. PasswordHash never leaves the service layer.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the token principal for the account.
func (a Account) Identity() Identity {
	return Identity{ID: a.ID, Username: a.Username, Role: a.Role}
}

// NewUsername validates a login name.
func NewUsername(value string) (string, error) {
	return RequiredText("username", "El nombre de usuario", value, UsernameMin, UsernameMax)
}

// ValidatePassword checks the plaintext length before hashing.
func ValidatePassword(value string) error {
	if value == "" {
		return NewValidationError("password", "La contraseña es requerida")
	}
	if len([]rune(value)) < PasswordMin {
		return NewValidationError("password", "La contraseña debe tener al menos 6 caracteres")
	}
	if len(value) > PasswordMax {
		return NewValidationError("password", "La contraseña no puede exceder 72 bytes")
	}
	return nil
}
