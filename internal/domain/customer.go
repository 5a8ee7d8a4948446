package domain

import (
	"strings"
	"time"
)

// WeekState marks one calendar week of a customer's visit log.
type WeekState string

const (
	WeekNeutral   WeekState = "gris"
	WeekFlagged   WeekState = "rojo"
	WeekConfirmed WeekState = "verde"
)

const (
	WeeksPerYear     = 52
	CustomerNameMin  = 2
	CustomerNameMax  = 120
	CustomerDocMax   = 50
	CustomerPhoneMax = 30
	CustomerEmailMax = 120
)

// ParseWeekState accepts only the three known states.
func ParseWeekState(value string) (WeekState, error) {
	switch WeekState(strings.TrimSpace(value)) {
	case WeekNeutral:
		return WeekNeutral, nil
	case WeekFlagged:
		return WeekFlagged, nil
	case WeekConfirmed:
		return WeekConfirmed, nil
	}
	return "", NewValidationError("state", "El estado de semana es inválido")
}

// ValidateWeekIndex checks index is within [0, WeeksPerYear).
func ValidateWeekIndex(index int) error {
	if index < 0 || index >= WeeksPerYear {
		return NewValidationError("weekIndex", "El índice de semana es inválido")
	}
	return nil
}

// NewWeekStates returns a fresh log with every week neutral.
func NewWeekStates() []WeekState {
	states := make([]WeekState, WeeksPerYear)
	for i := range states {
		states[i] = WeekNeutral
	}
	return states
}

// NormalizeWeekStates pads or truncates stored data to exactly WeeksPerYear entries.
// Unknown values are reset to neutral.
func NormalizeWeekStates(states []WeekState) []WeekState {
	out := NewWeekStates()
	for i := 0; i < len(states) && i < WeeksPerYear; i++ {
		if s, err := ParseWeekState(string(states[i])); err == nil {
			out[i] = s
		}
	}
	return out
}

// Customer is a loyalty record with a 52-week visit log.
type Customer struct {
	ID         string
	Name       string
	Document   string
	Phone      string
	Email      string
	WeekStates []WeekState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CustomerDetails are the editable text fields of a customer.
type CustomerDetails struct {
	Name     string
	Document string
	Phone    string
	Email    string
}

// NewCustomerName validates a customer name.
func NewCustomerName(value string) (string, error) {
	return RequiredText("name", "El nombre del cliente", value, CustomerNameMin, CustomerNameMax)
}

// Normalize validates every field of the details.
func (d CustomerDetails) Normalize() (CustomerDetails, error) {
	name, err := NewCustomerName(d.Name)
	if err != nil {
		return CustomerDetails{}, err
	}
	document, err := OptionalText("document", "El documento", d.Document, CustomerDocMax)
	if err != nil {
		return CustomerDetails{}, err
	}
	phone, err := OptionalText("phone", "El teléfono", d.Phone, CustomerPhoneMax)
	if err != nil {
		return CustomerDetails{}, err
	}
	email, err := NormalizeEmail("email", d.Email, false, CustomerEmailMax)
	if err != nil {
		return CustomerDetails{}, err
	}
	return CustomerDetails{Name: name, Document: document, Phone: phone, Email: email}, nil
}
