package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender only drives display grammar ("mesero" / "mesera").
type Gender string

const (
	GenderWaiter   Gender = "mesero"
	GenderWaitress Gender = "mesera"
)

const (
	StaffNameMin       = 2
	StaffNameMax       = 100
	employeeCodePrefix = "EMP-"
	employeeCodeLength = 8
)

// NewGender parses a gender tag. Empty input falls back to GenderWaitress.
func NewGender(value string) (Gender, error) {
	switch Gender(strings.TrimSpace(value)) {
	case "":
		return GenderWaitress, nil
	case GenderWaiter:
		return GenderWaiter, nil
	case GenderWaitress:
		return GenderWaitress, nil
	}
	return "", NewValidationError("gender", "El género debe ser mesero o mesera")
}

// StaffMember is a rateable member of the floor staff.
type StaffMember struct {
	ID         string
	Name       string
	PhotoURL   string
	EmployeeID string
	Gender     Gender
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewStaffName validates a display name.
func NewStaffName(value string) (string, error) {
	return RequiredText("name", "El nombre", value, StaffNameMin, StaffNameMax)
}

// NewEmployeeCode generates a public code of the form EMP-XXXXXXXX.
func NewEmployeeCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return employeeCodePrefix + strings.ToUpper(raw[:employeeCodeLength])
}

// StaffRating is the live average and review count of one staff member.
type StaffRating struct {
	Average float64
	Count   int
}

// RatedStaff pairs a staff record with its computed rating.
type RatedStaff struct {
	StaffMember
	Rating StaffRating
}

// WithRatings pairs members with ratings by id. Missing entries get a zero rating.
func WithRatings(members []StaffMember, ratings map[string]StaffRating) []RatedStaff {
	result := make([]RatedStaff, 0, len(members))
	for _, m := range members {
		result = append(result, RatedStaff{StaffMember: m, Rating: ratings[m.ID]})
	}
	return result
}
