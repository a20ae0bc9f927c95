package models

import (
	"time"

	"github.com/cliniclink/cliniclink/internal/common"
)

// User is the persisted account record. PasswordHash is a bcrypt digest and
// never leaves the server.
type User struct {
	ID                  string
	FirstName           string
	LastName            string
	Email               string
	Username            string
	PasswordHash        []byte
	Role                common.Role
	OnboardingCompleted bool
	Phone               string
	EmergencyContact    string
	Pronouns            string
	MFAEnabled          bool
	Approved            bool
	InstitutionID       string
	ProgramID           string
	CreatedAt           time.Time
}

// OnboardingProfile carries the contact details collected when a user
// finishes onboarding.
type OnboardingProfile struct {
	Phone            string
	EmergencyContact string
	Pronouns         string
}
