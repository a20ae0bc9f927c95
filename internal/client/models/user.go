// Package models defines client-side data structures for ClinicLink.
package models

import "github.com/cliniclink/cliniclink/internal/common"

// User is the identity record cached by the client. The JSON tags match the
// backend's wire shape, so the same struct serves both API decoding and the
// snapshot persisted in the token store.
type User struct {
	ID                  string      `json:"id"`
	FirstName           string      `json:"first_name"`
	LastName            string      `json:"last_name"`
	Email               string      `json:"email"`
	Username            string      `json:"username"`
	Role                common.Role `json:"role"`
	OnboardingCompleted bool        `json:"onboarding_completed"`
	Approved            bool        `json:"approved"`
	InstitutionID       string      `json:"institution_id,omitempty"`
	ProgramID           string      `json:"program_id,omitempty"`
}

// FullName renders "First Last", tolerating partially filled records.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
