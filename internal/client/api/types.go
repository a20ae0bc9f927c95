package api

import (
	"github.com/cliniclink/cliniclink/internal/client/models"
	"github.com/cliniclink/cliniclink/internal/common"
)

// LoginSuccess is the completed-login payload: the authenticated user, the
// bearer token for subsequent requests, and the names of any pending site
// invitations that were auto-accepted during login.
type LoginSuccess struct {
	User            *models.User `json:"user"`
	Token           string       `json:"token"`
	AcceptedInvites []string     `json:"accepted_invites,omitempty"`
}

// MFAChallenge is returned instead of LoginSuccess when the account requires
// a second factor. The challenge token is exchanged for a full session via
// VerifyMFA.
type MFAChallenge struct {
	MFAToken string `json:"mfa_token"`
}

// LoginOutcome is a tagged variant: exactly one of Success or Challenge is
// set. Call sites are expected to handle both arms explicitly.
type LoginOutcome struct {
	Success   *LoginSuccess
	Challenge *MFAChallenge
}

// RegisterRequest carries the fields of the registration form. Registration
// follows a pending-approval workflow and does not yield a token.
type RegisterRequest struct {
	FirstName            string      `json:"first_name"`
	LastName             string      `json:"last_name"`
	Email                string      `json:"email"`
	Username             string      `json:"username"`
	Password             string      `json:"password"`
	PasswordConfirmation string      `json:"password_confirmation"`
	Role                 common.Role `json:"role"`
	InstitutionID        string      `json:"institution_id,omitempty"`
	ProgramID            string      `json:"program_id,omitempty"`
}

// PresignedUpload is the server's grant for a direct credential-document
// upload: the object key to confirm later and a time-limited PUT URL.
type PresignedUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
