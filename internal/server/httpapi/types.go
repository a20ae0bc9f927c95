package httpapi

import "github.com/cliniclink/cliniclink/internal/server/models"

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type mfaVerifyRequest struct {
	MFAToken string `json:"mfa_token" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

type registerRequest struct {
	FirstName            string `json:"first_name" binding:"required"`
	LastName             string `json:"last_name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Username             string `json:"username" binding:"required,min=3"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Role                 string `json:"role" binding:"required"`
	InstitutionID        string `json:"institution_id"`
	ProgramID            string `json:"program_id"`
}

type onboardingRequest struct {
	Phone            string `json:"phone" binding:"required"`
	EmergencyContact string `json:"emergency_contact" binding:"required"`
	Pronouns         string `json:"pronouns"`
}

type presignRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Filename string `json:"filename" binding:"required"`
}

type confirmRequest struct {
	Key  string `json:"key" binding:"required"`
	Kind string `json:"kind" binding:"required"`
}

// userResponse is the wire shape of a user record. PasswordHash and internal
// flags like MFAEnabled stay server-side.
type userResponse struct {
	ID                  string `json:"id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Email               string `json:"email"`
	Username            string `json:"username"`
	Role                string `json:"role"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
	Phone               string `json:"phone,omitempty"`
	EmergencyContact    string `json:"emergency_contact,omitempty"`
	Pronouns            string `json:"pronouns,omitempty"`
	Approved            bool   `json:"approved"`
	InstitutionID       string `json:"institution_id,omitempty"`
	ProgramID           string `json:"program_id,omitempty"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Username:            u.Username,
		Role:                string(u.Role),
		OnboardingCompleted: u.OnboardingCompleted,
		Phone:               u.Phone,
		EmergencyContact:    u.EmergencyContact,
		Pronouns:            u.Pronouns,
		Approved:            u.Approved,
		InstitutionID:       u.InstitutionID,
		ProgramID:           u.ProgramID,
	}
}

type documentResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	DownloadURL string `json:"download_url,omitempty"`
}

func newDocumentResponse(d *models.CredentialDocument, downloadURL string) documentResponse {
	return documentResponse{
		ID:          d.ID,
		Kind:        d.Kind,
		Status:      d.Status,
		DownloadURL: downloadURL,
	}
}
