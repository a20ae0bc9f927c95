package api

import (
	"context"

	"github.com/cliniclink/cliniclink/internal/client/models"
)

// API is the transport-agnostic contract for the ClinicLink backend.
// The session manager depends on this interface, not on HTTPClient, so tests
// can substitute a fake.
type API interface {
	// Login authenticates with a login (email or username) and password.
	// The outcome is either a completed session or an MFA challenge.
	Login(ctx context.Context, login, password string) (*LoginOutcome, error)

	// VerifyMFA exchanges a challenge token and a one-time code for a
	// completed session.
	VerifyMFA(ctx context.Context, mfaToken, code string) (*LoginSuccess, error)

	// Register submits a registration form. No token is returned; accounts
	// await approval.
	Register(ctx context.Context, req RegisterRequest) error

	// Me returns the current user record for the active bearer token.
	Me(ctx context.Context) (*models.User, error)

	// Logout invalidates the server-side session identified by token. The
	// token is explicit rather than taken from the client's cache: local
	// sign-out clears the cache before the revocation call goes out.
	Logout(ctx context.Context, token string) error

	// CompleteOnboarding submits the onboarding payload and returns the
	// refreshed user record.
	CompleteOnboarding(ctx context.Context, payload map[string]any) (*models.User, error)

	// UploadProfilePhoto sends a profile photo as a multipart form and
	// returns the refreshed user record.
	UploadProfilePhoto(ctx context.Context, filename string, content []byte) (*models.User, error)

	// RequestDocumentUpload asks for a presigned PUT grant for a credential
	// document (license, immunization record, ...).
	RequestDocumentUpload(ctx context.Context, kind, filename string) (*PresignedUpload, error)

	// ConfirmDocumentUpload records a completed direct upload.
	ConfirmDocumentUpload(ctx context.Context, key, kind string) error

	// Ping probes backend reachability without authentication.
	Ping(ctx context.Context) error

	// SetToken replaces the in-memory bearer token used for subsequent
	// requests. An empty value sends requests unauthenticated.
	SetToken(token string)

	// SetUnauthorizedCallback registers the hook fired whenever a request
	// comes back 401. The callback must be idempotent: concurrent in-flight
	// requests can each trigger it independently.
	SetUnauthorizedCallback(fn func())
}
