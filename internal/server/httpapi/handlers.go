// Package httpapi exposes the ClinicLink backend as a JSON REST API on gin.
// Handlers bind and validate requests, delegate to the service layer, and
// translate sentinel errors into HTTP statuses.
package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/cliniclink/cliniclink/internal/logging"
	"github.com/cliniclink/cliniclink/internal/server/models"
	"github.com/cliniclink/cliniclink/internal/server/services"
	"github.com/gin-gonic/gin"
)

// maxPhotoBytes caps profile photo uploads.
const maxPhotoBytes = 5 << 20

// AuthProvider is the slice of AuthService the handlers use.
type AuthProvider interface {
	Login(ctx context.Context, login, password string) (*services.LoginResult, error)
	VerifyMFA(ctx context.Context, mfaToken, code string) (*services.LoginResult, error)
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	Logout(ctx context.Context, sessionID string) error
	CompleteOnboarding(ctx context.Context, userID string, profile models.OnboardingProfile) (*models.User, error)
	ValidateSession(ctx context.Context, sessionID string) (*models.Session, error)
}

// DocumentProvider is the slice of DocumentService the handlers use.
type DocumentProvider interface {
	GetPresignedPutUrl(ctx context.Context, userID, kind, filename string) (string, string, error)
	GetPresignedGetUrl(ctx context.Context, key string) (string, error)
	Confirm(ctx context.Context, userID, kind, key string) (*models.CredentialDocument, error)
	List(ctx context.Context, userID string) ([]*models.CredentialDocument, error)
	StoreProfilePhoto(ctx context.Context, userID, filename string, content []byte) (string, error)
}

type Handlers struct {
	auth      AuthProvider
	documents DocumentProvider
	logger    logging.Logger
}

func NewHandlers(auth AuthProvider, documents DocumentProvider, logger logging.Logger) *Handlers {
	return &Handlers{auth: auth, documents: documents, logger: logger}
}

// Login authenticates with email-or-username and password. MFA-enabled
// accounts get a challenge token instead of a session.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}

	if res.MFAToken != "" {
		c.JSON(http.StatusOK, gin.H{"mfa_required": true, "mfa_token": res.MFAToken})
		return
	}

	c.JSON(http.StatusOK, loginSuccessBody(res))
}

// VerifyMFA exchanges a challenge token and one-time code for a session.
func (h *Handlers) VerifyMFA(c *gin.Context) {
	var req mfaVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	res, err := h.auth.VerifyMFA(c.Request.Context(), req.MFAToken, req.Code)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginSuccessBody(res))
}

// Register creates a pending account. No token is issued until the account
// is approved.
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	role, ok := common.ParseRole(req.Role)
	if !ok {
		validationError(c, "role", "The selected role is invalid.")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
		Role:          role,
		InstitutionID: req.InstitutionID,
		ProgramID:     req.ProgramID,
	})
	if err != nil {
		h.logger.Error(c.Request.Context(), "registration failed", "error", err)
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration received. The account is pending approval.",
		"user":    newUserResponse(user),
	})
}

// Me returns the user record behind the bearer token.
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// Logout revokes the server-side session.
func (h *Handlers) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetString(ctxSessionID)); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Onboarding stores the contact profile and marks onboarding complete.
func (h *Handlers) Onboarding(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	user, err := h.auth.CompleteOnboarding(c.Request.Context(), c.GetString(ctxUserID), models.OnboardingProfile{
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		Pronouns:         req.Pronouns,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// Photo accepts a multipart profile photo, stores it, and returns the
// refreshed user record.
func (h *Handlers) Photo(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		validationError(c, "photo", "The photo field is required.")
		return
	}
	if file.Size > maxPhotoBytes {
		validationError(c, "photo", "The photo may not be larger than 5 megabytes.")
		return
	}

	f, err := file.Open()
	if err != nil {
		serviceError(c, common.ErrorInternal)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes))
	if err != nil {
		serviceError(c, common.ErrorInternal)
		return
	}

	userID := c.GetString(ctxUserID)
	if _, err := h.documents.StoreProfilePhoto(c.Request.Context(), userID, file.Filename, content); err != nil {
		h.logger.Error(c.Request.Context(), "photo upload failed", "user_id", userID, "error", err)
		serviceError(c, common.ErrorInternal)
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// PresignDocument grants a time-limited direct PUT to object storage for a
// credential document.
func (h *Handlers) PresignDocument(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	key, url, err := h.documents.GetPresignedPutUrl(c.Request.Context(), c.GetString(ctxUserID), req.Kind, req.Filename)
	if err != nil {
		h.logger.Error(c.Request.Context(), "presign failed", "error", err)
		serviceError(c, common.ErrorInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}

// ConfirmDocument records a completed direct upload.
func (h *Handlers) ConfirmDocument(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	doc, err := h.documents.Confirm(c.Request.Context(), c.GetString(ctxUserID), req.Kind, req.Key)
	if err != nil {
		h.logger.Error(c.Request.Context(), "document confirm failed", "key", req.Key, "error", err)
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": newDocumentResponse(doc, "")})
}

// ListDocuments returns the caller's credential documents, newest first,
// each with a short-lived download URL.
func (h *Handlers) ListDocuments(c *gin.Context) {
	docs, err := h.documents.List(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		h.logger.Error(c.Request.Context(), "document list failed", "error", err)
		serviceError(c, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		url, err := h.documents.GetPresignedGetUrl(c.Request.Context(), d.StorageKey)
		if err != nil {
			// A document without a download link is still worth listing.
			h.logger.Warn(c.Request.Context(), "download presign failed", "document_id", d.ID, "error", err)
			url = ""
		}
		out = append(out, newDocumentResponse(d, url))
	}

	c.JSON(http.StatusOK, gin.H{"documents": out})
}

func loginSuccessBody(res *services.LoginResult) gin.H {
	return gin.H{
		"user":             newUserResponse(res.User),
		"token":            res.Token,
		"accepted_invites": res.AcceptedInvites,
	}
}
