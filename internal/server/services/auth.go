// Package services contains server-side business logic. This file implements
// AuthService: credential login with optional MFA, registration with a
// pending-approval workflow, session validation and revocation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/cliniclink/cliniclink/internal/dbx"
	"github.com/cliniclink/cliniclink/internal/logging"
	"github.com/cliniclink/cliniclink/internal/server/auth"
	"github.com/cliniclink/cliniclink/internal/server/config"
	"github.com/cliniclink/cliniclink/internal/server/models"
	"github.com/cliniclink/cliniclink/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is the outcome of Login/VerifyMFA. Exactly one of two shapes
// comes back: a completed session (User, Token, AcceptedInvites) or a pending
// challenge (MFAToken set, everything else empty).
type LoginResult struct {
	User            *models.User
	Token           string
	AcceptedInvites []string
	MFAToken        string
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FirstName     string
	LastName      string
	Email         string
	Username      string
	Password      string
	Role          common.Role
	InstitutionID string
	ProgramID     string
}

// AuthService provides authentication-related operations.
type AuthService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	codes           CodeStore
	logger          logging.Logger
	jwtSecret       []byte
	sessionValidity time.Duration
}

// NewAuthService constructs an AuthService using repositories, the MFA code
// store and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codes CodeStore, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:              db,
		repomanager:     m,
		codes:           codes,
		logger:          logger,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Login verifies the credentials. MFA-enabled accounts get a challenge
// instead of a session; everyone else gets a token, with any pending site
// invites auto-accepted in the same transaction that creates the session.
func (s *AuthService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	if !user.Approved {
		return nil, common.ErrAccountPending
	}

	if user.MFAEnabled {
		return s.issueChallenge(ctx, user)
	}

	return s.completeLogin(ctx, user)
}

// VerifyMFA exchanges a pending challenge and a one-time code for a session.
func (s *AuthService) VerifyMFA(ctx context.Context, mfaToken, code string) (*LoginResult, error) {
	userID, err := s.codes.Verify(ctx, mfaToken, code)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return s.completeLogin(ctx, user)
}

// Register creates a new unapproved account. No session is created; the
// account must be approved before it can log in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Username:      in.Username,
		PasswordHash:  hash,
		Role:          in.Role,
		InstitutionID: in.InstitutionID,
		ProgramID:     in.ProgramID,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Me returns the user record for an authenticated session.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Logout revokes the session. Revoking an already-deleted session is not an
// error, which makes client-side logout retries harmless.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.repomanager.Sessions(s.db).Delete(ctx, sessionID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// CompleteOnboarding stores the contact profile, marks onboarding done and
// returns the refreshed user.
func (s *AuthService) CompleteOnboarding(ctx context.Context, userID string, profile models.OnboardingProfile) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).CompleteOnboarding(ctx, userID, profile)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// ValidateSession checks that the session referenced by the claims still
// exists and has not expired. Expired rows are deleted on sight.
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (*models.Session, error) {
	repo := s.repomanager.Sessions(s.db)
	session, err := repo.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrSessionExpired
		}
		return nil, common.ErrorInternal
	}
	if session.Expires.Before(time.Now()) {
		_ = repo.Delete(ctx, sessionID)
		return nil, common.ErrSessionExpired
	}
	return session, nil
}

// issueChallenge stores a fresh one-time code for the user and returns the
// challenge token. Code delivery happens out of band.
func (s *AuthService) issueChallenge(ctx context.Context, user *models.User) (*LoginResult, error) {
	code, err := generateMFACode()
	if err != nil {
		return nil, common.ErrorInternal
	}

	challengeID := uuid.NewString()
	if err := s.codes.Issue(ctx, challengeID, user.ID, code); err != nil {
		return nil, common.ErrorInternal
	}

	if s.logger != nil {
		s.logger.Debug(ctx, "mfa challenge issued", "user_id", user.ID, "challenge_id", challengeID)
	}

	return &LoginResult{MFAToken: challengeID}, nil
}

// completeLogin accepts pending site invites and creates the session in one
// transaction, then mints the access token.
func (s *AuthService) completeLogin(ctx context.Context, user *models.User) (*LoginResult, error) {
	var (
		accepted []string
		session  *models.Session
	)

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		accepted, txErr = s.repomanager.Invites(tx).AcceptPending(ctx, user.Email)
		if txErr != nil {
			return txErr
		}
		session, txErr = s.repomanager.Sessions(tx).Create(ctx, user.ID, s.sessionValidity)
		return txErr
	}); err != nil {
		return nil, common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, session.ID, user.Role, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{User: user, Token: token, AcceptedInvites: accepted}, nil
}
