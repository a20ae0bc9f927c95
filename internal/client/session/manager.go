// Package session holds the client's in-memory authentication state and
// orchestrates every transition between the anonymous, authenticating,
// MFA-pending and authenticated states. It is the only component permitted
// to mutate the session; consumers read snapshots and invoke operations.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cliniclink/cliniclink/internal/besteffort"
	"github.com/cliniclink/cliniclink/internal/client/api"
	"github.com/cliniclink/cliniclink/internal/client/models"
	"github.com/cliniclink/cliniclink/internal/client/tokenstore"
	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/cliniclink/cliniclink/internal/logging"
)

// State is the session snapshot exposed to consumers.
//
// Invariant: Authenticated is true iff both User and Token are present and
// no MFA challenge is outstanding. A non-empty MFAToken implies empty
// User/Token.
type State struct {
	User          *models.User
	Token         string
	Authenticated bool
	Loading       bool
	MFAToken      string
}

// LoginStatus tells the caller which arm of the login outcome applied.
type LoginStatus int

const (
	// LoginCompleted means the session is now authenticated.
	LoginCompleted LoginStatus = iota
	// LoginMFARequired means a second factor is outstanding; follow up
	// with VerifyMFA or CancelMFA.
	LoginMFARequired
)

// launchAsync is a test seam for fire-and-forget goroutines (the server-side
// logout call). Tests replace it to run synchronously.
var launchAsync = func(f func()) { go f() }

const serverLogoutTimeout = 5 * time.Second

// Manager owns the in-memory session and keeps the durable token store
// consistent with it: every transition that changes authentication status
// writes the store before or alongside the in-memory update.
//
// Concurrent operations are not serialized against each other; like the
// other ClinicLink clients, callers are expected to disable controls while
// a request is in flight. What the manager does guarantee is that a stale
// asynchronous completion (background verification racing a logout or a
// 401 reset) can never clobber newer state: every transition bumps a
// monotonic epoch, and async completions carrying an old epoch are dropped.
type Manager struct {
	api   api.API
	store tokenstore.Store
	log   logging.Logger

	mu     sync.Mutex
	state  State
	epoch  uint64
	notice string
}

// NewManager wires a manager to its API client and token store, and
// registers itself as the API client's unauthorized hook so any 401 in the
// application resets the session. The hook is idempotent: resetting
// already-cleared state is a no-op.
func NewManager(a api.API, store tokenstore.Store, log logging.Logger) *Manager {
	m := &Manager{api: a, store: store, log: log}
	a.SetUnauthorizedCallback(m.resetLocal)
	return m
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether a completed session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().Authenticated
}

// ConsumeNotice returns the pending one-time user-visible notice (accepted
// invitations) and clears it.
func (m *Manager) ConsumeNotice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.notice
	m.notice = ""
	return n
}

// Hydrate populates the session from any cached token/user found in the
// token store and reports whether a session was restored. The restored
// session is marked authenticated optimistically; call Reconcile (usually
// in a goroutine) to verify it against the server.
func (m *Manager) Hydrate() bool {
	token := m.store.LoadToken()
	user := m.store.LoadUser()
	if token == "" || user == nil {
		return false
	}

	m.api.SetToken(token)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.state = State{User: user, Token: token, Authenticated: true}
	return true
}

// Reconcile verifies a hydrated session against the server. A definitive
// rejection (401 or any other API error response) resets the session to
// anonymous and purges the cache; an unreachable backend leaves the
// optimistic session in place so the client stays usable offline. A fresh
// user record replaces the cached snapshot.
func (m *Manager) Reconcile(ctx context.Context) {
	m.mu.Lock()
	e := m.epoch
	m.mu.Unlock()

	user, err := m.api.Me(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			return
		}
		// The 401 path has already cleared the store and reset state via
		// the unauthorized hook; any other error response means the cached
		// session is not good either.
		m.store.Clear()
		m.resetIfEpoch(e)
		return
	}

	m.mu.Lock()
	if m.epoch != e {
		m.mu.Unlock()
		return
	}
	m.state.User = user
	m.mu.Unlock()
	m.store.SaveUser(user)
}

// Login authenticates with a login (email or username) and password.
// The returned status distinguishes a completed session from an
// outstanding MFA challenge. On error the session returns to anonymous and
// the error is surfaced to the caller for form-level display; nothing is
// retried.
func (m *Manager) Login(ctx context.Context, login, password string) (LoginStatus, error) {
	e := m.beginLoading()

	outcome, err := m.api.Login(ctx, login, password)
	if err != nil {
		m.endLoading(e)
		return 0, err
	}

	if outcome.Challenge != nil {
		m.mu.Lock()
		m.epoch++
		m.state = State{MFAToken: outcome.Challenge.MFAToken}
		m.mu.Unlock()
		return LoginMFARequired, nil
	}

	m.completeLogin(outcome.Success)
	return LoginCompleted, nil
}

// VerifyMFA exchanges the outstanding challenge token and the user's code
// for a completed session. Calling it with no active challenge fails fast
// with common.ErrNoMFASession, without a network round-trip. A rejected
// code leaves the challenge pending so the user can retry.
func (m *Manager) VerifyMFA(ctx context.Context, code string) error {
	m.mu.Lock()
	challenge := m.state.MFAToken
	m.mu.Unlock()
	if challenge == "" {
		return common.ErrNoMFASession
	}

	e := m.beginLoading()
	success, err := m.api.VerifyMFA(ctx, challenge, code)
	if err != nil {
		m.endLoading(e)
		return err
	}

	m.completeLogin(success)
	return nil
}

// CancelMFA discards the outstanding challenge and returns to anonymous.
// A no-op when no challenge is pending.
func (m *Manager) CancelMFA() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.MFAToken == "" {
		return
	}
	m.epoch++
	m.state = State{}
}

// Register submits a registration form. Accounts follow a pending-approval
// workflow, so a successful registration does not authenticate the session.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	e := m.beginLoading()
	err := m.api.Register(ctx, req)
	m.endLoading(e)
	return err
}

// Logout ends the session. Local state and the token store are cleared
// synchronously before a best-effort, fire-and-forget server-side logout
// call; the local sign-out never depends on server reachability. The
// revocation call carries the token captured before the clear, since the
// API client no longer has one by the time it runs. Logging out an
// anonymous session is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	wasAuthenticated := m.state.Authenticated
	token := m.state.Token
	m.epoch++
	m.state = State{}
	m.notice = ""
	m.mu.Unlock()

	m.store.Clear()
	m.api.SetToken("")

	if !wasAuthenticated {
		return
	}
	launchAsync(func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverLogoutTimeout)
		defer cancel()
		besteffort.Do(ctx, m.log, "server logout", func() error {
			return m.api.Logout(ctx, token)
		})
	})
}

// CompleteOnboarding submits the onboarding payload, refreshes the cached
// user record, and returns the updated user.
func (m *Manager) CompleteOnboarding(ctx context.Context, payload map[string]any) (*models.User, error) {
	e := m.beginLoading()
	user, err := m.api.CompleteOnboarding(ctx, payload)
	if err != nil {
		m.endLoading(e)
		return nil, err
	}

	m.store.SaveUser(user)
	m.mu.Lock()
	if m.epoch == e {
		m.state.User = user
		m.state.Loading = false
	}
	m.mu.Unlock()
	return user, nil
}

// UploadProfilePhoto sends a new profile photo, refreshes the cached user
// record, and returns the updated user.
func (m *Manager) UploadProfilePhoto(ctx context.Context, filename string, content []byte) (*models.User, error) {
	e := m.beginLoading()
	user, err := m.api.UploadProfilePhoto(ctx, filename, content)
	if err != nil {
		m.endLoading(e)
		return nil, err
	}

	m.store.SaveUser(user)
	m.mu.Lock()
	if m.epoch == e {
		m.state.User = user
		m.state.Loading = false
	}
	m.mu.Unlock()
	return user, nil
}

// completeLogin is the single completion path shared by direct login, MFA
// verification and the offline demo fallback: write-through to the token
// store first, then replace the in-memory state in one step so consumers
// never observe a half-updated session.
func (m *Manager) completeLogin(success *api.LoginSuccess) {
	m.store.SaveToken(success.Token)
	m.store.SaveUser(success.User)
	m.api.SetToken(success.Token)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.state = State{
		User:          success.User,
		Token:         success.Token,
		Authenticated: true,
	}
	if n := inviteNotice(success.AcceptedInvites); n != "" {
		m.notice = n
	}
}

// inviteNotice phrases the one-time acceptance notice, singular or plural
// depending on how many site invitations were auto-accepted.
func inviteNotice(sites []string) string {
	switch len(sites) {
	case 0:
		return ""
	case 1:
		return "Your invitation to " + sites[0] + " has been accepted."
	default:
		last := sites[len(sites)-1]
		rest := strings.Join(sites[:len(sites)-1], ", ")
		return "Your invitations to " + rest + " and " + last + " have been accepted."
	}
}

func (m *Manager) beginLoading() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.state.Loading = true
	return m.epoch
}

func (m *Manager) endLoading(e uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch == e {
		m.state.Loading = false
	}
}

// resetLocal drops the in-memory session. It backs the API client's
// unauthorized hook; the durable cache is cleared by the client before the
// hook fires.
func (m *Manager) resetLocal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.state = State{}
}

func (m *Manager) resetIfEpoch(e uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != e {
		return
	}
	m.epoch++
	m.state = State{}
}
