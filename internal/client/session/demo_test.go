package session

import (
	"context"
	"strings"
	"testing"

	"github.com/cliniclink/cliniclink/internal/client/api"
	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/stretchr/testify/require"
)

func TestDemoLogin_OfflineFallbackForEveryRole(t *testing.T) {
	for _, role := range common.Roles() {
		t.Run(string(role), func(t *testing.T) {
			f := &fakeAPI{LoginFn: func(ctx context.Context, login, password string) (*api.LoginOutcome, error) {
				return nil, common.ErrUnavailable
			}}
			m, store := newManager(t, f)

			status, err := m.DemoLogin(context.Background(), role)
			require.NoError(t, err)
			require.Equal(t, LoginCompleted, status)

			st := m.Snapshot()
			require.True(t, st.Authenticated)
			require.Equal(t, role, st.User.Role)
			require.True(t, strings.HasPrefix(st.Token, "offline-demo-"))

			// The synthesized session is persisted like a real one.
			require.Equal(t, st.Token, store.LoadToken())
			require.Equal(t, role, store.LoadUser().Role)
		})
	}
}

func TestDemoLogin_PrefersRealLogin(t *testing.T) {
	var gotLogin, gotPassword string
	f := &fakeAPI{LoginFn: func(ctx context.Context, login, password string) (*api.LoginOutcome, error) {
		gotLogin, gotPassword = login, password
		return success(common.RoleCoordinator, "server-token"), nil
	}}
	m, _ := newManager(t, f)

	status, err := m.DemoLogin(context.Background(), common.RoleCoordinator)
	require.NoError(t, err)
	require.Equal(t, LoginCompleted, status)

	wantLogin, wantPassword := DemoCredentials(common.RoleCoordinator)
	require.Equal(t, wantLogin, gotLogin)
	require.Equal(t, wantPassword, gotPassword)

	// Server session, not the synthesized fallback.
	require.Equal(t, "server-token", m.Snapshot().Token)
}

func TestDemoLogin_MFAChallengeDoesNotFallBack(t *testing.T) {
	f := &fakeAPI{LoginFn: func(ctx context.Context, login, password string) (*api.LoginOutcome, error) {
		return &api.LoginOutcome{Challenge: &api.MFAChallenge{MFAToken: "ch-demo"}}, nil
	}}
	m, _ := newManager(t, f)

	status, err := m.DemoLogin(context.Background(), common.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, LoginMFARequired, status)

	st := m.Snapshot()
	require.False(t, st.Authenticated)
	require.Equal(t, "ch-demo", st.MFAToken)
}

func TestDemoLogin_RejectionPropagates(t *testing.T) {
	wantErr := &api.Error{Status: 403, Message: "Demo accounts disabled."}
	f := &fakeAPI{LoginFn: func(ctx context.Context, login, password string) (*api.LoginOutcome, error) {
		return nil, wantErr
	}}
	m, _ := newManager(t, f)

	_, err := m.DemoLogin(context.Background(), common.RoleStudent)
	require.ErrorIs(t, err, wantErr)
	require.False(t, m.IsAuthenticated())
}

func TestDemoLogin_UnknownRole(t *testing.T) {
	f := &fakeAPI{}
	m, _ := newManager(t, f)

	_, err := m.DemoLogin(context.Background(), common.Role("intern"))
	require.ErrorIs(t, err, common.ErrorValidation)
}
