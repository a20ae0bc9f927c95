package session

import (
	"context"
	"errors"

	"github.com/cliniclink/cliniclink/internal/client/api"
	"github.com/cliniclink/cliniclink/internal/client/models"
	"github.com/cliniclink/cliniclink/internal/common"
)

// demoPassword is the shared password of the seeded demo accounts.
const demoPassword = "cliniclink-demo"

// DemoCredentials returns the fixed demo account identifiers for a role.
func DemoCredentials(role common.Role) (login, password string) {
	return "demo-" + string(role) + "@cliniclink.edu", demoPassword
}

// demoUsers holds the static per-role records used by the offline fallback.
var demoUsers = map[common.Role]models.User{
	common.RoleStudent:      {ID: "demo-student", FirstName: "Avery", LastName: "Brooks", Username: "avery.brooks"},
	common.RolePreceptor:    {ID: "demo-preceptor", FirstName: "Noor", LastName: "Haddad", Username: "noor.haddad"},
	common.RoleSiteManager:  {ID: "demo-site-manager", FirstName: "Marcus", LastName: "Yee", Username: "marcus.yee"},
	common.RoleCoordinator:  {ID: "demo-coordinator", FirstName: "Priya", LastName: "Natarajan", Username: "priya.natarajan"},
	common.RoleProfessor:    {ID: "demo-professor", FirstName: "Elena", LastName: "Sorokina", Username: "elena.sorokina"},
	common.RoleAdmin:        {ID: "demo-admin", FirstName: "Jordan", LastName: "Whitfield", Username: "jordan.whitfield"},
	common.RolePractitioner: {ID: "demo-practitioner", FirstName: "Sam", LastName: "Okonkwo", Username: "sam.okonkwo"},
}

// DemoLogin signs in as the seeded demo account for the given role.
//
// It first attempts a real credentialed login. Only when that call fails at
// the transport level (backend unreachable) does it fall back to
// synthesizing a local session from a static per-role record and a locally
// generated token, so the client stays usable for demonstrations offline.
// A successful real login, an MFA challenge, or a rejection never enters
// the fallback.
func (m *Manager) DemoLogin(ctx context.Context, role common.Role) (LoginStatus, error) {
	if _, ok := demoUsers[role]; !ok {
		return 0, common.ErrorValidation
	}

	login, password := DemoCredentials(role)
	status, err := m.Login(ctx, login, password)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, common.ErrUnavailable) {
		return 0, err
	}

	m.offlineDemoSession(role, login)
	return LoginCompleted, nil
}

// offlineDemoSession synthesizes a local-only session for the role.
func (m *Manager) offlineDemoSession(role common.Role, login string) {
	u := demoUsers[role]
	u.Email = login
	u.Role = role
	u.OnboardingCompleted = true
	u.Approved = true

	m.completeLogin(&api.LoginSuccess{
		User:  &u,
		Token: "offline-demo-" + common.MakeRandHexString(8),
	})
}
