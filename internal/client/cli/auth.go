package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cliniclink/cliniclink/internal/client/api"
	"github.com/cliniclink/cliniclink/internal/client/session"
	"github.com/cliniclink/cliniclink/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate.
//
// When the backend answers with an MFA challenge, the user is prompted for
// the verification code; an empty line abandons the challenge. The password
// byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter email or username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	status, err := a.session.Login(ctx, login, string(password))
	if err != nil {
		a.printError(err)
		return err
	}

	if status == session.LoginMFARequired {
		return a.promptMFA(ctx)
	}

	a.greet()
	return nil
}

// promptMFA reads verification codes until one is accepted, the user enters
// an empty line, or the server rejects the challenge for good. Abandoning
// the prompt cancels the pending challenge so no stale MFA state lingers.
func (a *App) promptMFA(ctx context.Context) error {
	for {
		code, err := getSimpleText(a.reader, "Enter the verification code (empty line to cancel)", os.Stdout)
		if err != nil {
			a.session.CancelMFA()
			return err
		}
		if code == "" {
			a.session.CancelMFA()
			fmt.Println("Sign-in cancelled.")
			return nil
		}

		err = a.session.VerifyMFA(ctx, code)
		if err == nil {
			a.greet()
			return nil
		}
		if errors.Is(err, common.ErrMFACodeInvalid) {
			fmt.Println("That code is not valid, try again.")
			continue
		}

		a.session.CancelMFA()
		a.printError(err)
		return err
	}
}

// Register walks the user through the registration form. Accounts start in
// a pending state; no session is created here.
func (a *App) Register(ctx context.Context) error {
	req := api.RegisterRequest{}
	var roleInput string

	prompts := []struct {
		label string
		dst   *string
	}{
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Email", &req.Email},
		{"Username", &req.Username},
		{"Role (" + roleList() + ")", &roleInput},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, os.Stdout)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	role, ok := common.ParseRole(roleInput)
	if !ok {
		fmt.Println("Unknown role. Choose one of: " + roleList())
		return common.ErrorValidation
	}
	req.Role = role

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	req.Password = string(password)
	req.PasswordConfirmation = string(confirmation)

	if err := a.session.Register(ctx, req); err != nil {
		a.printError(err)
		return err
	}

	fmt.Println("Registration received. Your account is pending approval.")
	return nil
}

// Demo signs in as the seeded demo account for the given role, falling back
// to an offline session when the backend is unreachable.
func (a *App) Demo(ctx context.Context, role string) error {
	r, ok := common.ParseRole(role)
	if !ok {
		fmt.Println("Unknown role. Choose one of: " + roleList())
		return common.ErrorValidation
	}

	status, err := a.session.DemoLogin(ctx, r)
	if err != nil {
		a.printError(err)
		return err
	}

	if status == session.LoginMFARequired {
		return a.promptMFA(ctx)
	}

	a.greet()
	return nil
}

// WhoAmI prints the current session, if any.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.session.Snapshot()
	if !st.Authenticated {
		fmt.Println("Not signed in.")
		return nil
	}

	u := st.User
	fmt.Printf("%s <%s> — %s\n", u.FullName(), u.Email, u.Role)
	if !u.OnboardingCompleted {
		fmt.Println("Onboarding incomplete: run 'onboarding' to finish setting up your profile.")
	}
	return nil
}

// Logout clears the local session immediately; the server-side session is
// revoked in the background on a best-effort basis.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not signed in.")
		return nil
	}
	a.session.Logout(ctx)
	fmt.Println("Signed out.")
	return nil
}

// greet prints the post-login banner, including the one-time invitation
// notice when site invites were auto-accepted during sign-in.
func (a *App) greet() {
	st := a.session.Snapshot()
	if !st.Authenticated {
		return
	}
	fmt.Printf("Signed in as %s (%s).\n", st.User.FullName(), st.User.Role)
	if notice := a.session.ConsumeNotice(); notice != "" {
		fmt.Println(notice)
	}
	if !st.User.OnboardingCompleted {
		fmt.Println("Onboarding incomplete: run 'onboarding' to finish setting up your profile.")
	}
}

// printError renders an error for the terminal, expanding field-level
// validation messages when the backend supplied them.
func (a *App) printError(err error) {
	if apiErr, ok := api.AsError(err); ok {
		fmt.Println(apiErr.Error())
		fields := make([]string, 0, len(apiErr.Fields))
		for f := range apiErr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			for _, msg := range apiErr.Fields[f] {
				fmt.Printf("  %s: %s\n", f, msg)
			}
		}
		return
	}

	switch {
	case errors.Is(err, common.ErrUnavailable):
		fmt.Println("Server unavailable.")
	case errors.Is(err, common.ErrInvalidCredentials):
		fmt.Println("Invalid credentials.")
	case errors.Is(err, common.ErrAccountPending):
		fmt.Println("Your account is awaiting approval.")
	case errors.Is(err, common.ErrNoMFASession):
		fmt.Println("No MFA session active.")
	default:
		fmt.Println(err.Error())
	}
}

func roleList() string {
	roles := common.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
