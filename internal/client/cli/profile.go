package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cliniclink/cliniclink/internal/common"
)

// Onboarding walks the user through the onboarding questionnaire and submits
// it. The refreshed user record replaces the cached one on success.
func (a *App) Onboarding(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not signed in.")
		return common.ErrorUnauthorized
	}

	phone, err := getSimpleText(a.reader, "Phone number", os.Stdout)
	if err != nil {
		return err
	}
	emergency, err := getSimpleText(a.reader, "Emergency contact (name and phone)", os.Stdout)
	if err != nil {
		return err
	}
	pronouns, err := getSimpleText(a.reader, "Pronouns (optional)", os.Stdout)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"phone":             phone,
		"emergency_contact": emergency,
	}
	if pronouns != "" {
		payload["pronouns"] = pronouns
	}

	user, err := a.session.CompleteOnboarding(ctx, payload)
	if err != nil {
		a.printError(err)
		return err
	}

	fmt.Printf("Onboarding complete. Welcome aboard, %s!\n", user.FirstName)
	return nil
}

// Photo uploads a profile photo from the given path.
func (a *App) Photo(ctx context.Context, path string) error {
	if !a.isLoggedIn() {
		fmt.Println("Not signed in.")
		return common.ErrorUnauthorized
	}

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Cannot read file:", err.Error())
		return err
	}

	if _, err := a.session.UploadProfilePhoto(ctx, filepath.Base(path), content); err != nil {
		a.printError(err)
		return err
	}

	fmt.Println("Profile photo updated.")
	return nil
}
