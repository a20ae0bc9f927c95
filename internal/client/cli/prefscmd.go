package cli

import (
	"fmt"

	"github.com/cliniclink/cliniclink/internal/client/prefs"
)

// Theme shows the current theme mode, or sets it when mode is non-empty.
func (a *App) Theme(mode string) error {
	if mode == "" {
		fmt.Println("Theme:", a.prefs.Theme())
		return nil
	}

	if err := a.prefs.SetTheme(prefs.ThemeMode(mode)); err != nil {
		fmt.Println("Unknown theme. Choose one of: light, dark, system")
		return err
	}
	fmt.Println("Theme set to", mode)
	return nil
}

// ToggleDesign flips between the legacy and redesigned UI versions.
func (a *App) ToggleDesign() error {
	fmt.Println("Design version:", a.prefs.ToggleDesign())
	return nil
}
