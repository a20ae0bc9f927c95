package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Demo(ctx context.Context, role string) error
	WhoAmI(ctx context.Context) error
	Onboarding(ctx context.Context) error
	Photo(ctx context.Context, path string) error
	UploadDocument(ctx context.Context, kind, path string) error
	Theme(mode string) error
	ToggleDesign() error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the ClinicLink CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - register           — request an account (pending approval)
//	  - login              — authenticate (MFA prompt if required)
//	  - demo <role>        — sign in as a seeded demo account
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - whoami             — show the current session
//	  - onboarding         — complete the onboarding questionnaire
//	  - photo <path>       — upload a profile photo
//	  - upload <kind> <path> — upload a credential document
//	  - theme [mode]       — show or set the theme (light|dark|system)
//	  - design             — toggle the design version
//	  - logout             — sign out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cl> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, onboarding, photo, upload, theme, design, logout, exit")
			} else {
				printlnFn("Available commands: register, login, demo, theme, design, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "demo":
			if len(args) == 0 {
				printlnFn("Usage: demo <role>")
				continue
			}
			_ = a.Demo(ctx, args[0])

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "onboarding":
			_ = a.Onboarding(ctx)

		case "photo":
			if len(args) == 0 {
				printlnFn("Usage: photo <path>")
				continue
			}
			_ = a.Photo(ctx, args[0])

		case "upload":
			if len(args) < 2 {
				printlnFn("Usage: upload <kind> <path>")
				continue
			}
			_ = a.UploadDocument(ctx, args[0], args[1])

		case "theme":
			mode := ""
			if len(args) > 0 {
				mode = args[0]
			}
			_ = a.Theme(mode)

		case "design":
			_ = a.ToggleDesign()

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
