// Package cli provides the interactive ClinicLink command-line client.
//
// It wires configuration, the persisted session store, the HTTP API client
// and an interactive REPL that stays usable when the backend is unreachable.
// Typical flow: restore the cached session optimistically, reconcile it with
// the server in the background, start a connectivity watcher, and execute
// user commands.
//
// Key features:
//   - Login with optional MFA verification, registration, demo sign-in
//   - Session restore across restarts with background validation
//   - Onboarding completion, profile photo and credential document upload
//   - Theme and design-version preference toggles
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
