package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cliniclink/cliniclink/internal/client/api"
	"github.com/cliniclink/cliniclink/internal/client/config"
	"github.com/cliniclink/cliniclink/internal/client/prefs"
	"github.com/cliniclink/cliniclink/internal/client/session"
	"github.com/cliniclink/cliniclink/internal/client/tokenstore"
	"github.com/cliniclink/cliniclink/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	api     api.API
	session *session.Manager
	prefs   *prefs.Store
	Mode    Mode
	reader  *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	store := tokenstore.NewFileStore(c.StateDir)
	apiClient := api.NewHTTPClient(c.ServerBaseURL, store)

	return &App{
		config:  c,
		api:     apiClient,
		session: session.NewManager(apiClient, store, logger),
		prefs:   prefs.NewStore(c.StateDir),
		Mode:    ModeOnline,
		reader:  bufio.NewReader(os.Stdin),
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// Run restores the cached session, kicks off background reconciliation and
// the connectivity watcher, then blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	if a.session.Hydrate() {
		log.Printf("Restored session for %s\n", a.session.Snapshot().User.FullName())
		go a.session.Reconcile(ctx)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Println("Welcome to ClinicLink CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	s := ""
	if st := a.session.Snapshot(); st.Authenticated {
		s = st.User.Username + " "
	}
	s += string(a.Mode)
	return fmt.Sprintf("(%s %s)", s, a.prefs.Design())
}

// StartOnlineStatusWatcher periodically probes the backend and flips the
// connectivity mode accordingly. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
