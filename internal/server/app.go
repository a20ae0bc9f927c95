// Package server wires the ClinicLink backend together: database, Redis,
// object storage config, services and the HTTP API, plus graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cliniclink/cliniclink/internal/logging"
	"github.com/cliniclink/cliniclink/internal/server/config"
	"github.com/cliniclink/cliniclink/internal/server/httpapi"
	"github.com/cliniclink/cliniclink/internal/server/repositories/repomanager"
	"github.com/cliniclink/cliniclink/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	redis       *redis.Client
	repomanager repomanager.RepositoryManager
	handler     http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {

	l := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(l)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	codes := services.NewRedisCodeStore(rdb, cfg.MFACodeTTL, cfg.MFAMaxAttempts)

	authService := services.NewAuthService(db, m, codes, logger, cfg)
	documentService := services.NewDocumentService(db, m, cfg)

	handlers := httpapi.NewHandlers(authService, documentService, logger)
	router := httpapi.NewRouter(handlers, []byte(cfg.SecretKey))

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		redis:       rdb,
		repomanager: m,
		handler:     router,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the schema, starts the HTTP server and blocks until the
// context is cancelled or the listener fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: app.handler}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	app.logger.Info(ctx, "server listening", "addr", app.config.EndpointAddr)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	app.redis.Close()
	app.db.Close()

	app.logger.Info(context.Background(), "server stopped")
	return nil
}
