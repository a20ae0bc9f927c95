package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/cliniclink/cliniclink/internal/buildinfo"
	"github.com/cliniclink/cliniclink/internal/client/cli"
	"github.com/cliniclink/cliniclink/internal/client/config"
	"github.com/cliniclink/cliniclink/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app := cli.NewApp(cfg, logger)
	app.Run(ctx)
}
