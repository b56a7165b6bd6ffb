// gateway fronts the calculation engine.
//
// Usage:
//
//	gateway serve
//	gateway run --subject acme --plan pro --amount 10000.00
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/seantiz/proposalgw/internal/client"
	"github.com/seantiz/proposalgw/internal/config"
	"github.com/seantiz/proposalgw/internal/health"
	"github.com/seantiz/proposalgw/internal/orchestrator"
	"github.com/seantiz/proposalgw/internal/store"
	"github.com/seantiz/proposalgw/internal/token"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "gateway",
		Usage:   "Proposal gateway for the calculation engine",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(),
			runCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// deps holds the components shared by every command.
type deps struct {
	cfg    config.Config
	logger *slog.Logger
	orch   *orchestrator.Orchestrator
	store  store.Store
}

func wire() (*deps, error) {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	// One client, and so one connection pool, for probes and calls alike.
	hc := &http.Client{}
	orch := orchestrator.New(
		token.NewIssuer(),
		health.NewProbe(hc, cfg.ProbeTimeout, logger),
		client.New(cfg.EngineURL, hc, logger),
		logger,
	)

	var st store.Store = store.NewMemoryStore()
	if cfg.DBPath != "" {
		db, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open record store: %w", err)
		}
		st = db
	}

	return &deps{cfg: cfg, logger: logger, orch: orch, store: st}, nil
}
