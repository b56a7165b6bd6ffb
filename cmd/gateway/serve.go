package main

import (
	"github.com/urfave/cli/v2"

	"github.com/seantiz/proposalgw/internal/api"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the gateway HTTP API",
		Action: func(c *cli.Context) error {
			d, err := wire()
			if err != nil {
				return err
			}
			defer d.store.Close()

			d.logger.Info("gateway: starting",
				"listen_addr", d.cfg.ListenAddr,
				"engine_url", d.cfg.EngineURL,
				"db_path", d.cfg.DBPath,
			)

			return api.NewServer(d.cfg.ListenAddr, d.orch, d.store, d.cfg.RateLimit, d.logger).Run()
		},
	}
}
