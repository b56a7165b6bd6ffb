// enginestub serves a local calculation engine for development and testing.
// Usage: go run ./cmd/enginestub
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seantiz/proposalgw/internal/config"
	"github.com/seantiz/proposalgw/internal/engine"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	srv := &http.Server{
		Addr:              cfg.EngineListenAddr,
		Handler:           engine.New(cfg.EngineLatency, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("enginestub: starting", "addr", cfg.EngineListenAddr, "latency", cfg.EngineLatency.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("enginestub: server error", "error", err)
		os.Exit(1)
	}
	logger.Info("enginestub: stopped")
}
