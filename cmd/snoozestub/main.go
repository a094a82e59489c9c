// snoozestub runs the local Hack-or-Snooze API stub, useful for
// development and demos without the hosted API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hacksnooze/snooze/internal/config"
	"github.com/hacksnooze/snooze/internal/logger"
	"github.com/hacksnooze/snooze/internal/stubserver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snoozestub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	addr := os.Getenv("SNOOZE_STUB_LISTEN")
	if addr == "" {
		addr = ":8080"
	}

	srv := stubserver.New(addr, stubserver.NewState(), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
