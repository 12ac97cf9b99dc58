package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hostelhub/roster-import/internal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("rosterctl failed")
		stop()
		os.Exit(1)
	}
}
