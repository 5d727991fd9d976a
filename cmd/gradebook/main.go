package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	cancel()

	if errors.Is(err, errRejected) {
		os.Exit(1)
	}
	if err != nil {
		logger.Error.Fatalf("gradebook: %v", err)
	}
}
