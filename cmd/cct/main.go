package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Harshitk-cp/consensus/internal/config"
	"github.com/Harshitk-cp/consensus/internal/domain"
	"github.com/Harshitk-cp/consensus/internal/service"
	"github.com/Harshitk-cp/consensus/internal/store"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitInputError = 2
	ExitFitError   = 3
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(ExitFailure)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var stageErr *service.StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case service.StageLoad:
			return ExitInputError
		case service.StageFit:
			return ExitFitError
		}
	}
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, domain.ErrDataFormat) {
		return ExitInputError
	}
	return ExitFailure
}
