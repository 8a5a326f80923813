package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"animalcount/internal/app"
	"animalcount/internal/args"
	"animalcount/internal/config"
	"animalcount/internal/logger"
	"animalcount/internal/species"

	"github.com/pkg/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer log.Close()

	answer, err := species.NewPrompter().Ask()
	if err != nil {
		log.Error("No animal selected: %v", err)
		return 1
	}

	animal, err := species.Lookup(answer)
	if errors.Is(err, species.ErrUnsupported) {
		fmt.Println(species.UnsupportedMessage(answer))
		return 0
	}

	runCfg, err := args.Parse(os.Args, os.Stderr)
	switch {
	case errors.Is(err, args.ErrHelp):
		return 0
	case errors.Is(err, args.ErrInvalidArgument):
		return 2
	case err != nil:
		log.Error("Failed to parse arguments: %v", err)
		return 2
	}

	application, err := app.NewApp(cfg, log, runCfg, animal)
	if err != nil {
		log.Error("Failed to start: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := application.Run(ctx)
	if err != nil {
		log.Error("Run failed in state %s: %v", state, err)
		return 1
	}
	log.Info("Stopped: %s", state)
	return 0
}
