// Command simulate plays seeded bot-versus-bot Partition games and logs the tally.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"partition/internal/config"
	"partition/internal/logging"
	"partition/internal/sim"
)

func main() {
	settings, err := sim.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(settings.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Default()
	if settings.ConfigPath != "" {
		cfg, err = config.ReadFile(settings.ConfigPath)
		if err != nil {
			logger.Error("Failed to load config %s: %v", settings.ConfigPath, err)
			os.Exit(1)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := sim.Run(ctx, settings, cfg, logger); err != nil {
		logger.Error("Simulation failed: %v", err)
		os.Exit(1)
	}
}
