package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"websitebot/internal/di"
	"websitebot/internal/infrastructure/env"
	"websitebot/internal/infrastructure/userinteraction"
)

func main() {
	envService := env.NewEnvService()
	cfg := loadConfig(envService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}

	container.Logger.Info("Agent run requested", "goal", cfg.Goal, "url", cfg.URL, "backend", cfg.PlannerBackend)

	err = container.Agent.Run(ctx)
	fmt.Println("\n" + userinteraction.FormatOutcome(err))
	container.Close()

	if err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}
