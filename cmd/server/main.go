package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/funfirstplay/matchup/app"
	"github.com/funfirstplay/matchup/app/observability"
	"github.com/funfirstplay/matchup/config"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs := observability.Init(config.ToObsConfig(cfg))
	logger := obs.Provider.Logger
	logger.Info("Starting matchup server")

	application := &app.App{}
	if err := application.Initialize(ctx, cfg, obs); err != nil {
		logger.Error("Failed to initialize application", "error", err)
		_ = application.Close(context.Background())
		os.Exit(1)
	}

	runErr := application.Run(ctx)
	if runErr != nil {
		logger.Error("Server stopped with error", "error", runErr)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := application.Close(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", "error", err)
	}

	logger.Info("Matchup server stopped")
	if runErr != nil {
		os.Exit(1)
	}
}
