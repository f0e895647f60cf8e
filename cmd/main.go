package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"corrosion-monitor/config"
	"corrosion-monitor/internal/container"
	"corrosion-monitor/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New("corrosion", cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Ctrl+C и SIGTERM останавливают цикл между кадрами
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalw("failed to build application", "error", err)
	}

	logger.Infow("corrosion monitor is running", "device", cfg.CameraDevice, "frames_dir", cfg.FramesDir)
	if _, err := appContainer.Run(ctx, cfg); err != nil {
		// os.Exit пропускает defer, контейнер к этому моменту уже закрыт в Run
		logger.Errorw("capture loop failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
