package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/inventory_consumer/config"
	"github.com/Gunvolt24/inventory_consumer/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inventory-consumer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env.local — только для локального запуска, отсутствие файла не ошибка
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		cleanup()
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer cleanup()

	return a.Run(ctx)
}
