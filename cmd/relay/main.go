package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/reagan13/backend-itservice/internal/config"
	"github.com/reagan13/backend-itservice/internal/db"
	"github.com/reagan13/backend-itservice/internal/relay"
	outboxrepo "github.com/reagan13/backend-itservice/internal/repository/outbox"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[relay] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.KafkaBrokers == "" {
		logger.Fatal("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	writer := relay.NewWriter(cfg.KafkaBrokers)
	defer writer.Close()

	r := relay.New(outboxrepo.NewPostgres(pool), writer, cfg.RelayInterval, logger)

	logger.Printf("relay started, interval %s", cfg.RelayInterval)
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("relay stopped: %v", err)
	}
	logger.Println("relay stopped")
}
