package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"resume-extractor/internal/config"
	"resume-extractor/internal/extractor"
	"resume-extractor/internal/notify"
	"resume-extractor/internal/postgresdb"
	"resume-extractor/internal/processor"
	"resume-extractor/internal/s3"
	"resume-extractor/internal/valkeydb"
)

func main() {

	workers := flag.Int("workers", 4, "number of concurrent job workers")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := cfg.ValidateServices(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgresDB, err := postgresdb.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to initialize postgresdb", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	valkeyQueue, err := valkeydb.New(ctx, cfg.ValkeyURL, cfg.ValkeyPassword)
	if err != nil {
		logger.Error("failed to initialize valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyQueue.Close()

	// jobs left behind by a crashed worker go back to the pending queue
	if n, err := valkeyQueue.Requeue(ctx); err != nil {
		logger.Warn("failed to requeue stale jobs", "error", err)
	} else if n > 0 {
		logger.Info("requeued stale jobs", "count", n)
	}

	s3Store, err := s3.NewFileStore(ctx, s3.S3Config{
		EndpointURL: cfg.S3.EndpointURL,
		Region:      cfg.S3.Region,
		AccessKey:   cfg.S3.AccessKey,
		SecretKey:   cfg.S3.SecretKey,
	})
	if err != nil {
		logger.Error("could not create S3 filestore", "error", err)
		os.Exit(1)
	}

	embedder, err := cfg.Embedding.NewEmbedder(ctx)
	if err != nil {
		logger.Error("failed to initialize embedder", "provider", cfg.Embedding.Provider, "error", err)
		os.Exit(1)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := notify.NewRabbitNotifier(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer rabbit.Close()
		notifier = rabbit
	}

	opts := cfg.Extraction.Options()
	opts.Logger = logger

	workerPool := processor.NewJobProcessor(processor.Config{
		Jobs:       postgresDB,
		Candidates: postgresDB,
		Queue:      valkeyQueue,
		Store:      s3Store,
		S3Bucket:   cfg.S3.Bucket,
		Extractor:  extractor.New(embedder, opts),
		Notifier:   notifier,
		Logger:     logger,
	})

	logger.Info("starting workers", "count", *workers)
	workerPool.RunPool(ctx, *workers)

	logger.Info("worker shutdown complete")
}
