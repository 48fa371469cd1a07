package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-extractor/internal/api"
	"resume-extractor/internal/config"
	"resume-extractor/internal/extractor"
	"resume-extractor/internal/postgresdb"
	"resume-extractor/internal/s3"
	"resume-extractor/internal/valkeydb"
)

func main() {

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

	if err := postgresDB.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	valkeyQueue, err := valkeydb.New(ctx, cfg.ValkeyURL, cfg.ValkeyPassword)
	if err != nil {
		logger.Error("failed to initialize valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyQueue.Close()

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

	opts := cfg.Extraction.Options()
	opts.Logger = logger
	// request handlers share one embedder
	x := extractor.New(embedder, opts)

	apiHandler := api.NewAPIHandler(api.Config{
		Jobs:           postgresDB,
		Candidates:     postgresDB,
		Queue:          valkeyQueue,
		Store:          s3Store,
		Extractor:      x,
		S3Bucket:       cfg.S3.Bucket,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(apiHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	logger.Info("api shutdown complete")
}
