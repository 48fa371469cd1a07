// Command extract prints the candidate record of a local résumé file.
//
//	extract [-provider local] [-k 3] resume.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"resume-extractor/internal/config"
	"resume-extractor/internal/docext"
	"resume-extractor/internal/extractor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {

	provider := flag.String("provider", "", "embedding provider (gemini or local), overrides EMBEDDING_PROVIDER")
	k := flag.Int("k", 0, "maximum values per ranked field, overrides RESULT_COUNT")
	verbose := flag.Bool("v", false, "log extraction details to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: %s [flags] <resume file>", os.Args[0])
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *provider != "" {
		cfg.Embedding.Provider = *provider
	}
	if *k > 0 {
		cfg.Extraction.ResultCount = *k
	}
	if err := cfg.ValidateEmbedding(); err != nil {
		return err
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ERROR: reading %s: %w", path, err)
	}

	pages, err := docext.ExtractPages(docext.DetectContentType(path, data), data)
	if err != nil {
		return fmt.Errorf("ERROR: reading %s: %w", path, err)
	}

	ctx := context.Background()

	embedder, err := cfg.Embedding.NewEmbedder(ctx)
	if err != nil {
		return err
	}

	opts := cfg.Extraction.Options()
	opts.Logger = logger

	record, err := extractor.New(embedder, opts).Extract(ctx, pages)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
