package config

import (
	"context"
	"fmt"

	"resume-extractor/internal/embedding"
	"resume-extractor/internal/extractor"
	"resume-extractor/internal/geministore"
)

// NewEmbedder builds the process-wide embedder for the configured provider.
// Both providers are safe for concurrent use and are returned as they are
// unless Serialize is set.
func (e Embedding) NewEmbedder(ctx context.Context) (embedding.Embedder, error) {
	var embedder embedding.Embedder

	switch e.Provider {
	case ProviderLocal:
		embedder = embedding.NewHashEmbedder(e.Dim)
	case ProviderGemini:
		client, err := geministore.New(ctx, e.APIKey, e.Model)
		if err != nil {
			return nil, err
		}
		embedder = client
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", e.Provider)
	}

	if e.Serialize {
		return embedding.Serialize(embedder), nil
	}
	return embedder, nil
}

// Options maps the extraction settings onto extractor options.
func (x Extraction) Options() extractor.Options {
	return extractor.Options{
		ResultCount: x.ResultCount,
		Oversample:  x.Oversample,
		Timeout:     x.Timeout,
	}
}
