package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"resume-extractor/internal/embedding"
	apperrors "resume-extractor/internal/errors"
	"resume-extractor/internal/models"
)

const DefaultTimeout = 30 * time.Second

type Options struct {
	// ResultCount caps every ranked field. Zero means DefaultResultCount.
	ResultCount int
	// Oversample multiplies ResultCount when fetching ranked candidates.
	Oversample int
	// Timeout bounds one extraction call. Negative disables the bound.
	Timeout time.Duration
	Labels  []Label
	Logger  *slog.Logger
}

// Extractor turns a document's pages into a CandidateRecord. It holds no
// per-document state and may be shared by concurrent callers as long as
// its Embedder allows concurrent use.
type Extractor struct {
	ranker  *Ranker
	labels  []Label
	k       int
	timeout time.Duration
	logger  *slog.Logger
}

func New(e embedding.Embedder, opts Options) *Extractor {
	if opts.ResultCount <= 0 {
		opts.ResultCount = DefaultResultCount
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Labels == nil {
		opts.Labels = DefaultLabels()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Extractor{
		ranker:  NewRanker(e, opts.Oversample),
		labels:  opts.Labels,
		k:       opts.ResultCount,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
}

// Extract normalizes pages into a corpus and extracts from it.
func (x *Extractor) Extract(ctx context.Context, pages []string) (*models.CandidateRecord, error) {
	return x.ExtractCorpus(ctx, NewCorpus(pages))
}

// ExtractCorpus runs every label in table order and merges the results
// with the contact fields. Any embedding failure fails the whole call
// with ErrExtractionFailed.
func (x *Extractor) ExtractCorpus(ctx context.Context, c Corpus) (*models.CandidateRecord, error) {
	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	start := time.Now()
	record := models.NewCandidateRecord()

	contact := ExtractContact(c)
	record.Name = contact.Name
	record.Email = contact.Email

	var encoded *EncodedCorpus

	for _, label := range x.labels {
		if label.Extract != nil {
			record.SetField(label.Name, label.Extract(c))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrExtractionFailed, err)
		}

		if encoded == nil {
			var err error
			if encoded, err = x.ranker.Encode(ctx, c); err != nil {
				return nil, fmt.Errorf("%w: %w", apperrors.ErrExtractionFailed, err)
			}
		}

		description := label.Description
		if description == "" {
			description = label.Name
		}

		ranked, err := x.ranker.RankEncoded(ctx, description, encoded, x.k)
		if err != nil {
			return nil, fmt.Errorf("%w: label %s: %w", apperrors.ErrExtractionFailed, label.Name, err)
		}

		record.SetField(label.Name, Validate(label, ranked, x.k))
		x.logger.Debug("label ranked",
			"label", label.Name,
			"candidates", len(ranked),
			"values", record.Field(label.Name),
		)
	}

	x.logger.Info("extraction finished",
		"lines", c.Len(),
		"has_name", record.Name != "",
		"has_email", record.Email != "",
		"duration", time.Since(start),
	)

	return record, nil
}
