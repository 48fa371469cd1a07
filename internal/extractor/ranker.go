package extractor

import (
	"context"
	"fmt"
	"slices"

	"resume-extractor/internal/embedding"
)

const (
	DefaultResultCount = 3
	DefaultOversample  = 4
)

// RankedCandidate is a corpus line with its similarity to a label
// description. Index is the line's position in the corpus.
type RankedCandidate struct {
	Line  string  `json:"line"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// EncodedCorpus holds one vector per corpus line so several labels can be
// ranked against the same document without re-encoding it.
type EncodedCorpus struct {
	corpus  Corpus
	vectors [][]float32
}

func (e *EncodedCorpus) Corpus() Corpus { return e.corpus }

// Ranker orders corpus lines by cosine similarity to a description.
type Ranker struct {
	embedder   embedding.Embedder
	oversample int
}

func NewRanker(e embedding.Embedder, oversample int) *Ranker {
	if oversample <= 0 {
		oversample = DefaultOversample
	}
	return &Ranker{embedder: e, oversample: oversample}
}

// Encode embeds every corpus line.
func (r *Ranker) Encode(ctx context.Context, c Corpus) (*EncodedCorpus, error) {
	if c.Len() == 0 {
		return &EncodedCorpus{corpus: c}, nil
	}

	vectors, err := r.embedder.EmbedDocuments(ctx, c.lines)
	if err != nil {
		return nil, fmt.Errorf("encode corpus: %w", err)
	}
	if len(vectors) != c.Len() {
		return nil, fmt.Errorf("encode corpus: got %d vectors for %d lines", len(vectors), c.Len())
	}

	return &EncodedCorpus{corpus: c, vectors: vectors}, nil
}

// Rank encodes c and returns its k×oversample best lines for description.
func (r *Ranker) Rank(ctx context.Context, description string, c Corpus, k int) ([]RankedCandidate, error) {
	encoded, err := r.Encode(ctx, c)
	if err != nil {
		return nil, err
	}
	return r.RankEncoded(ctx, description, encoded, k)
}

// RankEncoded returns at most k×oversample candidates in descending score
// order. Equal scores keep corpus order.
func (r *Ranker) RankEncoded(ctx context.Context, description string, encoded *EncodedCorpus, k int) ([]RankedCandidate, error) {
	if encoded.corpus.Len() == 0 {
		return []RankedCandidate{}, nil
	}
	if k <= 0 {
		k = DefaultResultCount
	}

	query, err := r.embedder.EmbedQuery(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("encode description: %w", err)
	}

	candidates := make([]RankedCandidate, encoded.corpus.Len())
	for i, v := range encoded.vectors {
		candidates[i] = RankedCandidate{
			Line:  encoded.corpus.Line(i),
			Index: i,
			Score: embedding.Cosine(query, v),
		}
	}

	slices.SortStableFunc(candidates, func(a, b RankedCandidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return candidates[:min(k*r.oversample, len(candidates))], nil
}
