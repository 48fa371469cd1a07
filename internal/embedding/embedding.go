package embedding

import (
	"context"
	"math"
	"sync"
)

// Embedder turns text into fixed-length vectors. Implementations are
// expected to return one vector per input, in input order.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// Cosine returns the cosine similarity of a and b. Vectors of different
// length or with zero magnitude score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}

	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

type serialized struct {
	mu    sync.Mutex
	inner Embedder
}

// Serialize wraps an Embedder that is not safe for concurrent use so
// that calls from concurrent extractions run one at a time.
func Serialize(e Embedder) Embedder {
	return &serialized{inner: e}
}

func (s *serialized) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.EmbedQuery(ctx, text)
}

func (s *serialized) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.EmbedDocuments(ctx, texts)
}
