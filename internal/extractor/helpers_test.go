package extractor

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
)

// scoreEmbedder makes cosine(query, line) equal scores[line] (0 when
// absent) for every query, so tests control the ranking directly.
type scoreEmbedder struct {
	scores map[string]float64

	mu        sync.Mutex
	docCalls  int
	queryCall int
}

func (s *scoreEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	s.queryCall++
	s.mu.Unlock()
	return []float32{1, 0}, nil
}

func (s *scoreEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	s.docCalls++
	s.mu.Unlock()

	out := make([][]float32, len(texts))
	for i, text := range texts {
		score := s.scores[text]
		out[i] = []float32{float32(score), float32(math.Sqrt(1 - score*score))}
	}
	return out, nil
}

var errModelDown = errors.New("model unavailable")

type failingEmbedder struct{}

func (failingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return nil, errModelDown
}

func (failingEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errModelDown
}

// blockingEmbedder waits for the context to end.
type blockingEmbedder struct{}

func (blockingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// rendezvousEmbedder holds every EmbedDocuments call until n callers are
// inside it at once, so it only returns when calls overlap.
type rendezvousEmbedder struct {
	n       int32
	arrived atomic.Int32
	ready   chan struct{}
	once    sync.Once
}

func newRendezvousEmbedder(n int) *rendezvousEmbedder {
	return &rendezvousEmbedder{n: int32(n), ready: make(chan struct{})}
}

func (r *rendezvousEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (r *rendezvousEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if r.arrived.Add(1) == r.n {
		r.once.Do(func() { close(r.ready) })
	}

	select {
	case <-r.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}
