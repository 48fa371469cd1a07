package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

const defaultHashDim = 256

// HashEmbedder is a deterministic bag-of-words embedder that needs no
// model or network. Each lower-cased token is hashed into one of Dim
// buckets, so lines sharing words with a query score higher.
type HashEmbedder struct {
	Dim int
}

func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = defaultHashDim
	}
	return &HashEmbedder{Dim: dim}
}

func (e *HashEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.embed(text), nil
}

func (e *HashEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *HashEmbedder) embed(text string) []float32 {
	v := make([]float32, e.Dim)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		h := fnv.New32a()
		h.Write([]byte(tok))
		v[h.Sum32()%uint32(e.Dim)]++
	}
	return v
}
