package geministore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "resume-extractor/internal/errors"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DefaultModel = "gemini-embedding-001"

	// EmbedContent accepts at most this many contents per request.
	maxBatch = 100

	taskQuery    = "RETRIEVAL_QUERY"
	taskDocument = "RETRIEVAL_DOCUMENT"
)

type embedFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)

// GeminiClient embeds résumé lines and label descriptions with the Gemini
// embedding model. The underlying genai client is safe for concurrent use.
type GeminiClient struct {
	Client *genai.Client
	model  string
	embed  embedFunc
}

func New(ctx context.Context, apiKey, model string) (*GeminiClient, error) {

	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required: %w", apperrors.ErrPermanentFailure)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})

	if err != nil {
		return nil, fmt.Errorf("API key error: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &GeminiClient{Client: client, model: model, embed: client.Models.EmbedContent}, nil
}

func (g *GeminiClient) EmbedQuery(ctx context.Context, text string) ([]float32, error) {

	vectors, err := g.embedBatch(ctx, []string{text}, taskQuery)
	if err != nil {
		return nil, err
	}

	return vectors[0], nil
}

func (g *GeminiClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {

	out := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))

		vectors, err := g.embedBatch(ctx, texts[start:end], taskDocument)
		if err != nil {
			return nil, err
		}
		out = append(out, vectors...)
	}

	return out, nil
}

func (g *GeminiClient) embedBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := g.embed(ctx, g.model, contents, &genai.EmbedContentConfig{TaskType: taskType})

	if err != nil {
		return nil, classify(err)
	}

	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d inputs", len(result.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, e := range result.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("gemini returned empty embedding result")
		}
		vectors[i] = e.Values
	}

	return vectors, nil
}

// classify marks bad credentials and bad input as permanent failures.
func classify(err error) error {

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("gemini authentication failed: %w", apperrors.ErrPermanentFailure)
		case http.StatusBadRequest:
			return fmt.Errorf("gemini invalid input (400): %w", apperrors.ErrPermanentFailure)
		}
	}

	st, ok := status.FromError(err)

	if ok {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			return fmt.Errorf("gemini authentication failed: %w", apperrors.ErrPermanentFailure)
		case codes.InvalidArgument:
			return fmt.Errorf("gemini invalid input (400): %w", apperrors.ErrPermanentFailure)
		}
	}

	return fmt.Errorf("failed to embed given content with: %w", err)
}
