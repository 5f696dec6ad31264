package embeddings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Generator creates embedding vectors for semantic matching
type Generator struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewGenerator creates a generator backed by the OpenAI embeddings API
func NewGenerator(apiKey string, opts ...option.RequestOption) *Generator {
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &Generator{
		client: &client,
		model:  openai.EmbeddingModelTextEmbedding3Small,
	}
}

// Embed creates one vector per text, in order. Empty texts are rejected
// since the API would silently drop them and shift the indexes.
func (g *Generator) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts provided")
	}
	if slices.Contains(texts, "") {
		return nil, errors.New("text cannot be empty")
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: g.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	out := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if int(data.Index) >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range", data.Index)
		}
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		out[data.Index] = vec
	}
	return out, nil
}

// Cosine returns the cosine similarity of two vectors, 0 when either is empty
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Scored is a document index with its similarity to the query
type Scored struct {
	Index int
	Score float64
}

// Rank embeds query and docs in one call and orders the docs by similarity
func (g *Generator) Rank(ctx context.Context, query string, docs []string) ([]Scored, error) {
	vecs, err := g.Embed(ctx, append([]string{query}, docs...))
	if err != nil {
		return nil, err
	}
	out := make([]Scored, len(docs))
	for i := range docs {
		out[i] = Scored{Index: i, Score: Cosine(vecs[0], vecs[i+1])}
	}
	slices.SortStableFunc(out, func(a, b Scored) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}
