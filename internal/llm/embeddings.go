package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// embeddingBatchSize bounds how many inputs go into one embeddings request.
const embeddingBatchSize = 32

// EmbeddingsClient calls an OpenAI-compatible /v1/embeddings endpoint and
// checks every returned vector against the configured collection size.
type EmbeddingsClient struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExpectedSize int
	client       *http.Client
}

// NewEmbeddingsClient creates a new embeddings client. expectedSize must match
// the vector size of the persona collection.
func NewEmbeddingsClient(baseURL, apiKey, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       newHTTPClient(30 * time.Second),
	}
}

// EmbeddingsRequest represents the request payload for embeddings API.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data []EmbeddingData `json:"data"`
}

// EmbedTexts returns one float32 vector per input text, in input order.
// Large inputs are sent in batches.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("empty input array")
	}

	result := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embeddingBatchSize {
		end := min(start+embeddingBatchSize, len(texts))
		vectors, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		result = append(result, vectors...)
	}
	return result, nil
}

func (c *EmbeddingsClient) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var resp EmbeddingsResponse
	payload := EmbeddingsRequest{Model: c.Model, Input: texts}
	if err := postJSON(ctx, c.client, c.BaseURL, "/v1/embeddings", c.APIKey, payload, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// Servers may return entries out of order; trust index only when it is a
	// permutation of the input positions.
	byIndex := indexesArePermutation(resp.Data)
	result := make([][]float32, len(texts))
	for i, data := range resp.Data {
		pos := i
		if byIndex {
			pos = data.Index
		}
		if len(data.Embedding) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", pos, len(data.Embedding), c.ExpectedSize)
		}

		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[pos] = vec
	}
	return result, nil
}

func indexesArePermutation(data []EmbeddingData) bool {
	seen := make([]bool, len(data))
	for _, d := range data {
		if d.Index < 0 || d.Index >= len(data) || seen[d.Index] {
			return false
		}
		seen[d.Index] = true
	}
	return true
}

// Probe embeds a short text to confirm the endpoint is reachable and that the
// model's output size matches ExpectedSize.
func (c *EmbeddingsClient) Probe(ctx context.Context) error {
	if _, err := c.EmbedTexts(ctx, []string{"persona"}); err != nil {
		return fmt.Errorf("embedding probe failed: %w", err)
	}
	return nil
}
