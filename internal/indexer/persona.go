package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks persona-admin/internal/indexer Embedder

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"persona-admin/internal/contextutil"
	"persona-admin/internal/storage"
	"persona-admin/internal/vectorstore"
)

// maxEmbedChars bounds the prompt text sent to the embedding server.
const maxEmbedChars = 8000

const promptTypePayloadKey = "prompt_type"

// Embedder generates embeddings for texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Match is a persona found by similarity search.
type Match struct {
	PersonaCode string
	Score       float32
}

// PersonaIndexer keeps one vector point per persona, holding the embedding
// of its current prompt.
type PersonaIndexer struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
}

// NewPersonaIndexer creates a new persona indexer.
func NewPersonaIndexer(embedder Embedder, vectorStore vectorstore.VectorStore, collection string) *PersonaIndexer {
	return &PersonaIndexer{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
	}
}

// PointID returns the stable point ID for a persona. Re-indexing a persona
// overwrites its previous point.
func PointID(personaCode string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("persona:"+personaCode)).String()
}

// IndexPersona embeds the prompt text and upserts the persona's point.
func (ix *PersonaIndexer) IndexPersona(ctx context.Context, personaCode, promptText string) error {
	logger := contextutil.LoggerFromContext(ctx)

	embeddings, err := ix.embedder.EmbedTexts(ctx, []string{embedText(promptText)})
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(embeddings) != 1 {
		return fmt.Errorf("embedding count mismatch: expected 1, got %d", len(embeddings))
	}

	point := vectorstore.Point{
		ID:  PointID(personaCode),
		Vec: embeddings[0],
		Meta: map[string]any{
			"persona_code":       personaCode,
			promptTypePayloadKey: string(storage.PromptTypePersona),
		},
	}
	if err := ix.vectorStore.Upsert(ctx, ix.collection, []vectorstore.Point{point}); err != nil {
		return fmt.Errorf("failed to upsert vector: %w", err)
	}

	logger.DebugContext(ctx, "indexed persona", "persona_code", personaCode)
	return nil
}

// Similar returns up to k personas ranked by similarity to query.
func (ix *PersonaIndexer) Similar(ctx context.Context, query string, k int) ([]Match, error) {
	embeddings, err := ix.embedder.EmbedTexts(ctx, []string{embedText(query)})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("embedding count mismatch: expected 1, got %d", len(embeddings))
	}

	results, err := ix.vectorStore.Search(ctx, ix.collection, embeddings[0], k, map[string]string{
		promptTypePayloadKey: string(storage.PromptTypePersona),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search personas: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		code, _ := r.Meta["persona_code"].(string)
		if code == "" {
			continue
		}
		matches = append(matches, Match{PersonaCode: code, Score: r.Score})
	}
	return matches, nil
}

// Reindex indexes the latest prompt of every persona.
// Errors for individual personas are logged but don't stop the run.
func (ix *PersonaIndexer) Reindex(ctx context.Context, store storage.PersonaStore) error {
	logger := contextutil.LoggerFromContext(ctx)

	records, err := store.LatestAll(ctx, storage.PromptTypePersona)
	if err != nil {
		return fmt.Errorf("failed to load personas: %w", err)
	}

	logger.InfoContext(ctx, "starting persona indexing", "total_personas", len(records))

	var successCount, errorCount int
	for _, rec := range records {
		// Check for context cancellation
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := ix.IndexPersona(ctx, rec.PersonaCode, rec.PromptText); err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to index persona", "persona_code", rec.PersonaCode, "error", err)
			continue
		}
		successCount++
	}

	logger.InfoContext(ctx, "persona indexing completed", "total_personas", len(records), "success", successCount, "errors", errorCount)

	if errorCount > 0 {
		return fmt.Errorf("indexing completed with %d errors", errorCount)
	}
	return nil
}

// embedText bounds the text passed to the embedding server.
func embedText(s string) string {
	if utf8.RuneCountInString(s) <= maxEmbedChars {
		return s
	}
	return string([]rune(s)[:maxEmbedChars])
}
