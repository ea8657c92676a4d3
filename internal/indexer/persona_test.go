package indexer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"persona-admin/internal/indexer/mocks"
	"persona-admin/internal/storage"
	storagemocks "persona-admin/internal/storage/mocks"
	"persona-admin/internal/vectorstore"
	vsmocks "persona-admin/internal/vectorstore/mocks"
)

func TestPointID_Stability(t *testing.T) {
	first := PointID("demo_bot")
	if first != PointID("demo_bot") {
		t.Error("PointID() should be deterministic")
	}
	if first == PointID("demo_bot2") {
		t.Error("PointID() should differ between personas")
	}
	if len(first) != 36 || strings.Count(first, "-") != 4 {
		t.Errorf("PointID() = %q, want UUID format", first)
	}
}

func TestPersonaIndexer_IndexPersona(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := mocks.NewMockEmbedder(ctrl)
	store := vsmocks.NewMockVectorStore(ctrl)
	ix := NewPersonaIndexer(embedder, store, "personas")
	ctx := context.Background()

	tests := []struct {
		name      string
		prompt    string
		mockSetup func()
		wantErr   bool
	}{
		{
			name:   "upserts one point",
			prompt: "# Demo Bot\nHelps with demos.",
			mockSetup: func() {
				embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"# Demo Bot\nHelps with demos."}).
					Return([][]float32{{0.1, 0.2}}, nil)
				store.EXPECT().Upsert(gomock.Any(), "personas", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
						if len(points) != 1 {
							t.Fatalf("Upsert() got %d points, want 1", len(points))
						}
						p := points[0]
						if p.ID != PointID("demo_bot") || p.Meta["persona_code"] != "demo_bot" || p.Meta["prompt_type"] != "PERSONA" {
							t.Errorf("Upsert() point = %+v", p)
						}
						return nil
					})
			},
		},
		{
			name:   "long prompt is bounded",
			prompt: strings.Repeat("x", maxEmbedChars+10),
			mockSetup: func() {
				embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, texts []string) ([][]float32, error) {
						if len(texts[0]) != maxEmbedChars {
							t.Errorf("embedded %d chars, want %d", len(texts[0]), maxEmbedChars)
						}
						return [][]float32{{0.3}}, nil
					})
				store.EXPECT().Upsert(gomock.Any(), "personas", gomock.Any()).Return(nil)
			},
		},
		{
			name:   "embedding failure",
			prompt: "prompt text",
			mockSetup: func() {
				embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(nil, errors.New("bad status 503"))
			},
			wantErr: true,
		},
		{
			name:   "upsert failure",
			prompt: "prompt text",
			mockSetup: func() {
				embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{{0.1}}, nil)
				store.EXPECT().Upsert(gomock.Any(), "personas", gomock.Any()).Return(errors.New("unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := ix.IndexPersona(ctx, "demo_bot", tt.prompt)
			if (err != nil) != tt.wantErr {
				t.Errorf("IndexPersona() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPersonaIndexer_Similar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := mocks.NewMockEmbedder(ctrl)
	store := vsmocks.NewMockVectorStore(ctrl)
	ix := NewPersonaIndexer(embedder, store, "personas")

	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"weekly status"}).Return([][]float32{{0.5, 0.5}}, nil)
	store.EXPECT().
		Search(gomock.Any(), "personas", []float32{0.5, 0.5}, 3, map[string]string{"prompt_type": "PERSONA"}).
		Return([]vectorstore.SearchResult{
			{PointID: PointID("weekly_report"), Score: 0.9, Meta: map[string]any{"persona_code": "weekly_report"}},
			{PointID: "orphan", Score: 0.4, Meta: map[string]any{}},
		}, nil)

	got, err := ix.Similar(context.Background(), "weekly status", 3)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(got) != 1 || got[0].PersonaCode != "weekly_report" || got[0].Score != 0.9 {
		t.Errorf("Similar() = %+v", got)
	}
}

func TestPersonaIndexer_Reindex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	embedder := mocks.NewMockEmbedder(ctrl)
	vs := vsmocks.NewMockVectorStore(ctrl)
	personas := storagemocks.NewMockPersonaStore(ctrl)
	ix := NewPersonaIndexer(embedder, vs, "personas")

	now := time.Now()
	personas.EXPECT().LatestAll(gomock.Any(), storage.PromptTypePersona).Return([]storage.PersonaRecord{
		{RecordID: 1, PersonaCode: "a_bot", PromptText: "prompt a", CreatedAt: now},
		{RecordID: 2, PersonaCode: "b_bot", PromptText: "prompt b", CreatedAt: now},
	}, nil)
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"prompt a"}).Return([][]float32{{1}}, nil)
	embedder.EXPECT().EmbedTexts(gomock.Any(), []string{"prompt b"}).Return(nil, errors.New("timeout"))
	vs.EXPECT().Upsert(gomock.Any(), "personas", gomock.Any()).Return(nil)

	err := ix.Reindex(context.Background(), personas)
	if err == nil || !strings.Contains(err.Error(), "1 errors") {
		t.Errorf("Reindex() error = %v, want one failed persona", err)
	}
}

func TestPersonaIndexer_ReindexCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	personas := storagemocks.NewMockPersonaStore(ctrl)
	personas.EXPECT().LatestAll(gomock.Any(), storage.PromptTypePersona).Return([]storage.PersonaRecord{
		{RecordID: 1, PersonaCode: "a_bot", PromptText: "prompt a"},
	}, nil)

	ix := NewPersonaIndexer(mocks.NewMockEmbedder(ctrl), vsmocks.NewMockVectorStore(ctrl), "personas")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ix.Reindex(ctx, personas); !errors.Is(err, context.Canceled) {
		t.Errorf("Reindex() error = %v, want context.Canceled", err)
	}
}
