package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"persona-admin/internal/cache"
	"persona-admin/internal/config"
	"persona-admin/internal/http"
	"persona-admin/internal/indexer"
	"persona-admin/internal/llm"
	"persona-admin/internal/metrics"
	"persona-admin/internal/service"
	"persona-admin/internal/storage"
	"persona-admin/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API manages assistant personas (versioned system prompts) and lets
// operators browse and analyze logged conversations.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Persona Admin API
//   description: |
//     Administrative API for persona system prompts and conversation analysis.
//     Every response is wrapped in an envelope with success, data, message,
//     errorMessage and timestamp fields.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	personaRepo := storage.NewPersonaRepo(db)
	conversationRepo := storage.NewConversationRepo(db)

	m := metrics.New()

	// Create LLM client (external service layer)
	llmClient := m.InstrumentLLM(llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout))
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName, "timeout", cfg.LLMTimeout)

	analysisOpts := []service.AnalysisOption{
		service.WithModel(cfg.LLMModelName),
		service.WithAnalysisLimit(cfg.AnalysisLimit),
	}

	// The report cache is an optimization; run without it if Redis is unreachable.
	if cfg.CacheEnabled() {
		reportCache, err := cache.Open(ctx, cfg.RedisURL, cfg.AnalysisCacheTTL)
		if err != nil {
			slog.Warn("Analysis report cache disabled", "error", err)
		} else {
			defer func() {
				_ = reportCache.Close()
			}()
			analysisOpts = append(analysisOpts, service.WithReportCache(m.InstrumentCache(reportCache)))
			slog.Info("Analysis report cache enabled", "ttl", cfg.AnalysisCacheTTL)
		}
	}

	personaOpts := []service.PersonaOption{
		service.WithHistoryKeep(cfg.HistoryKeep),
	}

	// Left as a nil interface when the index is disabled.
	var vectorStore vectorstore.VectorStore
	var personaIndexer *indexer.PersonaIndexer

	if cfg.IndexEnabled() {
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		defer func() {
			_ = qdrantStore.Close()
		}()

		// Ensure collection exists with correct vector size
		if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

		// Validate embedding client vector size (fail-fast)
		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		if err := embedder.Probe(ctx); err != nil {
			log.Fatalf("Failed to validate embedding client: %v", err)
		}
		slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

		vectorStore = qdrantStore
		personaIndexer = indexer.NewPersonaIndexer(embedder, qdrantStore, cfg.QdrantCollection)
		personaOpts = append(personaOpts, service.WithPersonaIndex(personaIndexer))
	}

	personaService := service.NewPersonaService(personaRepo, personaOpts...)
	conversationService := service.NewConversationService(conversationRepo)
	analysisService := service.NewAnalysisService(llmClient, conversationService, analysisOpts...)

	router := http.NewRouter(&http.Deps{
		PersonaService:      personaService,
		ConversationService: conversationService,
		AnalysisService:     analysisService,
		DB:                  db,
		VectorStore:         vectorStore,
		CollectionName:      cfg.QdrantCollection,
		Metrics:             m,
	})

	// Start indexing in background after router is ready
	if personaIndexer != nil {
		go func() {
			slog.Info("Starting background indexing of personas")
			if err := personaIndexer.Reindex(ctx, personaRepo); err != nil {
				slog.Error("Indexing completed with errors", "error", err)
			} else {
				slog.Info("Indexing completed successfully")
			}
		}()
	}

	// Analysis and prompt tests wait on the LLM, so writes may take up to its timeout.
	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatalf("API server failed to listen: %v", err)
	}

	// In-flight analysis may be waiting on the LLM; give it that long to finish.
	slog.Info("Starting API server", "addr", ln.Addr().String())
	if err := serve(ctx, server, ln, cfg.LLMTimeout+5*time.Second); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
	slog.Info("API server stopped")
}

// serve runs server on ln until ctx is cancelled, then drains in-flight
// requests for up to drainTimeout. It returns only after the drain, so
// deferred closes in main run after the last handler.
func serve(ctx context.Context, server *nethttp.Server, ln net.Listener, drainTimeout time.Duration) error {
	drained := make(chan error, 1)
	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		drained <- server.Shutdown(shutdownCtx)
	}()

	if err := server.Serve(ln); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	if err := <-drained; err != nil {
		slog.Error("Graceful shutdown did not finish", "error", err)
	}
	return nil
}
