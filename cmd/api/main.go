package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"journalmind/internal/config"
	"journalmind/internal/connections"
	"journalmind/internal/continuity"
	"journalmind/internal/embedding"
	"journalmind/internal/extract"
	"journalmind/internal/http"
	"journalmind/internal/lexicon"
	"journalmind/internal/llm"
	"journalmind/internal/pipeline"
	"journalmind/internal/service"
	"journalmind/internal/storage"
	"journalmind/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)

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

	entryRepo := storage.NewEntryRepo(db)
	recordStore := continuity.NewFileStore(cfg.ContinuityStorePath)

	// Lexicon tables, with live reload when a file override is configured
	watcher, err := config.NewLexiconWatcher(cfg.LexiconPath, logger)
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}
	defer watcher.Close()

	// Word vectors are optional; without them the embedding similarity pass
	// is disabled.
	var provider embedding.Provider
	if cfg.VectorsPath != "" {
		loaded, err := embedding.LoadVectorFile(cfg.VectorsPath)
		if err != nil {
			log.Fatalf("Failed to load word vectors: %v", err)
		}
		provider = loaded
		slog.Info("Word vectors loaded", "path", cfg.VectorsPath, "words", loaded.Len(), "dimension", loaded.Dimension())
	} else {
		slog.Info("No word vectors configured, embedding similarity pass disabled")
	}

	extractor := extract.New(watcher.Lexicon())
	localDetector := connections.NewLocalDetector(watcher.Lexicon(), provider)
	watcher.OnReload(func(lex *lexicon.Lexicon) {
		extractor.Reload(lex)
		localDetector.Reload(lex)
	})

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	remoteDetector := connections.NewRemoteDetector(llmClient)

	ctx := context.Background()

	// The Qdrant entry index is optional; without it the similar-entry
	// route is not registered.
	var vectorStore vectorstore.VectorStore
	if cfg.QdrantEnabled {
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		vectorStore = qdrantStore
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
	}

	pipe := pipeline.New(extractor, localDetector, recordStore, provider, vectorStore, cfg.QdrantCollection)

	analysisService := service.NewAnalysisService(extractor)
	connectionService := service.NewConnectionService(entryRepo, localDetector, remoteDetector)

	// Create router with dependencies
	deps := &http.Deps{
		Analysis:    analysisService,
		Connections: connectionService,
		Entries:     entryRepo,
		Records:     recordStore,
		Processor:   pipe,
		DB:          db,
		Provider:    provider,
		Vectors:     vectorStore,
		Collection:  cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	// Rebuild derived data in the background after the router is ready
	go func() {
		rebuildCtx := context.Background()
		entries, err := entryRepo.ListActive(rebuildCtx)
		if err != nil {
			slog.Error("Failed to list entries for rebuild", "error", err)
			return
		}
		slog.Info("Starting background rebuild of derived data", "entries", len(entries))
		if _, err := pipe.Run(rebuildCtx, entries); err != nil {
			slog.Error("Rebuild completed with errors", "error", err)
		} else {
			slog.Info("Rebuild completed successfully")
		}
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
