package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"journalmind/internal/contextutil"
	"journalmind/internal/embedding"
	"journalmind/internal/lexical"
	"journalmind/internal/storage"
	"journalmind/internal/vectorstore"
)

const defaultSimilarLimit = 5

// SimilarHandler finds entries similar to a given entry via the vector index.
type SimilarHandler struct {
	entries    storage.EntryStore
	provider   embedding.Provider
	vectors    vectorstore.VectorStore
	collection string
}

// NewSimilarHandler creates a new SimilarHandler.
func NewSimilarHandler(entries storage.EntryStore, provider embedding.Provider, vectors vectorstore.VectorStore, collection string) *SimilarHandler {
	return &SimilarHandler{
		entries:    entries,
		provider:   provider,
		vectors:    vectors,
		collection: collection,
	}
}

// SimilarEntry is one similar-entry result.
type SimilarEntry struct {
	EntryID  string  `json:"entry_id"`
	Sequence int     `json:"sequence"`
	Kind     string  `json:"kind,omitempty"`
	Score    float32 `json:"score"`
	Preview  string  `json:"preview,omitempty"`
}

// ServeHTTP returns the entries most similar to the one in the URL.
func (h *SimilarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	entry, err := h.entries.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load entry")
		return
	}

	limit := defaultSimilarLimit
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		k, err := strconv.Atoi(kStr)
		if err != nil || k <= 0 {
			writeError(w, http.StatusBadRequest, "k must be a positive integer")
			return
		}
		limit = k
	}

	vec, ok := embedding.DocumentVector(h.provider, lexical.PlainText(entry.Text))
	if !ok {
		logger.InfoContext(ctx, "entry has no embedding", "entry_id", entry.ID)
		writeJSON(w, http.StatusOK, []SimilarEntry{})
		return
	}

	// Over-fetch by one so the entry itself can be dropped from results.
	results, err := h.vectors.Search(ctx, h.collection, vec, limit+1, vectorstore.SearchFilter{
		Kind: r.URL.Query().Get("kind"),
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search similar entries")
		return
	}

	similar := []SimilarEntry{}
	for _, result := range results {
		if result.EntryID == entry.ID || len(similar) >= limit {
			continue
		}
		similar = append(similar, SimilarEntry{
			EntryID:  result.EntryID,
			Sequence: result.Sequence,
			Kind:     result.Kind,
			Score:    result.Score,
			Preview:  result.Preview,
		})
	}
	writeJSON(w, http.StatusOK, similar)
}
