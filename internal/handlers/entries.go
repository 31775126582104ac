package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"journalmind/internal/contextutil"
	"journalmind/internal/extract"
	"journalmind/internal/journal"
	"journalmind/internal/storage"
)

// EntryProcessor re-derives an entry's records after a write.
// *pipeline.Pipeline satisfies it.
type EntryProcessor interface {
	ProcessEntry(ctx context.Context, entry journal.Entry) (extract.Entities, error)
	RemoveEntry(ctx context.Context, entryID string) error
}

// EntriesHandler handles HTTP requests for journal entries.
type EntriesHandler struct {
	entries   storage.EntryStore
	processor EntryProcessor
}

// NewEntriesHandler creates a new EntriesHandler. processor may be nil to
// skip derived-data processing.
func NewEntriesHandler(entries storage.EntryStore, processor EntryProcessor) *EntriesHandler {
	return &EntriesHandler{entries: entries, processor: processor}
}

// EntryRequest represents the HTTP payload for creating or updating an entry.
type EntryRequest struct {
	Kind       string `json:"kind,omitempty"`
	Text       string `json:"text"`
	Reflection string `json:"reflection,omitempty"`
}

// EntryResponse wraps an entry with its freshly derived entities.
type EntryResponse struct {
	Entry    journal.Entry     `json:"entry"`
	Entities *extract.Entities `json:"entities,omitempty"`
}

// Create stores a new entry and derives its entities and continuity record.
func (h *EntriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Entry text cannot be empty")
		return
	}
	kind := journal.EntryKind(req.Kind)
	if req.Kind != "" && !validEntryKind(kind) {
		writeError(w, http.StatusBadRequest, "Unknown entry kind")
		return
	}

	entry := journal.Entry{Kind: kind, Text: req.Text, Reflection: req.Reflection}
	if err := h.entries.Create(ctx, &entry); err != nil {
		handleServiceError(w, ctx, err, "Failed to create entry")
		return
	}

	resp := EntryResponse{Entry: entry}
	if h.processor != nil {
		entities, err := h.processor.ProcessEntry(ctx, entry)
		if err != nil {
			// The entry is stored; derived data can be rebuilt later.
			logger.WarnContext(ctx, "failed to process new entry", "entry_id", entry.ID, "error", err)
		} else {
			resp.Entities = &entities
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List returns all active entries.
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.entries.ListActive(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list entries")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Get returns one entry by id.
func (h *EntriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entry, err := h.entries.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Update rewrites an entry's text and re-derives its records.
func (h *EntriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id := chi.URLParam(r, "id")

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Entry text cannot be empty")
		return
	}

	entry, err := h.entries.GetByID(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load entry")
		return
	}

	entry.Text = req.Text
	entry.Reflection = req.Reflection
	if req.Kind != "" {
		kind := journal.EntryKind(req.Kind)
		if !validEntryKind(kind) {
			writeError(w, http.StatusBadRequest, "Unknown entry kind")
			return
		}
		entry.Kind = kind
	}
	if err := h.entries.Update(ctx, entry); err != nil {
		handleServiceError(w, ctx, err, "Failed to update entry")
		return
	}

	resp := EntryResponse{Entry: *entry}
	if h.processor != nil {
		entities, err := h.processor.ProcessEntry(ctx, *entry)
		if err != nil {
			logger.WarnContext(ctx, "failed to process updated entry", "entry_id", entry.ID, "error", err)
		} else {
			resp.Entities = &entities
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete soft-deletes an entry and drops its derived data.
func (h *EntriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id := chi.URLParam(r, "id")

	if err := h.entries.Delete(ctx, id); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete entry")
		return
	}
	if h.processor != nil {
		if err := h.processor.RemoveEntry(ctx, id); err != nil {
			logger.WarnContext(ctx, "failed to remove derived data", "entry_id", id, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func validEntryKind(kind journal.EntryKind) bool {
	switch kind {
	case journal.KindReflection, journal.KindQuestion, journal.KindGratitude, journal.KindDream:
		return true
	}
	return false
}
