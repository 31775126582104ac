package handlers

import (
	"net/http"
	"time"

	"journalmind/internal/continuity"
	"journalmind/internal/contextutil"
)

// RecordsHandler handles HTTP queries over the continuity store.
type RecordsHandler struct {
	store continuity.Store
}

// NewRecordsHandler creates a new RecordsHandler.
func NewRecordsHandler(store continuity.Store) *RecordsHandler {
	return &RecordsHandler{store: store}
}

// List returns records filtered by the first query predicate present:
// source_app, entity_type + entity_id, entity_type alone, or from/to dates.
// With no predicate it returns everything.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	q := r.URL.Query()

	var records []continuity.ContinuityRecord
	var err error
	switch {
	case q.Get("source_app") != "":
		records, err = h.store.FetchBySourceApp(q.Get("source_app"))
	case q.Get("entity_type") != "" && q.Get("entity_id") != "":
		records, err = h.store.FetchByEntity(continuity.EntityType(q.Get("entity_type")), q.Get("entity_id"))
	case q.Get("entity_type") != "":
		records, err = h.store.FetchByEntityType(continuity.EntityType(q.Get("entity_type")))
	case q.Get("from") != "" || q.Get("to") != "":
		var from, to time.Time
		from, to, err = parseDateRange(q.Get("from"), q.Get("to"))
		if err != nil {
			logger.WarnContext(ctx, "invalid date range", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid date range, use YYYY-MM-DD")
			return
		}
		records, err = h.store.FetchByDateRange(from, to)
	default:
		records, err = h.store.LoadAll()
	}
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to query records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Counts returns the number of records per source app.
func (h *RecordsHandler) Counts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.store.RecordCounts()
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to count records")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	// Far enough out to mean "no upper bound".
	to := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Inclusive through the end of the day.
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
