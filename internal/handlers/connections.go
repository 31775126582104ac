package handlers

import (
	"net/http"
	"time"

	"journalmind/internal/contextutil"
	"journalmind/internal/journal"
	"journalmind/internal/service"
)

// ConnectionsHandler handles HTTP requests for connection detection.
type ConnectionsHandler struct {
	connections service.ConnectionService
}

// NewConnectionsHandler creates a new ConnectionsHandler.
func NewConnectionsHandler(connections service.ConnectionService) *ConnectionsHandler {
	return &ConnectionsHandler{connections: connections}
}

// ConnectionsResponse represents a detection result payload.
type ConnectionsResponse struct {
	Connections []journal.Connection `json:"connections"`
	// GeneratedAt is set for remote results served from or written to the
	// cache.
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

// Detect runs detection with the backend selected by the "backend" query
// parameter (local by default).
func (h *ConnectionsHandler) Detect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := r.URL.Query().Get("backend")

	conns, err := h.connections.Detect(ctx, backend)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to detect connections")
		return
	}

	resp := ConnectionsResponse{Connections: conns}
	if backend == service.BackendRemote {
		resp.GeneratedAt = h.connections.LastGeneratedAt()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Regenerate forces a fresh remote detection, bypassing the cache.
func (h *ConnectionsHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conns, err := h.connections.Regenerate(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to regenerate connections")
		return
	}
	writeJSON(w, http.StatusOK, ConnectionsResponse{
		Connections: conns,
		GeneratedAt: h.connections.LastGeneratedAt(),
	})
}

// Cached returns the cached remote connections without generating.
func (h *ConnectionsHandler) Cached(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	cached := h.connections.Cached()
	if cached == nil {
		logger.InfoContext(ctx, "no cached connections")
		writeError(w, http.StatusNotFound, "No cached connections")
		return
	}
	writeJSON(w, http.StatusOK, ConnectionsResponse{
		Connections: cached,
		GeneratedAt: h.connections.LastGeneratedAt(),
	})
}
