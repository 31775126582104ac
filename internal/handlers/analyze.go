package handlers

import (
	"encoding/json"
	"net/http"

	"journalmind/internal/contextutil"
	"journalmind/internal/service"
)

// AnalyzeHandler handles HTTP requests for entity extraction.
type AnalyzeHandler struct {
	analysis service.AnalysisService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analysis service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysis: analysis}
}

// AnalyzeRequest represents the HTTP request payload for analysis.
type AnalyzeRequest struct {
	Text       string `json:"text"`
	Reflection string `json:"reflection,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ServeHTTP handles HTTP requests for analysis.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entities, err := h.analysis.Analyze(ctx, service.AnalyzeRequest{
		Text:       req.Text,
		Reflection: req.Reflection,
		Notes:      req.Notes,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to analyze text")
		return
	}

	writeJSON(w, http.StatusOK, entities)
}
