package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"journalmind/internal/journal"
	"journalmind/internal/service"
	service_mocks "journalmind/internal/service/mocks"
)

func TestConnectionsDetectDefaultsToLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConnections := service_mocks.NewMockConnectionService(ctrl)

	conns := []journal.Connection{{ID: "c1", Type: journal.ConnectionThematic, Confidence: 0.4}}
	mockConnections.EXPECT().Detect(gomock.Any(), "").Return(conns, nil)

	handler := NewConnectionsHandler(mockConnections)
	req := httptest.NewRequest(http.MethodPost, "/api/connections/detect", nil)
	rec := httptest.NewRecorder()

	handler.Detect(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ConnectionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Connections) != 1 || resp.Connections[0].ID != "c1" {
		t.Errorf("unexpected connections: %+v", resp.Connections)
	}
	if resp.GeneratedAt != nil {
		t.Errorf("local detection should not report a generation time")
	}
}

func TestConnectionsDetectRemoteReportsGeneratedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConnections := service_mocks.NewMockConnectionService(ctrl)

	generatedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockConnections.EXPECT().Detect(gomock.Any(), service.BackendRemote).Return([]journal.Connection{}, nil)
	mockConnections.EXPECT().LastGeneratedAt().Return(&generatedAt)

	handler := NewConnectionsHandler(mockConnections)
	req := httptest.NewRequest(http.MethodPost, "/api/connections/detect?backend=remote", nil)
	rec := httptest.NewRecorder()

	handler.Detect(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ConnectionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.GeneratedAt == nil || !resp.GeneratedAt.Equal(generatedAt) {
		t.Errorf("expected generated_at %v, got %v", generatedAt, resp.GeneratedAt)
	}
}

func TestConnectionsDetectUnknownBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConnections := service_mocks.NewMockConnectionService(ctrl)

	mockConnections.EXPECT().
		Detect(gomock.Any(), "psychic").
		Return(nil, &service.ValidationError{Field: "backend", Message: "must be local or remote"})

	handler := NewConnectionsHandler(mockConnections)
	req := httptest.NewRequest(http.MethodPost, "/api/connections/detect?backend=psychic", nil)
	rec := httptest.NewRecorder()

	handler.Detect(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestConnectionsRegenerate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConnections := service_mocks.NewMockConnectionService(ctrl)

	generatedAt := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	mockConnections.EXPECT().Regenerate(gomock.Any()).Return([]journal.Connection{{ID: "c2"}}, nil)
	mockConnections.EXPECT().LastGeneratedAt().Return(&generatedAt)

	handler := NewConnectionsHandler(mockConnections)
	req := httptest.NewRequest(http.MethodPost, "/api/connections/regenerate", nil)
	rec := httptest.NewRecorder()

	handler.Regenerate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ConnectionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Connections) != 1 || resp.Connections[0].ID != "c2" {
		t.Errorf("unexpected connections: %+v", resp.Connections)
	}
}

func TestConnectionsCachedEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConnections := service_mocks.NewMockConnectionService(ctrl)

	mockConnections.EXPECT().Cached().Return(nil)

	handler := NewConnectionsHandler(mockConnections)
	req := httptest.NewRequest(http.MethodGet, "/api/connections/cached", nil)
	rec := httptest.NewRecorder()

	handler.Cached(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestConnectionsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockConnections := service_mocks.NewMockConnectionService(ctrl)

	generatedAt := time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)
	mockConnections.EXPECT().Cached().Return([]journal.Connection{{ID: "c3"}})
	mockConnections.EXPECT().LastGeneratedAt().Return(&generatedAt)

	handler := NewConnectionsHandler(mockConnections)
	req := httptest.NewRequest(http.MethodGet, "/api/connections/cached", nil)
	rec := httptest.NewRecorder()

	handler.Cached(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ConnectionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Connections) != 1 || resp.Connections[0].ID != "c3" {
		t.Errorf("unexpected connections: %+v", resp.Connections)
	}
}
