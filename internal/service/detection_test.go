package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"journalmind/internal/connections"
	connections_mocks "journalmind/internal/connections/mocks"
	"journalmind/internal/journal"
	storage_mocks "journalmind/internal/storage/mocks"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Chat(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func serviceEntries() []journal.Entry {
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return []journal.Entry{
		{ID: "e1", Text: "Started a morning walk habit.", Sequence: 1, CreatedAt: base},
		{ID: "e2", Text: "The walks are clearing my head.", Sequence: 2, CreatedAt: base.AddDate(0, 0, 2)},
	}
}

func TestDetectUsesLocalBackendByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEntries := storage_mocks.NewMockEntryStore(ctrl)
	mockLocal := connections_mocks.NewMockDetector(ctrl)

	entries := serviceEntries()
	expected := []journal.Connection{{ID: "c1", Type: journal.ConnectionThematic}}
	mockEntries.EXPECT().ListActive(gomock.Any()).Return(entries, nil)
	mockLocal.EXPECT().Detect(gomock.Any(), entries).Return(expected, nil)

	svc := NewConnectionService(mockEntries, mockLocal, connections.NewRemoteDetector(&stubCompleter{reply: "[]"}))
	conns, err := svc.Detect(context.Background(), "")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(conns) != 1 || conns[0].ID != "c1" {
		t.Fatalf("unexpected connections: %+v", conns)
	}
}

func TestDetectRemoteBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEntries := storage_mocks.NewMockEntryStore(ctrl)
	mockLocal := connections_mocks.NewMockDetector(ctrl)

	completer := &stubCompleter{
		reply: `[{"source": 1, "target": 2, "type": "evolution", "description": "habit forming", "confidence": 0.8}]`,
	}
	mockEntries.EXPECT().ListActive(gomock.Any()).Return(serviceEntries(), nil)

	svc := NewConnectionService(mockEntries, mockLocal, connections.NewRemoteDetector(completer))
	conns, err := svc.Detect(context.Background(), BackendRemote)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(conns) != 1 || conns[0].Type != journal.ConnectionEvolution {
		t.Fatalf("unexpected connections: %+v", conns)
	}
	if svc.Cached() == nil {
		t.Error("expected remote result to be cached")
	}
	if svc.LastGeneratedAt() == nil {
		t.Error("expected generation timestamp after remote detection")
	}
}

func TestDetectUnknownBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEntries := storage_mocks.NewMockEntryStore(ctrl)
	mockLocal := connections_mocks.NewMockDetector(ctrl)

	svc := NewConnectionService(mockEntries, mockLocal, connections.NewRemoteDetector(&stubCompleter{}))
	_, err := svc.Detect(context.Background(), "psychic")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDetectStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEntries := storage_mocks.NewMockEntryStore(ctrl)
	mockLocal := connections_mocks.NewMockDetector(ctrl)

	storeErr := fmt.Errorf("disk on fire")
	mockEntries.EXPECT().ListActive(gomock.Any()).Return(nil, storeErr)

	svc := NewConnectionService(mockEntries, mockLocal, connections.NewRemoteDetector(&stubCompleter{}))
	_, err := svc.Detect(context.Background(), BackendLocal)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestRegenerateBypassesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEntries := storage_mocks.NewMockEntryStore(ctrl)
	mockLocal := connections_mocks.NewMockDetector(ctrl)

	completer := &stubCompleter{
		reply: `[{"source": 1, "target": 2, "type": "thematic", "description": "walks", "confidence": 0.5}]`,
	}
	mockEntries.EXPECT().ListActive(gomock.Any()).Return(serviceEntries(), nil).Times(2)

	svc := NewConnectionService(mockEntries, mockLocal, connections.NewRemoteDetector(completer))
	if _, err := svc.Detect(context.Background(), BackendRemote); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	first := svc.LastGeneratedAt()

	completer.reply = `[{"source": 2, "target": 1, "type": "temporal", "description": "later", "confidence": 0.6}]`
	conns, err := svc.Regenerate(context.Background())
	if err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if len(conns) != 1 || conns[0].Type != journal.ConnectionTemporal {
		t.Fatalf("expected regenerated connections, got %+v", conns)
	}
	if first != nil && svc.LastGeneratedAt() != nil && svc.LastGeneratedAt().Before(*first) {
		t.Error("generation timestamp moved backwards")
	}
}
