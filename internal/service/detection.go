package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_connection_service.go -package=mocks -mock_names=ConnectionService=MockConnectionService journalmind/internal/service ConnectionService

import (
	"context"
	"time"

	"journalmind/internal/connections"
	"journalmind/internal/contextutil"
	"journalmind/internal/journal"
	"journalmind/internal/storage"
)

// Backend names accepted by ConnectionService.Detect.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// ConnectionService runs connection detection over the stored journal.
type ConnectionService interface {
	// Detect loads active entries and runs the named backend over them.
	// An empty backend name means local.
	Detect(ctx context.Context, backend string) ([]journal.Connection, error)
	// Regenerate forces a fresh remote detection, bypassing the cache.
	Regenerate(ctx context.Context) ([]journal.Connection, error)
	// Cached returns the cached remote connections, or nil when none.
	Cached() []journal.Connection
	// LastGeneratedAt returns when the remote cache was last filled.
	LastGeneratedAt() *time.Time
}

type connectionService struct {
	entries storage.EntryStore
	local   connections.Detector
	remote  *connections.RemoteDetector
}

// NewConnectionService creates a new ConnectionService.
func NewConnectionService(entries storage.EntryStore, local connections.Detector, remote *connections.RemoteDetector) ConnectionService {
	return &connectionService{
		entries: entries,
		local:   local,
		remote:  remote,
	}
}

// Detect loads active entries and runs the selected backend.
func (s *connectionService) Detect(ctx context.Context, backend string) ([]journal.Connection, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var detector connections.Detector
	switch backend {
	case "", BackendLocal:
		detector = s.local
	case BackendRemote:
		detector = s.remote
	default:
		logger.WarnContext(ctx, "unknown detection backend requested", "backend", backend)
		return nil, &ValidationError{
			Field:   "backend",
			Message: "must be local or remote",
		}
	}

	entries, err := s.entries.ListActive(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load entries for detection", "error", err)
		return nil, WrapError(err, "failed to load entries")
	}

	conns, err := detector.Detect(ctx, entries)
	if err != nil {
		return nil, WrapError(err, "detection failed")
	}
	return conns, nil
}

// Regenerate forces a fresh remote detection.
func (s *connectionService) Regenerate(ctx context.Context) ([]journal.Connection, error) {
	logger := contextutil.LoggerFromContext(ctx)

	entries, err := s.entries.ListActive(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load entries for regeneration", "error", err)
		return nil, WrapError(err, "failed to load entries")
	}
	return s.remote.Regenerate(ctx, entries)
}

// Cached returns the cached remote connections.
func (s *connectionService) Cached() []journal.Connection {
	return s.remote.Cached()
}

// LastGeneratedAt returns when the remote cache was last filled.
func (s *connectionService) LastGeneratedAt() *time.Time {
	return s.remote.LastGeneratedAt()
}
