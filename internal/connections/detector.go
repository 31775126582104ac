// Package connections finds meaningful connections between journal entries.
// Two backends implement the same capability: a local detector combining
// keyword heuristics with embedding similarity, and a remote detector that
// delegates to a language model. Callers pick a backend and consume the same
// Connection result type.
package connections

import (
	"context"

	"journalmind/internal/journal"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_detector.go -package=mocks journalmind/internal/connections Detector

// Detector finds pairwise connections among a set of journal entries.
// Fewer than 2 entries always yields an empty list.
type Detector interface {
	Detect(ctx context.Context, entries []journal.Entry) ([]journal.Connection, error)
}
