// Package vectorstore indexes entry document vectors for similar-entry
// lookup. One point per journal entry, keyed by the entry id.
package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks journalmind/internal/vectorstore VectorStore

import "context"

// EntryPoint is one indexed entry vector with its display metadata.
type EntryPoint struct {
	// EntryID doubles as the point id.
	EntryID string
	Vec     []float32
	// Kind is the entry's type tag.
	Kind string
	// Sequence is the human-facing entry number.
	Sequence int
	// CreatedAt is the entry creation time as a unix timestamp.
	CreatedAt int64
	// Preview is a short excerpt for display in results.
	Preview string
}

// SearchResult is one similar entry found by vector search.
type SearchResult struct {
	EntryID   string
	Score     float32
	Kind      string
	Sequence  int
	CreatedAt int64
	Preview   string
}

// SearchFilter narrows a similarity search. Zero values mean no filter.
type SearchFilter struct {
	// Kind restricts results to one entry kind.
	Kind string
	// CreatedAfter restricts results to entries at or after this unix
	// timestamp.
	CreatedAfter int64
}

// VectorStore defines the interface for entry vector index operations.
type VectorStore interface {
	// EnsureCollection creates the collection when missing and validates
	// the vector size when present.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// Upsert inserts or updates entry points in the collection.
	Upsert(ctx context.Context, collection string, points []EntryPoint) error

	// Search returns the k entries most similar to the query vector.
	Search(ctx context.Context, collection string, query []float32, k int, filter SearchFilter) ([]SearchResult, error)

	// Delete removes entries from the index by entry id.
	Delete(ctx context.Context, collection string, entryIDs []string) error
}
