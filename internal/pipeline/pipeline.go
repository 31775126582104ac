// Package pipeline orchestrates the detection subsystem end to end: per-entry
// entity extraction fans out across a worker pool, connection detection runs
// over the whole set, and the results land in the continuity store and the
// entry vector index.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"journalmind/internal/connections"
	"journalmind/internal/continuity"
	"journalmind/internal/contextutil"
	"journalmind/internal/embedding"
	"journalmind/internal/extract"
	"journalmind/internal/journal"
	"journalmind/internal/lexical"
	"journalmind/internal/vectorstore"
)

const (
	// defaultWorkers bounds concurrent per-entry extraction.
	defaultWorkers = 4
	// sourceApp tags every record this pipeline emits.
	sourceApp = "journal"
	// previewLength truncates the text stored in the vector index payload.
	previewLength = 120
)

// Result is the outcome of one pipeline run.
type Result struct {
	// Entities maps entry id to its extraction result.
	Entities map[string]extract.Entities
	// Connections are the detected connections across the set.
	Connections []journal.Connection
}

// Pipeline runs extraction, detection, and persistence over journal entries.
type Pipeline struct {
	extractor *extract.Extractor
	detector  connections.Detector
	records   continuity.Store
	provider  embedding.Provider

	// vectors and collection are optional; nil disables vector indexing.
	vectors    vectorstore.VectorStore
	collection string

	workers int
}

// New creates a pipeline. records may be nil to skip persistence, and
// vectors may be nil to skip the entry vector index.
func New(extractor *extract.Extractor, detector connections.Detector, records continuity.Store, provider embedding.Provider, vectors vectorstore.VectorStore, collection string) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		detector:   detector,
		records:    records,
		provider:   provider,
		vectors:    vectors,
		collection: collection,
		workers:    defaultWorkers,
	}
}

// Run processes a set of entries: extraction per entry, detection over the
// set, one continuity record per entry. Deleted entries are skipped.
func (p *Pipeline) Run(ctx context.Context, entries []journal.Entry) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	active := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Deleted {
			active = append(active, e)
		}
	}

	result := Result{Entities: make(map[string]extract.Entities, len(active))}

	// Per-entry extraction is independent; fan out across a bounded pool.
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.workers)
	for _, entry := range active {
		wg.Add(1)
		sem <- struct{}{}
		go func(entry journal.Entry) {
			defer wg.Done()
			defer func() { <-sem }()
			entities := p.extractor.Extract(entry.Text, entry.Reflection, "")
			mu.Lock()
			result.Entities[entry.ID] = entities
			mu.Unlock()
		}(entry)
	}
	wg.Wait()

	conns, err := p.detector.Detect(ctx, active)
	if err != nil {
		return Result{}, fmt.Errorf("detection failed: %w", err)
	}
	result.Connections = conns

	if p.records != nil {
		records := make([]continuity.ContinuityRecord, 0, len(active))
		for _, entry := range active {
			record, err := buildRecord(entry, result.Entities[entry.ID])
			if err != nil {
				return Result{}, fmt.Errorf("failed to build record for entry %s: %w", entry.ID, err)
			}
			records = append(records, record)
		}
		if err := p.records.SaveAll(records); err != nil {
			return Result{}, fmt.Errorf("failed to save continuity records: %w", err)
		}
	}

	if err := p.indexVectors(ctx, active); err != nil {
		// Vector indexing is advisory; a degraded index must not fail the
		// run that produced the records.
		logger.WarnContext(ctx, "entry vector indexing failed", "error", err)
	}

	logger.InfoContext(ctx, "pipeline run completed",
		"entries", len(active),
		"connections", len(result.Connections),
	)
	return result, nil
}

// ProcessEntry re-derives one entry's record after a create or edit. The
// record id is stable per entry, so a re-save supersedes the old record.
func (p *Pipeline) ProcessEntry(ctx context.Context, entry journal.Entry) (extract.Entities, error) {
	logger := contextutil.LoggerFromContext(ctx)

	entities := p.extractor.Extract(entry.Text, entry.Reflection, "")
	if p.records != nil {
		record, err := buildRecord(entry, entities)
		if err != nil {
			return extract.Entities{}, fmt.Errorf("failed to build record: %w", err)
		}
		if err := p.records.Save(record); err != nil {
			return extract.Entities{}, fmt.Errorf("failed to save continuity record: %w", err)
		}
	}

	if err := p.indexVectors(ctx, []journal.Entry{entry}); err != nil {
		logger.WarnContext(ctx, "entry vector indexing failed", "entry_id", entry.ID, "error", err)
	}
	return entities, nil
}

// RemoveEntry drops an entry's derived data after a delete.
func (p *Pipeline) RemoveEntry(ctx context.Context, entryID string) error {
	if p.records != nil {
		if err := p.records.Delete(recordID(entryID)); err != nil {
			return fmt.Errorf("failed to delete continuity record: %w", err)
		}
	}
	if p.vectors != nil {
		if err := p.vectors.Delete(ctx, p.collection, []string{entryID}); err != nil {
			return fmt.Errorf("failed to remove entry vector: %w", err)
		}
	}
	return nil
}

func (p *Pipeline) indexVectors(ctx context.Context, entries []journal.Entry) error {
	if p.vectors == nil || p.provider == nil {
		return nil
	}

	points := make([]vectorstore.EntryPoint, 0, len(entries))
	for _, entry := range entries {
		vec, ok := embedding.DocumentVector(p.provider, lexical.PlainText(entry.Text))
		if !ok {
			continue
		}
		points = append(points, vectorstore.EntryPoint{
			EntryID:   entry.ID,
			Vec:       vec,
			Kind:      string(entry.Kind),
			Sequence:  entry.Sequence,
			CreatedAt: entry.CreatedAt.Unix(),
			Preview:   truncate(lexical.PlainText(entry.Text), previewLength),
		})
	}
	return p.vectors.Upsert(ctx, p.collection, points)
}

// recordPayload is the app-defined payload schema for journal records.
type recordPayload struct {
	EntryID     string            `json:"entry_id"`
	Sequence    int               `json:"sequence"`
	Kind        journal.EntryKind `json:"kind,omitempty"`
	KeyExcerpt  string            `json:"key_excerpt,omitempty"`
	Questions   []string          `json:"questions,omitempty"`
	Commitments []string          `json:"commitments,omitempty"`
}

func buildRecord(entry journal.Entry, entities extract.Entities) (continuity.ContinuityRecord, error) {
	refs := []continuity.EntityReference{}
	for _, person := range entities.People {
		refs = append(refs, continuity.EntityReference{
			Type:        continuity.EntityPerson,
			Identifier:  person.Identifier,
			DisplayName: person.Name,
		})
	}
	for _, concept := range entities.Concepts {
		refs = append(refs, continuity.EntityReference{
			Type:        continuity.EntityConcept,
			Identifier:  concept.Identifier,
			DisplayName: concept.Name,
		})
	}
	for _, place := range entities.Places {
		refs = append(refs, continuity.EntityReference{
			Type:        continuity.EntityPlace,
			Identifier:  place.Identifier,
			DisplayName: place.Name,
		})
	}

	payload, err := json.Marshal(recordPayload{
		EntryID:     entry.ID,
		Sequence:    entry.Sequence,
		Kind:        entry.Kind,
		KeyExcerpt:  entities.KeyExcerpt,
		Questions:   entities.Questions,
		Commitments: entities.Commitments,
	})
	if err != nil {
		return continuity.ContinuityRecord{}, err
	}

	return continuity.ContinuityRecord{
		ID:        recordID(entry.ID),
		CreatedAt: entry.CreatedAt,
		SourceApp: sourceApp,
		Entities:  refs,
		Payload:   payload,
	}, nil
}

// recordID derives the stable continuity record id for an entry.
func recordID(entryID string) string {
	return "entry-" + entryID
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
