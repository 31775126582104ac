package continuity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks journalmind/internal/continuity Store

// Store persists and queries continuity records.
type Store interface {
	Save(record ContinuityRecord) error
	SaveAll(records []ContinuityRecord) error
	LoadAll() ([]ContinuityRecord, error)
	FetchBySourceApp(sourceApp string) ([]ContinuityRecord, error)
	FetchByEntity(entityType EntityType, identifier string) ([]ContinuityRecord, error)
	FetchByEntityType(entityType EntityType) ([]ContinuityRecord, error)
	FetchByDateRange(from, to time.Time) ([]ContinuityRecord, error)
	Delete(id string) error
	DeleteAll(sourceApp string) error
	RecordCounts() (map[string]int, error)
}

// FileStore keeps the whole record collection in one JSON file. Every
// mutation rewrites the file in full via a temp file and rename, so readers
// see either the old or the new collection, never a torn one. A missing file
// reads as an empty collection.
type FileStore struct {
	path string

	mu      sync.RWMutex
	records []ContinuityRecord
	loaded  bool
}

// NewFileStore creates a store over the given file path. The file is read
// lazily on first use.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save merges one record into the collection by id: an existing id is
// replaced in place, a new id appends.
func (s *FileStore) Save(record ContinuityRecord) error {
	return s.SaveAll([]ContinuityRecord{record})
}

// SaveAll merges a batch of records and persists once.
func (s *FileStore) SaveAll(records []ContinuityRecord) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	for _, record := range records {
		replaced := false
		for i := range s.records {
			if s.records[i].ID == record.ID {
				s.records[i] = record
				replaced = true
				break
			}
		}
		if !replaced {
			s.records = append(s.records, record)
		}
	}
	return s.persist()
}

// LoadAll returns every record.
func (s *FileStore) LoadAll() ([]ContinuityRecord, error) {
	return s.filter(func(ContinuityRecord) bool { return true })
}

// FetchBySourceApp returns the records tagged with sourceApp.
func (s *FileStore) FetchBySourceApp(sourceApp string) ([]ContinuityRecord, error) {
	return s.filter(func(r ContinuityRecord) bool { return r.SourceApp == sourceApp })
}

// FetchByEntity returns the records referencing the given entity.
func (s *FileStore) FetchByEntity(entityType EntityType, identifier string) ([]ContinuityRecord, error) {
	return s.filter(func(r ContinuityRecord) bool { return r.References(entityType, identifier) })
}

// FetchByEntityType returns the records referencing any entity of the type.
func (s *FileStore) FetchByEntityType(entityType EntityType) ([]ContinuityRecord, error) {
	return s.filter(func(r ContinuityRecord) bool {
		for _, e := range r.Entities {
			if e.Type == entityType {
				return true
			}
		}
		return false
	})
}

// FetchByDateRange returns records created in [from, to], inclusive.
func (s *FileStore) FetchByDateRange(from, to time.Time) ([]ContinuityRecord, error) {
	return s.filter(func(r ContinuityRecord) bool {
		return !r.CreatedAt.Before(from) && !r.CreatedAt.After(to)
	})
}

// Delete removes the record with the given id. Deleting an unknown id is a
// no-op.
func (s *FileStore) Delete(id string) error {
	return s.deleteWhere(func(r ContinuityRecord) bool { return r.ID == id })
}

// DeleteAll removes every record tagged with sourceApp.
func (s *FileStore) DeleteAll(sourceApp string) error {
	return s.deleteWhere(func(r ContinuityRecord) bool { return r.SourceApp == sourceApp })
}

// RecordCounts returns the number of records per source app.
func (s *FileStore) RecordCounts() (map[string]int, error) {
	records, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.SourceApp]++
	}
	return counts, nil
}

func (s *FileStore) filter(keep func(ContinuityRecord) bool) ([]ContinuityRecord, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []ContinuityRecord{}
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *FileStore) deleteWhere(drop func(ContinuityRecord) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	kept := s.records[:0]
	changed := false
	for _, r := range s.records {
		if drop(r) {
			changed = true
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	if !changed {
		return nil
	}
	return s.persist()
}

// ensureLoaded reads the file into memory once. Callers hold the write lock.
func (s *FileStore) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.records = []ContinuityRecord{}
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read continuity store: %w", err)
	}
	var records []ContinuityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse continuity store: %w", err)
	}
	s.records = records
	s.loaded = true
	return nil
}

// persist rewrites the whole collection atomically. Callers hold the write
// lock.
func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode continuity store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".continuity-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write continuity store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace continuity store: %w", err)
	}
	return nil
}
