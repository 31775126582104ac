package continuity

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"
)

func testStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "continuity.json")
	return NewFileStore(path), path
}

func sampleRecord(id string, at time.Time) ContinuityRecord {
	return ContinuityRecord{
		ID:        id,
		CreatedAt: at,
		SourceApp: "journal",
		Entities: []EntityReference{
			{Type: EntityPerson, Identifier: "mom", DisplayName: "Mom"},
			{Type: EntityConcept, Identifier: "gratitude", DisplayName: "Gratitude"},
		},
		Payload: []byte(`{"sequence":12}`),
	}
}

func TestMissingFileReadsAsEmpty(t *testing.T) {
	store, _ := testStore(t)

	records, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(records))
	}
}

func TestRoundTrip(t *testing.T) {
	store, path := testStore(t)
	at := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

	saved := []ContinuityRecord{
		sampleRecord("entry-1", at),
		{
			// Zero-length entity list and empty payload must survive.
			ID:        "entry-2",
			CreatedAt: at.Add(time.Hour),
			SourceApp: "journal",
			Entities:  []EntityReference{},
		},
	}
	if err := store.SaveAll(saved); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	reopened := NewFileStore(path)
	loaded, err := reopened.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !reflect.DeepEqual(saved, loaded) {
		t.Fatalf("round-trip mismatch:\nsaved:  %+v\nloaded: %+v", saved, loaded)
	}
}

func TestSaveMergesByID(t *testing.T) {
	store, _ := testStore(t)
	at := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

	if err := store.Save(sampleRecord("entry-1", at)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(sampleRecord("entry-2", at)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Re-saving entry-1 replaces it in place.
	updated := sampleRecord("entry-1", at.Add(time.Hour))
	updated.Payload = []byte(`{"sequence":13}`)
	if err := store.Save(updated); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected replace in place, got %d records", len(records))
	}
	if records[0].ID != "entry-1" || string(records[0].Payload) != `{"sequence":13}` {
		t.Errorf("expected entry-1 replaced at its original position, got %+v", records[0])
	}

	// A new id appends.
	if err := store.Save(sampleRecord("entry-3", at)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	records, err = store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != 3 || records[2].ID != "entry-3" {
		t.Fatalf("expected append for new id, got %d records", len(records))
	}
}

func TestQueries(t *testing.T) {
	store, _ := testStore(t)
	at := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

	other := ContinuityRecord{
		ID:        "habit-1",
		CreatedAt: at.AddDate(0, 0, 5),
		SourceApp: "habits",
		Entities: []EntityReference{
			{Type: EntityRoutine, Identifier: "morning-walk", DisplayName: "Morning walk"},
		},
	}
	if err := store.SaveAll([]ContinuityRecord{sampleRecord("entry-1", at), other}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	byApp, err := store.FetchBySourceApp("journal")
	if err != nil {
		t.Fatalf("FetchBySourceApp failed: %v", err)
	}
	if len(byApp) != 1 || byApp[0].ID != "entry-1" {
		t.Errorf("FetchBySourceApp returned %+v", byApp)
	}

	byEntity, err := store.FetchByEntity(EntityPerson, "mom")
	if err != nil {
		t.Fatalf("FetchByEntity failed: %v", err)
	}
	if len(byEntity) != 1 || byEntity[0].ID != "entry-1" {
		t.Errorf("FetchByEntity returned %+v", byEntity)
	}

	byType, err := store.FetchByEntityType(EntityRoutine)
	if err != nil {
		t.Fatalf("FetchByEntityType failed: %v", err)
	}
	if len(byType) != 1 || byType[0].ID != "habit-1" {
		t.Errorf("FetchByEntityType returned %+v", byType)
	}

	byDate, err := store.FetchByDateRange(at.AddDate(0, 0, 1), at.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("FetchByDateRange failed: %v", err)
	}
	if len(byDate) != 1 || byDate[0].ID != "habit-1" {
		t.Errorf("FetchByDateRange returned %+v", byDate)
	}

	counts, err := store.RecordCounts()
	if err != nil {
		t.Fatalf("RecordCounts failed: %v", err)
	}
	if counts["journal"] != 1 || counts["habits"] != 1 {
		t.Errorf("RecordCounts returned %v", counts)
	}
}

func TestDelete(t *testing.T) {
	store, _ := testStore(t)
	at := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

	records := []ContinuityRecord{sampleRecord("entry-1", at), sampleRecord("entry-2", at)}
	records[1].SourceApp = "habits"
	if err := store.SaveAll(records); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	if err := store.Delete("entry-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete("never-existed"); err != nil {
		t.Fatalf("Delete of unknown id failed: %v", err)
	}
	remaining, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "entry-2" {
		t.Fatalf("expected only entry-2 left, got %+v", remaining)
	}

	if err := store.DeleteAll("habits"); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	remaining, err = store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty store, got %+v", remaining)
	}
}

func TestConcurrentSavesOfDifferentIDs(t *testing.T) {
	store, _ := testStore(t)
	at := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := sampleRecord(fmt.Sprintf("entry-%d", i), at)
			if err := store.Save(record); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	records, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(records) != writers {
		t.Fatalf("expected %d records, lost writes left %d", writers, len(records))
	}
}
