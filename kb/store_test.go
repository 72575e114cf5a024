package kb

import (
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestStorePublishAndClear(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := NewStore(logger)

	initial := store.Snapshot()
	if initial.Version != 0 || len(initial.Documents) != 0 {
		t.Fatalf("initial snapshot = %+v", initial)
	}

	variables := []VariableRecord{{ID: 1, VariableName: "BRWLOAN"}}
	tables := []LookupTable{{TableID: "LOC"}}
	documents := []Document{{Name: "a.txt", Path: "SOP/a.txt", Content: "x"}}

	published := store.Publish(variables, tables, documents)
	if published.Version != 1 {
		t.Errorf("Version = %d, want 1", published.Version)
	}
	if store.Snapshot() != published {
		t.Error("Snapshot should return the published pointer")
	}

	// Clear drops documents but keeps the structured index, at a new version
	cleared := store.Clear()
	if cleared.Version != 2 {
		t.Errorf("Version = %d, want 2", cleared.Version)
	}
	if len(cleared.Documents) != 0 {
		t.Errorf("Documents = %d, want 0", len(cleared.Documents))
	}
	if len(cleared.Variables) != 1 || len(cleared.Tables) != 1 {
		t.Errorf("structured index lost on clear: %+v", cleared)
	}

	// The old snapshot is untouched
	if len(published.Documents) != 1 {
		t.Error("published snapshot mutated by Clear")
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	store := NewStore(logger)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap := store.Snapshot()
				// A snapshot is internally consistent: documents never
				// outlive the version they were published under.
				if snap.Version == 0 && len(snap.Documents) != 0 {
					t.Error("empty snapshot carries documents")
					return
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		store.Publish(nil, nil, []Document{{Name: "d.txt"}})
		store.Clear()
	}
	wg.Wait()
}
