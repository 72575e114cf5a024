package kb

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Snapshot is an immutable view of the whole knowledge base. Readers hold a
// snapshot for the duration of a query; a sync never mutates a published
// snapshot, it builds a complete replacement and swaps it in.
type Snapshot struct {
	Version   int64
	Variables []VariableRecord
	Tables    []LookupTable
	Documents []Document
}

// Store owns the published snapshot. Publication is a single atomic pointer
// swap, so a concurrent reader observes either the fully old or fully new
// knowledge base, never a half-built one.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Int64
	logger  *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	s := &Store{logger: logger}
	s.current.Store(&Snapshot{})
	return s
}

// Snapshot returns the currently published knowledge base.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Publish replaces the knowledge base wholesale with a new version.
func (s *Store) Publish(variables []VariableRecord, tables []LookupTable, documents []Document) *Snapshot {
	snap := &Snapshot{
		Version:   s.version.Add(1),
		Variables: variables,
		Tables:    tables,
		Documents: documents,
	}
	s.current.Store(snap)
	s.logger.Info("Published knowledge base snapshot",
		zap.Int64("version", snap.Version),
		zap.Int("variables", len(snap.Variables)),
		zap.Int("tables", len(snap.Tables)),
		zap.Int("documents", len(snap.Documents)))
	return snap
}

// Clear empties the document collection. Variables and lookup tables are
// only ever replaced by a sync, not cleared.
func (s *Store) Clear() *Snapshot {
	cur := s.current.Load()
	return s.Publish(cur.Variables, cur.Tables, nil)
}
