package watch

import "sync"

// Store holds the ingested records per source plus a per-source loaded
// flag. Each source has exactly one writer (its ingestion pipeline), which
// replaces the slice wholesale; searches only read. Pipelines run as
// goroutines, so the partitions share one RWMutex.
type Store struct {
	mu      sync.RWMutex
	records map[Source][]Record
	loaded  map[Source]bool
}

func NewStore() *Store {
	return &Store{
		records: map[Source][]Record{},
		loaded:  map[Source]bool{},
	}
}

// SetRecords replaces the records held for a source and marks it loaded.
func (s *Store) SetRecords(src Source, recs []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[src] = recs
	s.loaded[src] = true
}

// Records returns a copy of the records held for a source, in document
// order.
func (s *Store) Records(src Source) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records[src]))
	copy(out, s.records[src])
	return out
}

// Loaded reports whether a source's ingestion has produced a result.
func (s *Store) Loaded(src Source) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded[src]
}

// Count returns the number of records held for one source.
func (s *Store) Count(src Source) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[src])
}

// Total returns the aggregate record count across all sources.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, recs := range s.records {
		n += len(recs)
	}
	return n
}

// All flattens the per-source sequences in aggregation order (ONU, OFAC,
// UE). A query issued while ingestion is still in flight sees whatever
// subset has been written so far.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, src := range Sources {
		n += len(s.records[src])
	}
	out := make([]Record, 0, n)
	for _, src := range Sources {
		out = append(out, s.records[src]...)
	}
	return out
}
