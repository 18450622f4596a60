package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory EntityStore for tests and local development.
// It mirrors the DynamoDB semantics the repositories rely on: atomic
// single-row puts, sort-key-ordered prefix queries, and no-op deletes of
// absent rows.
type MemoryStore struct {
	mu    sync.RWMutex
	table TableSpec
	rows  map[string]Record // composite key -> record copy
}

// NewMemoryStore creates an empty in-memory store for the given table spec.
func NewMemoryStore(table TableSpec) *MemoryStore {
	return &MemoryStore{table: table, rows: make(map[string]Record)}
}

func (s *MemoryStore) compositeKey(partition, sort string) string {
	return partition + "\x00" + sort
}

// Put upserts a record keyed by its partition and sort attributes.
func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.compositeKey(rec[s.table.PartitionKey], rec[s.table.SortKey])
	s.rows[key] = copyRecord(rec)
	return nil
}

// Get returns the record at (partition, sort), reporting absence via ok.
func (s *MemoryStore) Get(_ context.Context, partition, sort string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[s.compositeKey(partition, sort)]
	if !ok {
		return nil, false, nil
	}
	return copyRecord(rec), true, nil
}

// Query returns the partition's records whose sort key begins with sortPrefix,
// in sort-key order.
func (s *MemoryStore) Query(_ context.Context, partition, sortPrefix string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []Record
	for _, rec := range s.rows {
		if rec[s.table.PartitionKey] != partition {
			continue
		}
		if !strings.HasPrefix(rec[s.table.SortKey], sortPrefix) {
			continue
		}
		records = append(records, copyRecord(rec))
	}
	sortKey := s.table.SortKey
	sort.Slice(records, func(i, j int) bool {
		return records[i][sortKey] < records[j][sortKey]
	})
	return records, nil
}

// QueryIndex returns the records whose attribute key equals value. Index
// names are not checked; the attribute is treated as the index key.
func (s *MemoryStore) QueryIndex(_ context.Context, _ string, key, value string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []Record
	for _, rec := range s.rows {
		if rec[key] == value {
			records = append(records, copyRecord(rec))
		}
	}
	sortKey := s.table.SortKey
	sort.Slice(records, func(i, j int) bool {
		return records[i][sortKey] < records[j][sortKey]
	})
	return records, nil
}

// Delete removes the record at (partition, sort); absent rows are a no-op.
func (s *MemoryStore) Delete(_ context.Context, partition, sort string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, s.compositeKey(partition, sort))
	return nil
}

// Len reports the number of stored rows.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
