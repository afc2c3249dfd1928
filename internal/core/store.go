package core

import (
	"fmt"
	"sync"
	"time"
)

// DatasetIDPrefix is prepended to the issuance counter to form dataset ids.
const DatasetIDPrefix = "file_"

// Store maps dataset ids to canonical tables for the life of the process.
// Entries are never modified after Put, so readers share them freely.
type Store struct {
	mu      sync.RWMutex
	next    int
	entries map[string]*Dataset
	order   []string

	now func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Dataset),
		now:     time.Now,
	}
}

// Put stores t under the next id and returns it.
// Id assignment and insertion happen under one lock.
func (s *Store) Put(fileName string, t *Table) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("%s%d", DatasetIDPrefix, s.next)
	s.next++

	s.entries[id] = &Dataset{
		ID:         id,
		FileName:   fileName,
		UploadedAt: s.now(),
		Table:      t,
	}
	s.order = append(s.order, id)
	return id
}

// Get returns the dataset stored under id, or ErrNotFound.
func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ds, nil
}

// List returns dataset listings in issuance order.
func (s *Store) List() []DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]DatasetInfo, 0, len(s.order))
	for _, id := range s.order {
		ds := s.entries[id]
		infos = append(infos, DatasetInfo{
			ID:         ds.ID,
			FileName:   ds.FileName,
			Rows:       ds.Table.RowCount(),
			Columns:    len(ds.Table.Columns),
			UploadedAt: ds.UploadedAt,
		})
	}
	return infos
}

// Len returns the number of stored datasets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
