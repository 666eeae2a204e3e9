// Package memory provides in-memory storage implementations. Entries are
// stored as JSON so callers never share mutable state with the store.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/process"
)

// processEntry holds a deep copy of a process snapshot.
type processEntry struct {
	data []byte
	seq  int
}

// ProcessStore is an in-memory implementation of process.Store.
type ProcessStore struct {
	processes map[string]*processEntry
	nextSeq   int
	mu        sync.RWMutex
}

// NewProcessStore creates a new in-memory process store.
func NewProcessStore() *ProcessStore {
	return &ProcessStore{
		processes: make(map[string]*processEntry),
	}
}

// Save persists a new process snapshot.
func (s *ProcessStore) Save(ctx context.Context, snap process.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.ID == "" {
		return process.ErrInvalidProcessID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.processes[snap.ID]; exists {
		return process.ErrProcessExists
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.processes[snap.ID] = &processEntry{data: data, seq: s.nextSeq}
	s.nextSeq++
	return nil
}

// Get retrieves a snapshot by process id.
func (s *ProcessStore) Get(ctx context.Context, id string) (process.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return process.Snapshot{}, err
	}
	if id == "" {
		return process.Snapshot{}, process.ErrInvalidProcessID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.processes[id]
	if !ok {
		return process.Snapshot{}, process.ErrProcessNotFound
	}

	var snap process.Snapshot
	if err := json.Unmarshal(entry.data, &snap); err != nil {
		return process.Snapshot{}, err
	}
	return snap, nil
}

// Update replaces an existing snapshot.
func (s *ProcessStore) Update(ctx context.Context, snap process.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.ID == "" {
		return process.ErrInvalidProcessID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.processes[snap.ID]
	if !exists {
		return process.ErrProcessNotFound
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.processes[snap.ID] = &processEntry{data: data, seq: entry.seq}
	return nil
}

// Delete removes a snapshot by process id.
func (s *ProcessStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return process.ErrInvalidProcessID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.processes[id]; !exists {
		return process.ErrProcessNotFound
	}

	delete(s.processes, id)
	return nil
}

// List returns snapshots matching the filter, ordered by insertion.
func (s *ProcessStore) List(ctx context.Context, filter process.ListFilter) ([]process.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type ordered struct {
		snap process.Snapshot
		seq  int
	}
	var matched []ordered

	for _, entry := range s.processes {
		var snap process.Snapshot
		if err := json.Unmarshal(entry.data, &snap); err != nil {
			continue
		}
		if !filter.Matches(snap) {
			continue
		}
		matched = append(matched, ordered{snap: snap, seq: entry.seq})
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].seq < matched[j].seq
	})

	result := make([]process.Snapshot, 0, len(matched))
	for _, m := range matched {
		result = append(result, m.snap)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []process.Snapshot{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Clear removes all snapshots from the store.
func (s *ProcessStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processes = make(map[string]*processEntry)
}

// Len returns the number of stored snapshots.
func (s *ProcessStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}

// Ensure ProcessStore implements process.Store
var _ process.Store = (*ProcessStore)(nil)
