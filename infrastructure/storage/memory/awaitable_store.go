package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/awaitable"
)

// AwaitableStore is an in-memory implementation of awaitable.Store. Resolve
// is single shot: once an awaitable has been resolved, its id is unknown.
type AwaitableStore struct {
	byID      map[string][]byte
	byProcess map[string]string // process id -> awaitable id
	mu        sync.RWMutex
}

// NewAwaitableStore creates a new in-memory awaitable store.
func NewAwaitableStore() *AwaitableStore {
	return &AwaitableStore{
		byID:      make(map[string][]byte),
		byProcess: make(map[string]string),
	}
}

// Save persists a pending awaitable.
func (s *AwaitableStore) Save(ctx context.Context, aw *awaitable.Awaitable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if aw == nil || aw.ID == "" {
		return awaitable.ErrUnknownAwaitable
	}
	if !aw.Kind.Valid() {
		return awaitable.ErrUnsupportedKind
	}

	data, err := json.Marshal(aw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[aw.ID] = data
	if aw.ProcessID != "" {
		s.byProcess[aw.ProcessID] = aw.ID
	}
	return nil
}

// Get retrieves a pending awaitable by id.
func (s *AwaitableStore) Get(ctx context.Context, id string) (*awaitable.Awaitable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.decode(id)
}

// GetForProcess retrieves the pending awaitable for a process, if any.
func (s *AwaitableStore) GetForProcess(ctx context.Context, processID string) (*awaitable.Awaitable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byProcess[processID]
	if !ok {
		return nil, awaitable.ErrUnknownAwaitable
	}
	return s.decode(id)
}

// Resolve removes and returns the awaitable. A second resolve of the same
// id, or a resolve of an id that was never saved, fails with
// ErrUnknownAwaitable.
func (s *AwaitableStore) Resolve(ctx context.Context, id string) (*awaitable.Awaitable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	aw, err := s.decode(id)
	if err != nil {
		return nil, err
	}

	delete(s.byID, id)
	if aw.ProcessID != "" {
		delete(s.byProcess, aw.ProcessID)
	}
	return aw, nil
}

// DeleteForProcess discards any pending awaitable for a process. Deleting
// when nothing is pending is not an error.
func (s *AwaitableStore) DeleteForProcess(ctx context.Context, processID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byProcess[processID]
	if !ok {
		return nil
	}
	delete(s.byProcess, processID)
	delete(s.byID, id)
	return nil
}

// decode returns a copy of the stored awaitable (must hold lock).
func (s *AwaitableStore) decode(id string) (*awaitable.Awaitable, error) {
	data, ok := s.byID[id]
	if !ok {
		return nil, awaitable.ErrUnknownAwaitable
	}
	var aw awaitable.Awaitable
	if err := json.Unmarshal(data, &aw); err != nil {
		return nil, err
	}
	return &aw, nil
}

// Ensure AwaitableStore implements awaitable.Store
var _ awaitable.Store = (*AwaitableStore)(nil)
