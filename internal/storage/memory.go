package storage

import (
	"context"
	"sync"

	"github.com/cardano2vn/group-signup/models"
)

// MemoryStore holds registrations in process memory. It is not
// selectable via STORE_BACKEND (nothing would survive a restart); tests
// across the repo use it in place of a live backend.
type MemoryStore struct {
	mu      sync.Mutex
	records []models.Registration

	// Optional injected failures for error-path tests.
	InitErr   error
	AppendErr error
	ListErr   error
}

func NewMemoryStore(seed ...models.Registration) *MemoryStore {
	return &MemoryStore{records: append([]models.Registration(nil), seed...)}
}

func (s *MemoryStore) Init(ctx context.Context) error {
	return s.InitErr
}

func (s *MemoryStore) Append(ctx context.Context, r models.Registration) error {
	if s.AppendErr != nil {
		return s.AppendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Registration, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Registration, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Len reports the number of stored registrations.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
