package otp

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryStore is the single-process Store used when no Redis URL is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, challengeID string, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.entries[challengeID] = memoryEntry{rec: rec, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, challengeID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[challengeID]
	if !ok {
		return nil, nil
	}
	delete(s.entries, challengeID)
	if s.now().After(e.expiresAt) {
		return nil, nil
	}
	return &e.rec, nil
}
