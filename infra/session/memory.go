package session

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwhwang/atmbank/pkg/session"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is an in-memory session store with the same overwrite-and-expire
// semantics as the Redis adapter. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates a MemoryStore with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
	}
}

var _ session.Store = (*MemoryStore)(nil)

// SetSession implements session.Store.
func (s *MemoryStore) SetSession(_ context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = memoryEntry{token: token, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

// ValidateUserSession implements session.Store.
func (s *MemoryStore) ValidateUserSession(_ context.Context, userID int64, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[userID]
	if !ok {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, userID)
		return false, nil
	}
	if token == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(entry.token), []byte(token)) == 1, nil
}

// ExtendSession implements session.Store.
func (s *MemoryStore) ExtendSession(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[userID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	s.entries[userID] = entry
	return nil
}
