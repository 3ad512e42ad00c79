package codes

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/imararent/imararent/internal/common"
)

type memoryEntry struct {
	code     string
	issuedAt time.Time
	attempts int
}

// MemoryStore is a map-backed Store for development and tests.
type MemoryStore struct {
	mu          sync.Mutex
	entries     map[string]*memoryEntry
	ttl         time.Duration
	maxAttempts int

	now func() time.Time
}

func NewMemoryStore(ttl time.Duration, maxAttempts int) *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]*memoryEntry),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = &memoryEntry{code: code, issuedAt: s.now()}
	return nil
}

func (s *MemoryStore) Check(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return common.ErrCodeInvalid
	}

	if s.now().Sub(entry.issuedAt) > s.ttl {
		delete(s.entries, email)
		return common.ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) != 1 {
		entry.attempts++
		if entry.attempts >= s.maxAttempts {
			delete(s.entries, email)
			return common.ErrCodeExpired
		}
		return common.ErrCodeInvalid
	}

	delete(s.entries, email)
	return nil
}

func (s *MemoryStore) LastIssued(_ context.Context, email string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok || s.now().Sub(entry.issuedAt) > s.ttl {
		return time.Time{}, nil
	}
	return entry.issuedAt, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email)
	return nil
}
