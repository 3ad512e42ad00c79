// Package session persists the authenticated user across process restarts
// and exposes the login/logout transitions to the rest of the console. The
// session record has a single writer (the Manager) and many readers.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/imararent/imararent/internal/client/models"
)

// Store is the persistence capability behind the session manager. The
// console injects a sqlite-backed store; tests inject memory.
type Store interface {
	// Load returns the serialized session record, or (nil, nil) when no
	// record exists.
	Load(ctx context.Context) ([]byte, error)
	// Save overwrites the session record.
	Save(ctx context.Context, value []byte) error
	// Clear removes the session record. Clearing an absent record is not
	// an error.
	Clear(ctx context.Context) error
}

// Manager owns the process-wide session record.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	current *models.User
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Restore attempts to load a persisted user on process start. A well-formed
// record authenticates the session without fresh credential entry. Malformed
// or incomplete persisted data fails safe to "no session": the record is
// cleared and (nil, nil) is returned rather than an error.
func (m *Manager) Restore(ctx context.Context) (*models.User, error) {
	raw, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil || !user.WellFormed() {
		_ = m.store.Clear(ctx)
		return nil, nil
	}

	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()
	return &user, nil
}

// Establish persists user and makes it the active session. Called on
// successful login or post-verification login.
func (m *Manager) Establish(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Save(ctx, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
	return nil
}

// Terminate clears the active session and its persisted record. Idempotent:
// terminating with no active session is a no-op.
func (m *Manager) Terminate(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return nil
}

// Current returns the active user, or nil when unauthenticated.
func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Authenticated reports whether a session user exists.
func (m *Manager) Authenticated() bool {
	return m.Current() != nil
}

// MemoryStore is an in-process Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu    sync.Mutex
	value []byte
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return nil, nil
	}
	return append([]byte(nil), s.value...), nil
}

func (s *MemoryStore) Save(_ context.Context, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)
