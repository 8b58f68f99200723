// Package store holds the credential stores that need no external service:
// an in-process map for the web client and a YAML file for the CLI.
package store

import (
	"context"
	"sync"

	"github.com/foodcritique/critique-web/internal/core/ports"
)

// MemoryStore keeps credentials in process memory. They are lost on restart,
// which leaves every visitor logged out.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]ports.Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]ports.Credentials)}
}

func (m *MemoryStore) Load(_ context.Context, visitorID string) (ports.Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[visitorID], nil
}

func (m *MemoryStore) Save(_ context.Context, visitorID string, c ports.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[visitorID] = c
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, visitorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, visitorID)
	return nil
}
