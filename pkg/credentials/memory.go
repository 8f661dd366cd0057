package credentials

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps credentials in process memory. Ephemeral; used in
// tests and as a scratch store.
type MemoryStore struct {
	mu    sync.RWMutex
	creds *Credentials
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores a copy of the credentials.
func (m *MemoryStore) Save(_ context.Context, creds *Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *creds
	m.creds = &copied
	return nil
}

// Load returns a copy of the stored credentials.
func (m *MemoryStore) Load(_ context.Context) (*Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.creds == nil {
		return nil, ErrNotFound
	}

	copied := *m.creds
	return &copied, nil
}

// Delete clears the store.
func (m *MemoryStore) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = nil
	return nil
}
