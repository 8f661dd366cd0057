// Package credentials stores the Apidog project ID and API token
// outside the repository, so they never have to live in a committed
// config file. The OS keyring is preferred, with an XDG config file
// as fallback for headless environments.
package credentials

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Load when no credentials are stored.
var ErrNotFound = errors.New("no stored credentials")

// Credentials is the pair the Apidog Cloud API authenticates with.
type Credentials struct {
	ProjectID string    `json:"project_id"`
	Token     string    `json:"token"`
	SavedAt   time.Time `json:"saved_at,omitempty"`
}

// Store persists one set of credentials.
type Store interface {
	// Save stores the credentials, replacing any previous set.
	Save(ctx context.Context, creds *Credentials) error
	// Load retrieves the stored credentials, or ErrNotFound.
	Load(ctx context.Context) (*Credentials, error)
	// Delete removes the stored credentials. Deleting when nothing
	// is stored is not an error.
	Delete(ctx context.Context) error
}

// MultiStore layers several stores: saves go to all of them, loads
// return the first hit, deletes sweep every layer.
type MultiStore struct {
	stores []Store
}

// NewMultiStore creates a layered store. Order matters: earlier
// stores are consulted first on Load.
func NewMultiStore(stores ...Store) *MultiStore {
	return &MultiStore{stores: stores}
}

// Save stores the credentials in every layer that will take them.
// It fails only when no layer succeeded.
func (m *MultiStore) Save(ctx context.Context, creds *Credentials) error {
	var lastErr error
	saved := false

	for _, s := range m.stores {
		if err := s.Save(ctx, creds); err != nil {
			lastErr = err
		} else {
			saved = true
		}
	}

	if !saved && lastErr != nil {
		return lastErr
	}
	return nil
}

// Load returns the credentials from the first layer that has them.
func (m *MultiStore) Load(ctx context.Context) (*Credentials, error) {
	for _, s := range m.stores {
		creds, err := s.Load(ctx)
		if err == nil && creds != nil {
			return creds, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the credentials from every layer.
func (m *MultiStore) Delete(ctx context.Context) error {
	var lastErr error
	for _, s := range m.stores {
		if err := s.Delete(ctx); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// DefaultStore is the keyring-first, file-fallback layering the CLI
// uses when nothing else is configured.
func DefaultStore() Store {
	return NewMultiStore(NewKeyringStore(), NewFileStore(""))
}
