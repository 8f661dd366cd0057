package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	defaultKeyringService = "apidogctl"
	defaultKeyringUser    = "default"
)

// KeyringStore keeps credentials in the OS keyring.
type KeyringStore struct {
	service string
	user    string
}

// NewKeyringStore creates a keyring store under the tool's default
// service name.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{
		service: defaultKeyringService,
		user:    defaultKeyringUser,
	}
}

// Save stores the credentials in the OS keyring.
func (k *KeyringStore) Save(_ context.Context, creds *Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := keyring.Set(k.service, k.user, string(data)); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Load retrieves the credentials from the OS keyring.
func (k *KeyringStore) Load(_ context.Context) (*Credentials, error) {
	data, err := keyring.Get(k.service, k.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read credentials from keyring: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return &creds, nil
}

// Delete removes the credentials from the OS keyring.
func (k *KeyringStore) Delete(_ context.Context) error {
	if err := keyring.Delete(k.service, k.user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}
