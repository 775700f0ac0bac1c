package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"secretGateway/internal/store"
)

// MockSecretStore implements store.SecretStore for tests.
// Names are case-insensitive, like Key Vault.
type MockSecretStore struct {
	mu sync.Mutex

	// call counters for assertions
	GetCalls int
	SetCalls int

	// forceable errors (set in tests)
	GetErr error
	SetErr error

	// Key - lower-cased secret name
	Secrets map[string]string
}

var _ store.SecretStore = (*MockSecretStore)(nil)

func NewMockSecretStore() *MockSecretStore {
	return &MockSecretStore{
		Secrets: make(map[string]string),
	}
}

// WithSecret seeds a value and returns the mock for chaining
func (m *MockSecretStore) WithSecret(name, value string) *MockSecretStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Secrets[strings.ToLower(name)] = value
	return m
}

// GetSecret returns the stored value, or store.ErrNotFound
func (m *MockSecretStore) GetSecret(_ context.Context, name string) (store.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	if m.GetErr != nil {
		return store.Secret{}, m.GetErr
	}

	value, ok := m.Secrets[strings.ToLower(name)]
	if !ok {
		return store.Secret{}, fmt.Errorf("get secret %q: %w", name, store.ErrNotFound)
	}
	return store.Secret{Name: name, Value: value}, nil
}

// SetSecret creates or replaces a value
func (m *MockSecretStore) SetSecret(_ context.Context, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", store.ErrInvalidName)
	}

	m.Secrets[strings.ToLower(name)] = value
	return nil
}

// Calls returns the get and set counters under the lock
func (m *MockSecretStore) Calls() (gets, sets int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GetCalls, m.SetCalls
}
