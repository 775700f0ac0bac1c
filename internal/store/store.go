package store

import (
	"context"
	"errors"
)

// Error taxonomy shared by every backend. Backends wrap their native errors
// with one of these so handlers can map them with errors.Is.
var (
	ErrNotFound    = errors.New("secret not found")
	ErrTransport   = errors.New("secret store unavailable")
	ErrInvalidName = errors.New("invalid secret name")
)

// Secret is a named value read from the backend. It lives for one request only.
type Secret struct {
	Name  string
	Value string
}

// SecretStore is the capability the gateway is built on
type SecretStore interface {
	GetSecret(ctx context.Context, name string) (Secret, error)
	SetSecret(ctx context.Context, name, value string) error
}
