// Package keyvault backs the gateway with Azure Key Vault.
package keyvault

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"secretGateway/internal/store"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// SecretsAPI is the subset of *azsecrets.Client used here, so tests can fake the vault
type SecretsAPI interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
	SetSecret(ctx context.Context, name string, parameters azsecrets.SetSecretParameters, options *azsecrets.SetSecretOptions) (azsecrets.SetSecretResponse, error)
}

// swapped in tests
var (
	newCredential = func() (azcore.TokenCredential, error) {
		return azidentity.NewDefaultAzureCredential(nil)
	}
	newSecretsClient = func(vaultURI string, cred azcore.TokenCredential) (SecretsAPI, error) {
		return azsecrets.NewClient(vaultURI, cred, nil)
	}
)

type Client struct {
	API      SecretsAPI
	VaultURI string
}

var _ store.SecretStore = (*Client)(nil)

// NewClient resolves credentials through the default Azure credential chain
// (environment, workload identity, managed identity, Azure CLI) and binds to vaultURI.
func NewClient(vaultURI string) (*Client, error) {
	if vaultURI == "" {
		return nil, errors.New("key vault URI is required")
	}

	cred, err := newCredential()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve azure credential: %w", err)
	}

	api, err := newSecretsClient(vaultURI, cred)
	if err != nil {
		return nil, fmt.Errorf("failed to create key vault client: %w", err)
	}

	return &Client{API: api, VaultURI: vaultURI}, nil
}

// GetSecret returns the latest version of name
func (c *Client) GetSecret(ctx context.Context, name string) (store.Secret, error) {
	if name == "" {
		return store.Secret{}, fmt.Errorf("%w: empty name", store.ErrInvalidName)
	}

	resp, err := c.API.GetSecret(ctx, name, "", nil)
	if err != nil {
		return store.Secret{}, translateError("get", name, err)
	}
	if resp.Value == nil {
		return store.Secret{}, fmt.Errorf("get secret %q: %w: vault returned no value", name, store.ErrNotFound)
	}

	return store.Secret{Name: name, Value: *resp.Value}, nil
}

// SetSecret writes a new version of name
func (c *Client) SetSecret(ctx context.Context, name, value string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", store.ErrInvalidName)
	}

	_, err := c.API.SetSecret(ctx, name, azsecrets.SetSecretParameters{Value: &value}, nil)
	if err != nil {
		return translateError("set", name, err)
	}
	return nil
}

func translateError(op, name string, err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s secret %q: %w", op, name, store.ErrNotFound)
		case http.StatusBadRequest:
			return fmt.Errorf("%s secret %q: %w: %s", op, name, store.ErrInvalidName, respErr.ErrorCode)
		}
		return fmt.Errorf("%s secret %q: %w: status %d %s", op, name, store.ErrTransport, respErr.StatusCode, respErr.ErrorCode)
	}
	return fmt.Errorf("%s secret %q: %w: %w", op, name, store.ErrTransport, err)
}
