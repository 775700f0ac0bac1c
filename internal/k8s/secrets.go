package k8s

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"secretGateway/internal/store"

	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/client-go/util/retry"
)

const (
	// NameAnnotation keeps the caller-supplied name, object names are lower-cased
	NameAnnotation = "secret-gateway.io/name"
	// ValueKey is the data key holding the secret value
	ValueKey = "value"

	managedByLabel = "app.kubernetes.io/managed-by"
	managedByValue = "secret-gateway"
)

var _ store.SecretStore = (*Client)(nil)

// same alphabet Key Vault accepts
var validName = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// ObjectName maps a secret name onto its Secret object name.
// Names are case-insensitive, the same way Key Vault treats them, and are
// never rewritten otherwise so two names cannot share one object.
func ObjectName(name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("%w: %q may only contain letters, digits and dashes", store.ErrInvalidName, name)
	}
	n := strings.ToLower(name)
	if errs := validation.IsDNS1123Subdomain(n); len(errs) > 0 {
		return "", fmt.Errorf("%w: %q: %s", store.ErrInvalidName, name, strings.Join(errs, "; "))
	}
	return n, nil
}

// GetSecret reads the value stored under name
func (c *Client) GetSecret(ctx context.Context, name string) (store.Secret, error) {
	objName, err := ObjectName(name)
	if err != nil {
		return store.Secret{}, err
	}

	secret, err := c.ClientSet.CoreV1().Secrets(c.Namespace).Get(ctx, objName, metav1.GetOptions{})
	if err != nil {
		return store.Secret{}, translateError("get", name, err)
	}

	value, ok := secret.Data[ValueKey]
	if !ok {
		return store.Secret{}, fmt.Errorf("%w: %q has no %q key", store.ErrNotFound, name, ValueKey)
	}

	return store.Secret{Name: name, Value: string(value)}, nil
}

// SetSecret creates the secret or replaces its value when it already exists.
// A concurrent create or update by another writer is retried, last write wins.
func (c *Client) SetSecret(ctx context.Context, name, value string) error {
	objName, err := ObjectName(name)
	if err != nil {
		return err
	}

	secrets := c.ClientSet.CoreV1().Secrets(c.Namespace)
	var op string

	err = retry.RetryOnConflict(retry.DefaultRetry, func() error {
		op = "set"
		// Data rather than StringData, so reads see the value without a server-side merge
		data := map[string][]byte{ValueKey: []byte(value)}

		existing, err := secrets.Get(ctx, objName, metav1.GetOptions{})
		if apierrors.IsNotFound(err) {
			op = "create"
			secret := &v1.Secret{
				ObjectMeta: metav1.ObjectMeta{
					Name:        objName,
					Annotations: map[string]string{NameAnnotation: name},
					Labels:      map[string]string{managedByLabel: managedByValue},
				},
				Data: data,
				Type: v1.SecretTypeOpaque,
			}
			_, err = secrets.Create(ctx, secret, metav1.CreateOptions{})
			if apierrors.IsAlreadyExists(err) {
				// lost the race to another writer, go round again as an update
				return apierrors.NewConflict(v1.Resource("secrets"), objName, err)
			}
			return err
		}
		if err != nil {
			return err
		}

		op = "update"
		if existing.Annotations == nil {
			existing.Annotations = map[string]string{}
		}
		existing.Annotations[NameAnnotation] = name
		existing.Data = data

		_, err = secrets.Update(ctx, existing, metav1.UpdateOptions{})
		return err
	})
	if err != nil {
		return translateError(op, name, err)
	}
	return nil
}

func translateError(op, name string, err error) error {
	if apierrors.IsNotFound(err) {
		return fmt.Errorf("%s secret %q: %w", op, name, store.ErrNotFound)
	}
	if apierrors.IsInvalid(err) {
		return fmt.Errorf("%s secret %q: %w: %w", op, name, store.ErrInvalidName, err)
	}
	return fmt.Errorf("%s secret %q: %w: %w", op, name, store.ErrTransport, err)
}
