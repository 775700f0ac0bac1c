package k8s

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/rest"
)

// Testing the NewClient function with various scenarios
func TestNewClient(t *testing.T) {
	// Backup original functions
	origInCluster := inClusterConfig
	origLoad := loadKubeconfig
	origNewForConfig := newForConfig
	defer func() {
		inClusterConfig = origInCluster
		loadKubeconfig = origLoad
		newForConfig = origNewForConfig
	}()

	mockConfig := &rest.Config{}

	tests := []struct {
		name            string
		namespace       string
		kubeconfig      string
		inClusterErr    error
		buildErr        error
		newForErr       error
		expectError     bool
		expectMessage   string
		expectNamespace string
		expectPath      string
	}{
		{
			name:            "in-cluster config works",
			namespace:       "vault",
			expectNamespace: "vault",
		},
		{
			name:          "in-cluster fails, fallback also fails",
			inClusterErr:  errors.New("no cluster"),
			buildErr:      errors.New("missing kubeconfig"),
			expectError:   true,
			expectMessage: "failed to load kubeconfig",
		},
		{
			name:            "in-cluster fails, explicit kubeconfig used",
			inClusterErr:    errors.New("no cluster"),
			kubeconfig:      "/etc/gateway/kubeconfig",
			expectNamespace: "default",
			expectPath:      "/etc/gateway/kubeconfig",
		},
		{
			name:          "clientset creation fails",
			newForErr:     errors.New("bad config"),
			expectError:   true,
			expectMessage: "bad config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			inClusterConfig = func() (*rest.Config, error) {
				return mockConfig, tt.inClusterErr
			}
			loadKubeconfig = func(path string) (*rest.Config, error) {
				gotPath = path
				if tt.buildErr != nil {
					return nil, tt.buildErr
				}
				return mockConfig, nil
			}
			newForConfig = func(_ *rest.Config) (*kubernetes.Clientset, error) {
				if tt.newForErr != nil {
					return nil, tt.newForErr
				}
				return nil, nil // no real client
			}

			client, err := NewClient(tt.kubeconfig, tt.namespace)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectMessage)
				assert.Nil(t, client)
				return
			}
			assert.NoError(t, err)
			require.NotNil(t, client)
			assert.Equal(t, tt.expectNamespace, client.Namespace)
			if tt.expectPath != "" {
				assert.Equal(t, tt.expectPath, gotPath)
			}
		})
	}
}

func TestEnsureNamespace(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing namespace", func(t *testing.T) {
		client := &Client{ClientSet: fake.NewClientset(), Namespace: "gateway"}

		require.NoError(t, client.EnsureNamespace(ctx))

		_, err := client.ClientSet.CoreV1().Namespaces().Get(ctx, "gateway", metav1.GetOptions{})
		assert.NoError(t, err)
	})

	t.Run("existing namespace is not an error", func(t *testing.T) {
		cs := fake.NewClientset(&v1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "gateway"}})
		client := &Client{ClientSet: cs, Namespace: "gateway"}

		assert.NoError(t, client.EnsureNamespace(ctx))
	})
}

func TestLoadKubeconfigFile_PathList(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("apiVersion: v1\nkind: Config\n"), 0o600))
	cluster := filepath.Join(dir, "cluster")
	require.NoError(t, os.WriteFile(cluster, []byte(`apiVersion: v1
kind: Config
clusters:
- name: dev
  cluster:
    server: https://dev.example:6443
users:
- name: dev
  user:
    token: abc
contexts:
- name: dev
  context:
    cluster: dev
    user: dev
current-context: dev
`), 0o600))

	t.Setenv("KUBECONFIG", empty+string(os.PathListSeparator)+cluster)

	config, err := loadKubeconfigFile("")
	require.NoError(t, err)
	assert.Equal(t, "https://dev.example:6443", config.Host)

	_, err = loadKubeconfigFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
