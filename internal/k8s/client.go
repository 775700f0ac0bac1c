package k8s

import (
	"context"
	"fmt"
	"time"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Adding the following variables, so that the code can be tested
var (
	inClusterConfig = rest.InClusterConfig
	loadKubeconfig  = loadKubeconfigFile
	newForConfig    = kubernetes.NewForConfig
)

// loadKubeconfigFile follows kubectl's rules: explicitPath when set, else the
// KUBECONFIG path list, else HOME/.kube/config.
func loadKubeconfigFile(explicitPath string) (*rest.Config, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = explicitPath
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
}

// Client stores gateway secrets as Secret objects inside a single namespace
type Client struct {
	ClientSet kubernetes.Interface
	Namespace string
}

// NewClient creates a new Kubernetes client. It first tries the in-cluster config
// and falls back to kubeconfig, or the standard kubeconfig lookup when it is empty.
func NewClient(kubeconfig, namespace string) (*Client, error) {
	config, err := inClusterConfig()
	if err != nil {
		config, err = loadKubeconfig(kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
	}

	return NewClientWithConfig(config, namespace)
}

// NewClientWithConfig Function to use injected config for testing
func NewClientWithConfig(config *rest.Config, namespace string) (*Client, error) {
	clientset, err := newForConfig(config)
	if err != nil {
		return nil, err
	}
	if namespace == "" {
		namespace = v1.NamespaceDefault
	}
	return &Client{ClientSet: clientset, Namespace: namespace}, nil
}

// EnsureNamespace creates the client's namespace when missing and waits for it to become Active
func (c *Client) EnsureNamespace(ctx context.Context) error {
	ns := &v1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: c.Namespace,
		},
	}

	_, err := c.ClientSet.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if err != nil {
		// If already exists, treat as success
		if apierrors.IsAlreadyExists(err) {
			return nil
		}
		return fmt.Errorf("failed to create namespace %q: %w", c.Namespace, err)
	}

	timeout := 10 * time.Second
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		got, err := c.ClientSet.CoreV1().Namespaces().Get(ctx, c.Namespace, metav1.GetOptions{})
		if err == nil && (got.Status.Phase == v1.NamespaceActive || got.Status.Phase == "") {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}

	return fmt.Errorf("namespace %q did not become Active within %s", c.Namespace, timeout)
}
