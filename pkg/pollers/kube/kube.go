// Package kube provides the "kube" poller feeding the modeline's Kubernetes
// segment. It queries the cluster of the current (or configured) kubeconfig
// context via client-go and reduces it to the pod/node counts a one-line
// status display needs.
package kube

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// DefaultInterval is the polling rate when none is configured.
const DefaultInterval = 30 * time.Second

// Config holds the configuration for the kube poller.
type Config struct {
	// Interval is the polling interval. Non-positive uses DefaultInterval.
	Interval time.Duration

	// Kubeconfig is the path to a kubeconfig file. If empty, the default
	// loading rules apply (KUBECONFIG env, ~/.kube/config, in-cluster).
	Kubeconfig string

	// Context selects a kubeconfig context. Empty means current context.
	Context string

	// Namespace restricts pod counting to one namespace. Empty means all.
	Namespace string
}

// Status is the snapshot returned by Poll and read by the "kube" segment.
type Status struct {
	Context     string    `json:"context"`
	Connected   bool      `json:"connected"`
	Error       string    `json:"error,omitempty"`
	TotalNodes  int       `json:"total_nodes"`
	ReadyNodes  int       `json:"ready_nodes"`
	TotalPods   int       `json:"total_pods"`
	RunningPods int       `json:"running_pods"`
	PendingPods int       `json:"pending_pods"`
	FailedPods  int       `json:"failed_pods"`
	Timestamp   time.Time `json:"timestamp"`
}

// Client abstracts the Kubernetes API calls for testability.
type Client interface {
	CurrentContext() string
	ListNodes(ctx context.Context) ([]corev1.Node, error)
	ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error)
}

// realClient wraps a kubernetes.Clientset to implement Client.
type realClient struct {
	cs      *kubernetes.Clientset
	context string
}

func (r *realClient) CurrentContext() string { return r.context }

func (r *realClient) ListNodes(ctx context.Context) ([]corev1.Node, error) {
	list, err := r.cs.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (r *realClient) ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error) {
	list, err := r.cs.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// clientFactory creates Client instances; a function type so tests can
// inject mocks.
type clientFactory func(cfg Config) (Client, error)

// defaultClientFactory builds a real Client from kubeconfig loading rules.
func defaultClientFactory(cfg Config) (Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if cfg.Kubeconfig != "" {
		rules.ExplicitPath = cfg.Kubeconfig
	}
	overrides := &clientcmd.ConfigOverrides{}
	if cfg.Context != "" {
		overrides.CurrentContext = cfg.Context
	}
	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)

	name := cfg.Context
	if name == "" {
		if raw, err := loader.RawConfig(); err == nil {
			name = raw.CurrentContext
		}
	}

	restCfg, err := loader.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("build client config: %w", err)
	}
	cs, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}
	return &realClient{cs: cs, context: name}, nil
}

// Poller implements the pkg/pollers.Poller interface for Kubernetes.
type Poller struct {
	cfg     Config
	factory clientFactory

	mu      sync.RWMutex
	healthy bool
}

// New creates a Poller with the given configuration.
func New(cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Poller{
		cfg:     cfg,
		factory: defaultClientFactory,
		healthy: true,
	}
}

// newWithFactory creates a Poller with a custom client factory (for tests).
func newWithFactory(cfg Config, factory clientFactory) *Poller {
	p := New(cfg)
	p.factory = factory
	return p
}

// Name returns the poller identifier.
func (p *Poller) Name() string { return "kube" }

// Interval returns the configured polling interval.
func (p *Poller) Interval() time.Duration { return p.cfg.Interval }

// Healthy returns true if the last poll reached the cluster.
func (p *Poller) Healthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.healthy
}

func (p *Poller) setHealthy(h bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.healthy = h
}

// Poll gathers cluster status. Connection failures are reported inside the
// Status (so the segment can show a disconnected marker), not as a Go
// error; only a cancelled context aborts.
func (p *Poller) Poll(ctx context.Context) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	status := Status{Context: p.cfg.Context, Timestamp: time.Now()}

	client, err := p.factory(p.cfg)
	if err != nil {
		status.Error = err.Error()
		p.setHealthy(false)
		return status, nil
	}
	if name := client.CurrentContext(); name != "" {
		status.Context = name
	}

	nodes, err := client.ListNodes(ctx)
	if err != nil {
		status.Error = fmt.Sprintf("list nodes: %v", err)
		p.setHealthy(false)
		return status, nil
	}

	// Listing nodes proves connectivity.
	status.Connected = true
	status.TotalNodes = len(nodes)
	for i := range nodes {
		if isNodeReady(&nodes[i]) {
			status.ReadyNodes++
		}
	}

	pods, err := client.ListPods(ctx, p.cfg.Namespace)
	if err == nil {
		status.TotalPods = len(pods)
		for i := range pods {
			switch pods[i].Status.Phase {
			case corev1.PodRunning:
				status.RunningPods++
			case corev1.PodPending:
				status.PendingPods++
			case corev1.PodFailed:
				status.FailedPods++
			}
		}
	}

	p.setHealthy(true)
	return status, nil
}

// DecodeSnapshot restores a persisted Status value.
func (p *Poller) DecodeSnapshot(data []byte) (interface{}, error) {
	var s Status
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// isNodeReady checks whether a node has a Ready condition set to True.
func isNodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
