package kube

import (
	"context"
	"errors"
	"testing"
	"time"

	corev1 "k8s.io/api/core/v1"
)

// kuMock is a scriptable Client.
type kuMock struct {
	context  string
	nodes    []corev1.Node
	pods     []corev1.Pod
	nodesErr error
	podsErr  error
}

func (m *kuMock) CurrentContext() string { return m.context }

func (m *kuMock) ListNodes(ctx context.Context) ([]corev1.Node, error) {
	return m.nodes, m.nodesErr
}

func (m *kuMock) ListPods(ctx context.Context, namespace string) ([]corev1.Pod, error) {
	return m.pods, m.podsErr
}

func kuNode(ready bool) corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return corev1.Node{
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: status},
			},
		},
	}
}

func kuPod(phase corev1.PodPhase) corev1.Pod {
	return corev1.Pod{Status: corev1.PodStatus{Phase: phase}}
}

func kuPoll(t *testing.T, p *Poller) Status {
	t.Helper()
	v, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	return v.(Status)
}

// --- Poll ---

func TestPollHealthyCluster(t *testing.T) {
	mock := &kuMock{
		context: "prod",
		nodes:   []corev1.Node{kuNode(true), kuNode(true), kuNode(false)},
		pods: []corev1.Pod{
			kuPod(corev1.PodRunning),
			kuPod(corev1.PodRunning),
			kuPod(corev1.PodPending),
			kuPod(corev1.PodFailed),
			kuPod(corev1.PodSucceeded),
		},
	}
	p := newWithFactory(Config{}, func(Config) (Client, error) { return mock, nil })

	s := kuPoll(t, p)
	if !s.Connected || s.Context != "prod" {
		t.Errorf("status = %+v", s)
	}
	if s.TotalNodes != 3 || s.ReadyNodes != 2 {
		t.Errorf("nodes = %d/%d, want 2/3 ready", s.ReadyNodes, s.TotalNodes)
	}
	if s.TotalPods != 5 || s.RunningPods != 2 || s.PendingPods != 1 || s.FailedPods != 1 {
		t.Errorf("pods = %+v", s)
	}
	if !p.Healthy() {
		t.Error("poller unhealthy after good poll")
	}
}

func TestPollFactoryFailureIsSoft(t *testing.T) {
	p := newWithFactory(Config{Context: "dead"}, func(Config) (Client, error) {
		return nil, errors.New("no kubeconfig")
	})

	s := kuPoll(t, p)
	if s.Connected {
		t.Error("connected despite factory failure")
	}
	if s.Error == "" {
		t.Error("error not recorded in status")
	}
	if s.Context != "dead" {
		t.Errorf("Context = %q, want configured name", s.Context)
	}
	if p.Healthy() {
		t.Error("poller healthy after factory failure")
	}
}

func TestPollListNodesFailureIsSoft(t *testing.T) {
	mock := &kuMock{context: "prod", nodesErr: errors.New("connection refused")}
	p := newWithFactory(Config{}, func(Config) (Client, error) { return mock, nil })

	s := kuPoll(t, p)
	if s.Connected || s.Error == "" {
		t.Errorf("status = %+v", s)
	}
}

func TestPollPodListFailureKeepsNodeCounts(t *testing.T) {
	mock := &kuMock{
		context: "prod",
		nodes:   []corev1.Node{kuNode(true)},
		podsErr: errors.New("forbidden"),
	}
	p := newWithFactory(Config{}, func(Config) (Client, error) { return mock, nil })

	s := kuPoll(t, p)
	if !s.Connected || s.TotalNodes != 1 {
		t.Errorf("status = %+v", s)
	}
	if s.TotalPods != 0 {
		t.Errorf("TotalPods = %d, want 0", s.TotalPods)
	}
}

func TestPollCancelledContext(t *testing.T) {
	p := newWithFactory(Config{}, func(Config) (Client, error) { return &kuMock{}, nil })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Poll(ctx); err == nil {
		t.Error("cancelled context not reported")
	}
}

// --- isNodeReady ---

func TestIsNodeReady(t *testing.T) {
	ready := kuNode(true)
	if !isNodeReady(&ready) {
		t.Error("ready node reported not ready")
	}
	notReady := kuNode(false)
	if isNodeReady(&notReady) {
		t.Error("unready node reported ready")
	}
	bare := corev1.Node{}
	if isNodeReady(&bare) {
		t.Error("node without conditions reported ready")
	}
}

// --- Interface plumbing ---

func TestPollerIdentity(t *testing.T) {
	p := New(Config{})
	if p.Name() != "kube" {
		t.Errorf("Name = %q", p.Name())
	}
	if p.Interval() != DefaultInterval {
		t.Errorf("default Interval = %v", p.Interval())
	}
	if got := New(Config{Interval: 5 * time.Second}).Interval(); got != 5*time.Second {
		t.Errorf("configured Interval = %v", got)
	}
}

func TestDecodeSnapshot(t *testing.T) {
	p := New(Config{})
	v, err := p.DecodeSnapshot([]byte(`{"context":"prod","connected":true,"total_pods":9}`))
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	s := v.(Status)
	if s.Context != "prod" || !s.Connected || s.TotalPods != 9 {
		t.Errorf("decoded = %+v", s)
	}
}
