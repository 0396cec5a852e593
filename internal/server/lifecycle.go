package server

import (
	"sync"

	"go.uber.org/atomic"
)

// State is the externally observable state of the service.
type State string

const (
	// StateStarting covers the time between process start and the listener
	// being bound; connections are refused.
	StateStarting State = "starting"
	// StateReady means the listener is bound and /health answers 200.
	StateReady State = "ready"
)

// Lifecycle tracks the Starting -> Ready transition. There is no way back
// and no degraded state.
type Lifecycle struct {
	ready   atomic.Bool
	once    sync.Once
	readyCh chan struct{}
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{readyCh: make(chan struct{})}
}

func (l *Lifecycle) State() State {
	if l.ready.Load() {
		return StateReady
	}
	return StateStarting
}

// MarkReady moves the lifecycle to StateReady. Further calls are no-ops.
func (l *Lifecycle) MarkReady() {
	l.once.Do(func() {
		l.ready.Store(true)
		close(l.readyCh)
	})
}

// Ready returns a channel closed once the lifecycle is ready.
func (l *Lifecycle) Ready() <-chan struct{} {
	return l.readyCh
}
