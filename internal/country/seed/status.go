package seed

import (
	"context"
	"io/fs"
	"sync"
)

// State is the lifecycle of the startup seed.
type State string

const (
	StateDisabled   State = "disabled"
	StateInProgress State = "in-progress"
	StateComplete   State = "complete"
	StateFailed     State = "failed"
)

// Status tracks the startup seed. It is created by the composition root and
// read by the health endpoint.
type Status struct {
	mu     sync.RWMutex
	state  State
	stored int
	err    string
}

// Snapshot is a point-in-time copy of a Status.
type Snapshot struct {
	State  State
	Stored int
	Error  string
}

// NewStatus starts in progress when seeding is enabled and disabled otherwise.
func NewStatus(enabled bool) *Status {
	if !enabled {
		return &Status{state: StateDisabled}
	}
	return &Status{state: StateInProgress}
}

func (s *Status) MarkComplete(stored int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateComplete
	s.stored = stored
	s.err = ""
}

func (s *Status) MarkFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFailed
	s.err = err.Error()
}

func (s *Status) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, Stored: s.stored, Error: s.err}
}

// Ready reports whether the service can serve: seeding is off or finished.
func (s Snapshot) Ready() bool {
	return s.State == StateDisabled || s.State == StateComplete
}

// Run loads name from fsys and records the outcome on status.
func (l *Loader) Run(ctx context.Context, fsys fs.FS, name string, status *Status) {
	stored, err := l.LoadFS(ctx, fsys, name)
	if err != nil {
		l.logger.ErrorContext(ctx, "data seeding failed", "source", name, "error", err)
		status.MarkFailed(err)
		return
	}
	l.logger.InfoContext(ctx, "data seeding completed", "source", name, "stored", stored)
	status.MarkComplete(stored)
}
