// Package engine provides the local execution backend for the pipeline: an
// explicit session holding the worker budget, a bounded parallel map, and
// partitioned text output in the style of distributed engines.
package engine

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"igcorpus/internal/logger"
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("engine session is closed")

// Session is an explicit handle on the execution backend. It is created
// once at startup, handed to the components that schedule work, and closed
// on the unwinding path. Operations fail after Close.
type Session struct {
	id      string
	workers int
	log     *logger.Logger

	mu     sync.Mutex
	closed bool
}

// NewSession creates a session with the given worker budget. Budgets below
// one are clamped to one.
func NewSession(workers int, log *logger.Logger) *Session {
	if workers < 1 {
		workers = 1
	}

	return &Session{
		id:      uuid.NewString(),
		workers: workers,
		log:     log,
	}
}

// ID returns the unique id of this session, surfaced in logs and the run
// report.
func (s *Session) ID() string {
	return s.id
}

// Workers returns the worker budget.
func (s *Session) Workers() int {
	return s.workers
}

// Close tears the session down. Close is idempotent; operations started
// after the first Close fail with ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	s.log.Debug("engine session closed", "session_id", s.id)

	return nil
}

// isClosed reports whether Close has been called.
func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}
