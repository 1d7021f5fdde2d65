package engine

import (
	"context"
	"errors"
	"testing"

	"igcorpus/internal/logger"
)

func testSession(workers int) *Session {
	return NewSession(workers, logger.NewLogger("error"))
}

func TestNewSession(t *testing.T) {
	s := testSession(4)

	if s.ID() == "" {
		t.Error("Expected non-empty session id")
	}

	if s.Workers() != 4 {
		t.Errorf("Expected 4 workers, got %d", s.Workers())
	}
}

func TestNewSession_UniqueIDs(t *testing.T) {
	a := testSession(1)
	b := testSession(1)

	if a.ID() == b.ID() {
		t.Errorf("Expected unique session ids, both were %s", a.ID())
	}
}

func TestNewSession_ClampsWorkers(t *testing.T) {
	for _, workers := range []int{0, -1, -100} {
		s := testSession(workers)
		if s.Workers() != 1 {
			t.Errorf("NewSession(%d) workers = %d, want 1", workers, s.Workers())
		}
	}
}

func TestSession_Close_Idempotent(t *testing.T) {
	s := testSession(1)

	if err := s.Close(); err != nil {
		t.Fatalf("First Close failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Second Close failed: %v", err)
	}
}

func TestSession_OperationsFailAfterClose(t *testing.T) {
	s := testSession(2)

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, err := MapUnordered(context.Background(), s, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	if !errors.Is(err, ErrSessionClosed) {
		t.Errorf("MapUnordered after Close = %v, want ErrSessionClosed", err)
	}

	err = s.WriteTextParts(context.Background(), t.TempDir(), []string{"a"})
	if !errors.Is(err, ErrSessionClosed) {
		t.Errorf("WriteTextParts after Close = %v, want ErrSessionClosed", err)
	}
}
