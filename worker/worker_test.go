package worker

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func TestOwnerOrdering(t *testing.T) {
	for _, s := range []Scheduler{NewSingle(logrus.StandardLogger()), NewRegional(4, logrus.StandardLogger())} {
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		var (
			mu   sync.Mutex
			seen = make(map[uuid.UUID][]int)
			last *Handle
		)
		for i := 0; i < 300; i++ {
			id, n := ids[i%len(ids)], i
			last = s.RunOnOwner(id, func() {
				mu.Lock()
				seen[id] = append(seen[id], n)
				mu.Unlock()
			})
		}
		s.Close()
		last.Wait()

		for _, id := range ids {
			order := seen[id]
			if len(order) != 100 {
				t.Fatalf("expected 100 tasks for %s, got %d", id, len(order))
			}
			for i := 1; i < len(order); i++ {
				if order[i] < order[i-1] {
					t.Fatalf("tasks for %s ran out of order: %v", id, order)
				}
			}
		}
	}
}

func TestCancel(t *testing.T) {
	s := NewSingle(logrus.StandardLogger())
	defer s.Close()

	block := make(chan struct{})
	s.RunGlobal(func() { <-block })

	ran := false
	h := s.RunGlobal(func() { ran = true })
	if !s.Cancel(h) {
		t.Fatalf("expected a queued task to be cancellable")
	}
	close(block)
	h.Wait()

	s.RunGlobal(func() {}).Wait()
	if ran || !h.Cancelled() {
		t.Fatalf("a cancelled task ran")
	}
	if s.Cancel(h) {
		t.Fatalf("expected a second cancel to fail")
	}
}

func TestPanicRecovered(t *testing.T) {
	s := NewRegional(1, logrus.StandardLogger())
	defer s.Close()
	id := uuid.New()

	s.RunOnOwner(id, func() { panic("boom") }).Wait()

	ran := false
	s.RunOnOwner(id, func() { ran = true }).Wait()
	if !ran {
		t.Fatalf("expected the loop to keep running after a panic")
	}
}

func TestSubmitAfterClose(t *testing.T) {
	s := NewSingle(logrus.StandardLogger())
	s.Close()
	h := s.RunGlobal(func() {})
	h.Wait()
	if !h.Cancelled() {
		t.Fatalf("expected tasks submitted after closing to be cancelled")
	}
}

func TestNew(t *testing.T) {
	if _, err := New("unknown", 1, logrus.StandardLogger()); err == nil {
		t.Fatalf("expected an error for an unknown scheduler")
	}
	s, err := New("regional", 2, logrus.StandardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r, ok := s.(*Regional); !ok || len(r.owners) != 2 {
		t.Fatalf("expected a regional scheduler with 2 regions")
	}
	s.Close()
}
