// Package worker runs tasks on long lived loops, so that all work for one entity happens in order on the
// same goroutine.
package worker

import (
	"fmt"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

const queueSize = 256

// Task is a unit of work run on a loop.
type Task func()

// Scheduler runs tasks on the loop owning an entity, or on a loop shared by all entities.
type Scheduler interface {
	// RunOnOwner queues the task on the loop owning the entity. Tasks for the same entity run in the order
	// they were queued.
	RunOnOwner(owner uuid.UUID, task Task) *Handle
	// RunGlobal queues the task on the global loop.
	RunGlobal(task Task) *Handle
	// Cancel prevents a queued task from running. It returns false if the task already ran.
	Cancel(h *Handle) bool
	// Close stops all loops once the tasks queued so far have run.
	Close()
}

// Handle refers to a task queued on a Scheduler.
type Handle struct {
	task  Task
	state atomic.Int32
	done  chan struct{}
	once  sync.Once
}

const (
	statePending int32 = iota
	stateRunning
	stateCancelled
)

func newHandle(task Task) *Handle {
	return &Handle{task: task, done: make(chan struct{})}
}

// Done returns a channel closed once the task ran or was cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the task ran or was cancelled.
func (h *Handle) Wait() {
	<-h.done
}

// Cancelled returns true if the task was cancelled before it ran.
func (h *Handle) Cancelled() bool {
	return h.state.Load() == stateCancelled
}

func (h *Handle) cancel() bool {
	if !h.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	h.finish()
	return true
}

func (h *Handle) finish() {
	h.once.Do(func() { close(h.done) })
}

// New returns the scheduler with the name passed, either "single" or "regional". Regional schedulers run
// regions owner loops.
func New(name string, regions int, log *logrus.Logger) (Scheduler, error) {
	switch name {
	case "single", "":
		return NewSingle(log), nil
	case "regional":
		return NewRegional(regions, log), nil
	}
	return nil, fmt.Errorf("unknown scheduler %q", name)
}

// loop is a goroutine running the tasks queued on it one after another.
type loop struct {
	log   *logrus.Logger
	queue chan *Handle

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func newLoop(log *logrus.Logger) *loop {
	l := &loop{log: log, queue: make(chan *Handle, queueSize)}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *loop) submit(task Task) *Handle {
	h := newHandle(task)
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		h.cancel()
		return h
	}
	l.queue <- h
	return h
}

func (l *loop) run() {
	defer l.wg.Done()
	for h := range l.queue {
		if !h.state.CompareAndSwap(statePending, stateRunning) {
			continue
		}
		l.exec(h)
	}
}

func (l *loop) exec(h *Handle) {
	defer h.finish()
	defer func() {
		if v := recover(); v != nil {
			l.log.Errorf("worker task panicked: %v", v)
			sentry.CurrentHub().Clone().Recover(v)
		}
	}()
	h.task()
}

func (l *loop) close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.queue)
	l.mu.Unlock()
	l.wg.Wait()
}
