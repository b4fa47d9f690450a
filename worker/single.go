package worker

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Single runs every task on a single game loop.
type Single struct {
	l *loop
}

func NewSingle(log *logrus.Logger) *Single {
	return &Single{l: newLoop(log)}
}

func (s *Single) RunOnOwner(_ uuid.UUID, task Task) *Handle {
	return s.l.submit(task)
}

func (s *Single) RunGlobal(task Task) *Handle {
	return s.l.submit(task)
}

func (s *Single) Cancel(h *Handle) bool {
	return h.cancel()
}

func (s *Single) Close() {
	s.l.close()
}
