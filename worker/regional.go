package worker

import (
	"runtime"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// Regional spreads entities over a fixed amount of owner loops by the hash of their identity. Global
// tasks run on a loop of their own.
type Regional struct {
	owners []*loop
	global *loop
}

// NewRegional returns a Regional scheduler with the amount of owner loops passed. If regions is not
// positive, one loop per CPU is started.
func NewRegional(regions int, log *logrus.Logger) *Regional {
	if regions <= 0 {
		regions = runtime.NumCPU()
	}
	r := &Regional{owners: make([]*loop, regions), global: newLoop(log)}
	for i := range r.owners {
		r.owners[i] = newLoop(log)
	}
	return r
}

// Region returns the index of the loop owning the entity.
func (r *Regional) Region(owner uuid.UUID) int {
	return int(xxh3.Hash(owner[:]) % uint64(len(r.owners)))
}

func (r *Regional) RunOnOwner(owner uuid.UUID, task Task) *Handle {
	return r.owners[r.Region(owner)].submit(task)
}

func (r *Regional) RunGlobal(task Task) *Handle {
	return r.global.submit(task)
}

func (r *Regional) Cancel(h *Handle) bool {
	return h.cancel()
}

func (r *Regional) Close() {
	for _, l := range r.owners {
		l.close()
	}
	r.global.close()
}
