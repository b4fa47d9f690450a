// Package diag holds the fixed set of diagnostic counters of the engine.
package diag

import "go.uber.org/atomic"

// Counter is the identifier of a diagnostic counter.
type Counter int

const (
	Malformed Counter = iota
	InvalidContent
	StaleAck
	MissingSetBack
	Ack
	Waiting
	Cancelled
	SetBack
	Abandoned
	Degraded
	Evaluated
	counterCount
)

var names = [counterCount]string{
	Malformed:      "malformed",
	InvalidContent: "invalid_content",
	StaleAck:       "stale_ack",
	MissingSetBack: "missing_setback",
	Ack:            "ack",
	Waiting:        "waiting",
	Cancelled:      "cancelled",
	SetBack:        "setback",
	Abandoned:      "abandoned",
	Degraded:       "degraded",
	Evaluated:      "evaluated",
}

func (c Counter) String() string {
	if c < 0 || c >= counterCount {
		return "unknown"
	}
	return names[c]
}

// Counters is a set of diagnostic counters that may be incremented concurrently.
type Counters struct {
	values [counterCount]atomic.Uint64
}

// NewCounters returns a set of counters, all at zero.
func NewCounters() *Counters {
	return &Counters{}
}

// Inc increments the counter passed by one.
func (c *Counters) Inc(counter Counter) {
	c.values[counter].Inc()
}

// Get returns the current value of the counter passed.
func (c *Counters) Get(counter Counter) uint64 {
	return c.values[counter].Load()
}

// Snapshot returns the value of every counter keyed by its name.
func (c *Counters) Snapshot() map[string]uint64 {
	m := make(map[string]uint64, counterCount)
	for i := range c.values {
		m[Counter(i).String()] = c.values[i].Load()
	}
	return m
}
