package player

import "github.com/oomph-ac/moveguard/protocol"

// Verdict is whether an update should be applied by the host or rejected.
type Verdict uint8

const (
	VerdictAccept Verdict = iota
	VerdictReject
)

func (v Verdict) String() string {
	if v == VerdictReject {
		return "reject"
	}
	return "accept"
}

// Relocation is a request to move the client to a location. The host sends it to the client, which
// confirms it with the ID.
type Relocation struct {
	ID     int64
	Target Location
}

// Decision is the outcome of evaluating a single update.
type Decision struct {
	Verdict Verdict
	Class   Classification
	// Endpoint is the normalized content of the update, if it could be interpreted.
	Endpoint protocol.Endpoint
	// Move is the move that was evaluated, or nil if the update was not evaluated.
	Move *MoveRecord
	// Score is the violation magnitude of the move.
	Score float64
	// Relocation is set if the player must be moved back to its set-back.
	Relocation *Relocation
	// FallDamage is the fall height above the safe distance the host should deal damage for.
	FallDamage float64
	// Reason is set when an update was rejected because of an error.
	Reason error
}

// Accepted returns true if the host should apply the update.
func (d Decision) Accepted() bool {
	return d.Verdict == VerdictAccept
}

func accept(class Classification) Decision {
	return Decision{Verdict: VerdictAccept, Class: class}
}

func reject(class Classification, reason error) Decision {
	return Decision{Verdict: VerdictReject, Class: class, Reason: reason}
}
