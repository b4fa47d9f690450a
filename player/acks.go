package player

import "github.com/oomph-ac/moveguard/protocol"

// IDUnset is the relocation ID used while no relocation was ever issued or confirmed.
const IDUnset int64 = -1

// AckState is the state of the acknowledgement machine of a player.
type AckState uint8

const (
	// AckNone means no relocation is outstanding.
	AckNone AckState = iota
	// AckPending means a relocation was issued and not yet confirmed.
	AckPending
	// AckConfirmed means the last relocation was just confirmed.
	AckConfirmed
	// AckWaiting means an ordinary update arrived while a relocation was still pending.
	AckWaiting
)

func (s AckState) String() string {
	switch s {
	case AckPending:
		return "PENDING"
	case AckConfirmed:
		return "ACK"
	case AckWaiting:
		return "WAITING"
	}
	return "NONE"
}

// Classification is the class an update is sorted in by the acknowledgement machine.
type Classification uint8

const (
	// ClassOrdinary updates are evaluated normally.
	ClassOrdinary Classification = iota
	// ClassAck updates confirmed the outstanding relocation.
	ClassAck
	// ClassWaiting updates arrived while a relocation was unconfirmed.
	ClassWaiting
	// ClassCancelled updates are rejected while a relocation is unconfirmed on a protocol that
	// cannot confirm it.
	ClassCancelled
)

func (c Classification) String() string {
	switch c {
	case ClassAck:
		return "ACK"
	case ClassWaiting:
		return "WAITING"
	case ClassCancelled:
		return "CANCELLED"
	}
	return "ORDINARY"
}

// AcknowledgementComponent matches relocations issued to a player against the confirmations it sends
// back, and classifies each movement update accordingly.
type AcknowledgementComponent interface {
	// Issue records a new relocation to the target and returns its ID.
	Issue(target Location) int64
	// IssueWithID records a relocation with an ID assigned by the host. The ID must be higher than
	// any ID issued before.
	IssueWithID(id int64, target Location)
	// Confirm handles a confirmation of the relocation with the ID passed. The target of the relocation
	// is returned if the ID matches the last issued one, otherwise oerror.ErrStaleAcknowledgement.
	Confirm(id int64) (Location, error)
	// Classify sorts an ordinary movement update.
	Classify(e protocol.Endpoint) Classification
	// Outstanding returns the target of the relocation that is still unconfirmed, if any.
	Outstanding() (Location, bool)

	LastOutgoingID() int64
	MaxConfirmedID() int64
	State() AckState
	// Degraded returns true if the protocol has no confirmation channel.
	Degraded() bool
	// Reset forgets any outstanding relocation. IDs keep increasing.
	Reset()
}
