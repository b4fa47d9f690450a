package component

import (
	"math"

	"github.com/oomph-ac/moveguard/assert"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/protocol"
)

// implicitConfirmDistance is how close an update must be to the target of a relocation to count as its
// confirmation on protocols without a confirmation channel.
const implicitConfirmDistance = 1e-3

// ACKComponent matches relocations sent to the client against the confirmations it sends back. Protocols
// without a confirmation channel are served in a degraded mode in which updates are never WAITING.
type ACKComponent struct {
	caps    protocol.Capabilities
	lenient bool

	lastOutgoingID int64
	maxConfirmedID int64
	state          player.AckState

	target  player.Location
	pending bool
}

// NewACKComponent returns an ACKComponent for the protocol capabilities passed. With cancelUnconfirmed,
// updates are cancelled while a relocation is outstanding on a protocol that cannot confirm it.
func NewACKComponent(caps protocol.Capabilities, cancelUnconfirmed bool) *ACKComponent {
	return &ACKComponent{
		caps:           caps,
		lenient:        cancelUnconfirmed,
		lastOutgoingID: player.IDUnset,
		maxConfirmedID: player.IDUnset,
	}
}

func (ac *ACKComponent) Issue(target player.Location) int64 {
	id := ac.lastOutgoingID + 1
	if ac.lastOutgoingID == player.IDUnset {
		id = 1
	}
	ac.IssueWithID(id, target)
	return id
}

func (ac *ACKComponent) IssueWithID(id int64, target player.Location) {
	assert.IsTrue(id > ac.lastOutgoingID, "relocation ID %d does not exceed last issued ID %d", id, ac.lastOutgoingID)
	ac.lastOutgoingID = id
	ac.target = target
	ac.pending = true
	ac.state = player.AckPending
}

func (ac *ACKComponent) Confirm(id int64) (player.Location, error) {
	if id != ac.lastOutgoingID || ac.lastOutgoingID == player.IDUnset {
		return player.Location{}, oerror.ErrStaleAcknowledgement
	}
	ac.maxConfirmedID = id
	ac.pending = false
	ac.state = player.AckConfirmed
	return ac.target, nil
}

func (ac *ACKComponent) Classify(e protocol.Endpoint) player.Classification {
	if ac.Degraded() {
		return ac.classifyDegraded(e)
	}
	if ac.maxConfirmedID < ac.lastOutgoingID {
		ac.state = player.AckWaiting
		return player.ClassWaiting
	}
	ac.state = player.AckNone
	return player.ClassOrdinary
}

// classifyDegraded treats an update at the target of the outstanding relocation as its confirmation. Every
// update that is not cancelled is ORDINARY and evaluated from the target.
func (ac *ACKComponent) classifyDegraded(e protocol.Endpoint) player.Classification {
	if !ac.pending {
		return player.ClassOrdinary
	}
	if ac.lenient && !(e.HasPosition && samePosition(e, ac.target)) {
		return player.ClassCancelled
	}
	ac.pending = false
	ac.state = player.AckNone
	return player.ClassOrdinary
}

func (ac *ACKComponent) Outstanding() (player.Location, bool) {
	return ac.target, ac.pending
}

func (ac *ACKComponent) LastOutgoingID() int64 {
	return ac.lastOutgoingID
}

func (ac *ACKComponent) MaxConfirmedID() int64 {
	return ac.maxConfirmedID
}

func (ac *ACKComponent) State() player.AckState {
	return ac.state
}

func (ac *ACKComponent) Degraded() bool {
	return !ac.caps.ConfirmationChannel
}

func (ac *ACKComponent) Reset() {
	ac.maxConfirmedID = ac.lastOutgoingID
	ac.pending = false
	ac.state = player.AckNone
}

func samePosition(e protocol.Endpoint, target player.Location) bool {
	for i := range 3 {
		if math.Abs(e.Position[i]-target.Position[i]) > implicitConfirmDistance {
			return false
		}
	}
	return true
}
