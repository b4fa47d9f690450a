package protocol

// Edition is the edition of the game a client connects with.
type Edition uint8

const (
	EditionJava Edition = iota
	EditionBedrock
)

func (e Edition) String() string {
	if e == EditionBedrock {
		return "bedrock"
	}
	return "java"
}

const (
	// JavaTeleportConfirmProtocol is the first Java protocol revision in which clients confirm
	// teleports.
	JavaTeleportConfirmProtocol = 107
	// JavaMovementFlagsProtocol is the first Java protocol revision that packs the on-ground and
	// horizontal collision flags in a single byte.
	JavaMovementFlagsProtocol = 768
)

// Capabilities are the static properties of the protocol revision the engine is serving. They are
// resolved once at startup and never change afterwards.
type Capabilities struct {
	Edition  Edition
	Protocol int32
	// ConfirmationChannel is true if clients confirm relocations sent to them.
	ConfirmationChannel bool
	// CollisionFlag is true if movement updates carry a horizontal collision flag.
	CollisionFlag bool
}

// Resolve returns the capabilities of the edition and protocol revision passed.
func Resolve(edition Edition, protocol int32) Capabilities {
	caps := Capabilities{Edition: edition, Protocol: protocol}
	switch edition {
	case EditionBedrock:
		// Relocations are followed by a NetworkStackLatency the client must answer.
		caps.ConfirmationChannel = true
	default:
		caps.ConfirmationChannel = protocol >= JavaTeleportConfirmProtocol
		caps.CollisionFlag = protocol >= JavaMovementFlagsProtocol
	}
	return caps
}

// BooleanFields returns the amount of booleans a movement update must carry.
func (c Capabilities) BooleanFields() int {
	if c.CollisionFlag {
		return 4
	}
	return 3
}
