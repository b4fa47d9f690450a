package player

import "github.com/oomph-ac/moveguard/game"

// MoveRecord is a single transition of a player from one resolved location to another.
type MoveRecord struct {
	From, To ResolvedLocation

	HorizontalDistance float64
	VerticalDistance   float64

	// ToIsValid is false for the sentinel record and for moves invalidated by a relocation. Callers
	// must treat such records as "no data".
	ToIsValid     bool
	TouchedGround bool
	BunnyHop      bool

	Model     string
	Tick      int64
	Timestamp int64
}

var invalidMove = &MoveRecord{}

// InvalidMove returns the sentinel record returned when no move is available. It must not be modified.
func InvalidMove() *MoveRecord {
	return invalidMove
}

// NewMoveRecord creates a valid move between the two locations. A move touched the ground if it ends
// on the ground, or starts on it and drops less than lostGroundStep.
func NewMoveRecord(from, to ResolvedLocation, model string, lostGroundStep float64, tick, now int64) *MoveRecord {
	m := &MoveRecord{
		From:               from,
		To:                 to,
		HorizontalDistance: game.HorizontalDistance(from.Position(), to.Position()),
		VerticalDistance:   to.Y() - from.Y(),
		ToIsValid:          true,
		Model:              model,
		Tick:               tick,
		Timestamp:          now,
	}
	m.TouchedGround = to.OnGround() || (from.OnGround() && m.VerticalDistance > -lostGroundStep && m.VerticalDistance <= 0)
	return m
}
