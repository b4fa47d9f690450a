package player

// ResetReason is the reason the fall state of a player was reset.
type ResetReason uint8

const (
	ResetViolation ResetReason = iota
	ResetTeleport
	ResetVehicle
	ResetGround
	// ResetEnvironment resets are caused by liquids, climbables and other reset conditions. They
	// cannot be disabled.
	ResetEnvironment
	// ResetLifecycle resets are caused by joining, respawning and changing worlds. They cannot be disabled.
	ResetLifecycle
)

func (r ResetReason) String() string {
	switch r {
	case ResetViolation:
		return "violation"
	case ResetTeleport:
		return "teleport"
	case ResetVehicle:
		return "vehicle"
	case ResetGround:
		return "ground"
	case ResetEnvironment:
		return "environment"
	}
	return "lifecycle"
}

// DamageDecision is the outcome of a player touching the ground after a fall.
type DamageDecision struct {
	// FallHeight is the height the damage was computed from.
	FallHeight float64
	// Damage is the fall height above the safe distance, or 0 if no damage should be dealt.
	Damage float64
}

// Applies returns true if damage should be dealt.
func (d DamageDecision) Applies() bool {
	return d.Damage > 0
}

// FallComponent tracks how far a player has fallen since it last touched the ground.
type FallComponent interface {
	// OnAirborneMove updates the fall state with an airborne move ending at y.
	OnAirborneMove(y, yDelta float64)
	// OnGroundContact is called when the player touches the ground at groundY. setBackY is the height of
	// the set-back when the player left the ground.
	OnGroundContact(groundY, setBackY float64, hasSetBack bool) DamageDecision
	// Reset resets the fall state to y, unless resets for the reason passed are disabled. It returns true
	// if the state was reset.
	Reset(reason ResetReason, y float64) bool

	Distance() float64
	MaxY() float64
	PendingSkip() bool
}
