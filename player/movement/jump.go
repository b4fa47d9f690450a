package movement

// JumpInput holds the properties of a move the jump phase depends on.
type JumpInput struct {
	FromGround bool
	ToGround   bool
	// FromReset and ToReset are true if the endpoint satisfies a reset condition.
	FromReset     bool
	ToReset       bool
	TouchedGround bool
	Ascending     bool
}

// NextJumpPhase returns the jump phase after a move. The phase counts the consecutive airborne moves
// since the last ground contact, and is 1 for a move that leaves the ground on the way up.
func NextJumpPhase(phase int, in JumpInput) int {
	if !in.FromGround && !in.ToGround && !in.FromReset && !in.ToReset {
		return phase + 1
	}
	if in.Ascending && (in.TouchedGround || in.FromGround) {
		return 1
	}
	return 0
}
