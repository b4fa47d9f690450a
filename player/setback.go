package player

// SetBackComponent keeps track of the last location of a player that was judged legitimate, along with
// the jump phase and bunny hop cooldown of the player.
type SetBackComponent interface {
	// Current returns the current set-back, if one was adopted.
	Current() (Location, bool)
	// MaybeAdopt adopts the location as the new set-back if the move that led to it was clean. It returns
	// true if the location was adopted.
	MaybeAdopt(loc Location, clean bool) bool
	// Request returns the set-back to relocate the player to. If its height exceeds limitY, it is lowered
	// to max(limitY-10, floorY). oerror.ErrMissingSetBack is returned if no set-back was adopted yet.
	Request(limitY, floorY float64) (Location, error)
	// Reset replaces the set-back with the location passed and clears the jump phase and bunny hop cooldown.
	Reset(loc Location)
	// Clear forgets the set-back along with the jump phase and bunny hop cooldown.
	Clear()

	JumpPhase() int
	SetJumpPhase(phase int)
	BunnyHopCooldown() int
	// ArmBunnyHop starts the bunny hop cooldown.
	ArmBunnyHop(ticks int)
	// TickBunnyHop counts down the bunny hop cooldown by one move.
	TickBunnyHop()
}
