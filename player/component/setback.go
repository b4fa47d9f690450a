package component

import (
	"math"

	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/player"
)

// SetBackComponent stores the last legitimate location of a player.
type SetBackComponent struct {
	loc    player.Location
	hasLoc bool

	jumpPhase        int
	bunnyHopCooldown int
}

func NewSetBackComponent() *SetBackComponent {
	return &SetBackComponent{}
}

func (c *SetBackComponent) Current() (player.Location, bool) {
	return c.loc, c.hasLoc
}

func (c *SetBackComponent) MaybeAdopt(loc player.Location, clean bool) bool {
	if !clean {
		return false
	}
	c.loc, c.hasLoc = loc, true
	return true
}

func (c *SetBackComponent) Request(limitY, floorY float64) (player.Location, error) {
	if !c.hasLoc {
		return player.Location{}, oerror.ErrMissingSetBack
	}
	loc := c.loc
	if loc.Position[1] > limitY {
		loc.Position[1] = math.Max(limitY-game.SetBackHeightMargin, floorY)
	}
	return loc, nil
}

func (c *SetBackComponent) Reset(loc player.Location) {
	c.loc, c.hasLoc = loc, true
	c.jumpPhase = 0
	c.bunnyHopCooldown = 0
}

func (c *SetBackComponent) Clear() {
	*c = SetBackComponent{}
}

func (c *SetBackComponent) JumpPhase() int {
	return c.jumpPhase
}

func (c *SetBackComponent) SetJumpPhase(phase int) {
	c.jumpPhase = phase
}

func (c *SetBackComponent) BunnyHopCooldown() int {
	return c.bunnyHopCooldown
}

func (c *SetBackComponent) ArmBunnyHop(ticks int) {
	c.bunnyHopCooldown = ticks
}

func (c *SetBackComponent) TickBunnyHop() {
	if c.bunnyHopCooldown > 0 {
		c.bunnyHopCooldown--
	}
}
