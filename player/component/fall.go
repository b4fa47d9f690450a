package component

import (
	"math"

	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/settings"
)

// FallComponent tracks the fall distance of a player between two ground contacts.
type FallComponent struct {
	conf settings.Fall

	distance    float64
	maxY        float64
	pendingSkip bool
}

func NewFallComponent(conf settings.Fall) *FallComponent {
	return &FallComponent{conf: conf}
}

func (c *FallComponent) OnAirborneMove(y, yDelta float64) {
	c.pendingSkip = false
	if y > c.maxY {
		c.maxY = y
	}
	if yDelta < 0 {
		c.distance = math.Max(c.distance, c.maxY-y)
	}
}

func (c *FallComponent) OnGroundContact(groundY, setBackY float64, hasSetBack bool) player.DamageDecision {
	if c.pendingSkip {
		c.settle(groundY)
		return player.DamageDecision{}
	}

	height := math.Max(c.maxY-groundY, c.distance)
	if c.conf.SetBackCorrection && hasSetBack && setBackY < c.maxY && setBackY >= groundY {
		// Only the height below the set-back the player left the ground from counts.
		height = math.Max(0, height-(c.maxY-setBackY))
	}

	damage := height - c.conf.SafeDistance
	if damage < c.conf.MinDamage {
		c.settle(groundY)
		return player.DamageDecision{FallHeight: height}
	}

	if !c.Reset(player.ResetGround, groundY) {
		// The state is kept, so the same fall must not deal damage twice.
		c.pendingSkip = true
	}
	return player.DamageDecision{FallHeight: height, Damage: damage}
}

func (c *FallComponent) Reset(reason player.ResetReason, y float64) bool {
	if !c.resets(reason) {
		c.clamp()
		return false
	}
	c.settle(y)
	c.pendingSkip = false
	return true
}

func (c *FallComponent) resets(reason player.ResetReason) bool {
	switch reason {
	case player.ResetViolation:
		return c.conf.ResetOnViolation
	case player.ResetTeleport:
		return c.conf.ResetOnTeleport
	case player.ResetVehicle:
		return c.conf.ResetOnVehicle
	case player.ResetGround:
		return c.conf.ResetOnGround
	}
	return true
}

func (c *FallComponent) Distance() float64 {
	return c.distance
}

func (c *FallComponent) MaxY() float64 {
	return c.maxY
}

func (c *FallComponent) PendingSkip() bool {
	return c.pendingSkip
}

// settle clears the fall state at the height passed.
func (c *FallComponent) settle(y float64) {
	c.distance = 0
	c.maxY = y
}

// clamp forces residual distances below the clamp threshold to zero.
func (c *FallComponent) clamp() {
	if c.distance < c.conf.ClampThreshold {
		c.distance = 0
	}
}
