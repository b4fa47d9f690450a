package player

import (
	"github.com/df-mc/dragonfly/server/entity/effect"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/player/movement"
	"github.com/oomph-ac/moveguard/world"
)

// Spawn places the player at the location as it joins. The location becomes its set-back.
func (p *Player) Spawn(loc Location) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocation(loc, ResetLifecycle)
	p.history.Clear()
}

// Teleport resets the player to a location the server moved it to. The returned relocation must be sent to
// the client, and movement updates are held back until it is confirmed.
func (p *Player) Teleport(loc Location) Relocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocation(loc, ResetTeleport)
	p.history.Invalidate()
	return Relocation{ID: p.acks.Issue(loc), Target: loc}
}

// TeleportWithID is Teleport for hosts that assign relocation IDs themselves. The ID must exceed every ID
// issued to the player before.
func (p *Player) TeleportWithID(id int64, loc Location) Relocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocation(loc, ResetTeleport)
	p.history.Invalidate()
	p.acks.IssueWithID(id, loc)
	return Relocation{ID: id, Target: loc}
}

// Respawn resets the player to the location it respawned at.
func (p *Player) Respawn(loc Location) Relocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocation(loc, ResetLifecycle)
	p.history.Clear()
	p.effects.Clear()
	return Relocation{ID: p.acks.Issue(loc), Target: loc}
}

// ChangeWorld moves the player to a location in another world.
func (p *Player) ChangeWorld(loc Location) Relocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.world = loc.World
	p.worldRange = world.RangeOf(p.settings.DimensionOf(loc.World))
	p.resetLocation(loc, ResetLifecycle)
	p.history.Clear()
	return Relocation{ID: p.acks.Issue(loc), Target: loc}
}

// ForceSetBack relocates the player to its set-back, for example after a violation outside of movement.
// oerror.ErrMissingSetBack is returned if the player has no set-back yet.
func (p *Player) ForceSetBack() (Relocation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() {
		return Relocation{}, oerror.ErrSessionClosed
	}
	d := p.enforceSetBack(Decision{}, p.currentModel(), "forced")
	if d.Relocation == nil {
		return Relocation{}, d.Reason
	}
	return *d.Relocation, nil
}

// CurrentSetBack returns the set-back of the player, if one was adopted.
func (p *Player) CurrentSetBack() (Location, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.setBack == nil {
		return Location{}, false
	}
	return p.setBack.Current()
}

// SetGameMode updates the game mode of the player. Flight is revoked when switching to a game mode that
// does not allow it.
func (p *Player) SetGameMode(g GameMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameMode = g
	if !g.AllowsFlight() && !p.mayFly {
		p.flying = false
	}
	if g == GameModeSpectator {
		p.flying = true
	}
}

func (p *Player) GameMode() GameMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gameMode
}

// SetMayFly updates whether the server allows the player to fly.
func (p *Player) SetMayFly(mayFly bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mayFly = mayFly
	if !mayFly && !p.gameMode.AllowsFlight() {
		p.flying = false
	}
}

// SetFlying updates whether the player is flying. Players that are not allowed to fly are never
// considered flying.
func (p *Player) SetFlying(flying bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flying = flying && (p.mayFly || p.gameMode.AllowsFlight())
	if p.flying {
		p.fall.Reset(ResetEnvironment, p.last.Y())
	}
}

func (p *Player) Flying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flying
}

// SetFlySpeed updates the flight speed of the player.
func (p *Player) SetFlySpeed(speed float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if speed <= 0 {
		speed = p.settings.Physics.DefaultFlySpeed
	}
	p.flySpeed = speed
}

func (p *Player) SetSprinting(sprinting bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sprinting = sprinting
}

func (p *Player) Sprinting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sprinting
}

func (p *Player) SetGliding(gliding bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gliding = gliding
}

func (p *Player) Gliding() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gliding
}

// AddEffect adds an effect to the player.
func (p *Player) AddEffect(e effect.Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.effects.Add(e)
}

// RemoveEffect removes the effect of the type passed from the player.
func (p *Player) RemoveEffect(t effect.Type) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.effects.Remove(t)
}

// EnterVehicle marks the player as riding a vehicle. Movement of riding players is not evaluated.
func (p *Player) EnterVehicle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inVehicle = true
	p.fall.Reset(ResetVehicle, p.last.Y())
}

// ExitVehicle marks the player as no longer riding a vehicle, dismounting at the location passed.
func (p *Player) ExitVehicle(loc Location) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inVehicle = false
	p.last = Resolve(p.geometry, loc, p.width, p.height)
	p.hasLast = true
	p.fall.Reset(ResetVehicle, loc.Position.Y())
	p.history.Invalidate()
}

// resetLocation resets the location, set-back, jump phase and fall state of the player at once.
func (p *Player) resetLocation(loc Location, reason ResetReason) {
	if loc.World == "" {
		loc.World = p.world
	}
	p.last = Resolve(p.geometry, loc, p.width, p.height)
	p.hasLast = true
	p.setBack.Reset(loc)
	p.fall.Reset(reason, loc.Position.Y())
	p.hasTakeoffSetBack = false
	p.Dbg.Notify(DebugModeSetBack, true, "location reset to %s (%s)", loc, reason)
}

func (p *Player) modelState() movement.State {
	return movement.State{
		Spectator:  p.gameMode == GameModeSpectator,
		Flying:     p.flying,
		Gliding:    p.gliding,
		Levitating: p.effects.Level(effect.Levitation) > 0,
	}
}

func (p *Player) currentModel() movement.Model {
	return p.models.Get(movement.KeyFor(p.modelState()))
}
