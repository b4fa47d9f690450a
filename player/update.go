package player

import (
	"errors"

	"github.com/df-mc/dragonfly/server/entity/effect"
	"github.com/oomph-ac/moveguard/diag"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/player/movement"
	"github.com/oomph-ac/moveguard/protocol"
)

// HandleUpdate interprets and evaluates a single update received from the client at the server time
// passed, in milliseconds. Updates must be passed in the order they were received.
func (p *Player) HandleUpdate(raw protocol.RawUpdate, now int64) (d Decision) {
	if p.closed.Load() {
		return p.abandon()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() {
		return p.abandon()
	}
	defer p.recoverError(&d)

	if raw.Kind == protocol.KindConfirmation {
		return p.handleConfirmation(raw.ConfirmID, now)
	}

	e, err := protocol.Interpret(raw, p.caps)
	if errors.Is(err, oerror.ErrMalformedPacket) {
		// Malformed updates never touch the state of the player.
		p.counters.Inc(diag.Malformed)
		if p.malformedLimiter.Allow() {
			p.log.Warnf("%s: dropped malformed movement update: %v", p.name, err)
		}
		return reject(ClassOrdinary, err)
	}

	p.advanceClock(now)
	if err != nil {
		p.counters.Inc(diag.InvalidContent)
		p.runDetections(&MoveContext{Err: err, Now: now})
		return reject(ClassOrdinary, err)
	}
	p.frequency.Add(now, 1)

	switch class := p.acks.Classify(e); class {
	case ClassWaiting:
		p.counters.Inc(diag.Waiting)
		p.Dbg.Notify(DebugModeACKs, true, "update while waiting for relocation %d (confirmed=%d)", p.acks.LastOutgoingID(), p.acks.MaxConfirmedID())
		d = accept(ClassWaiting)
		if !p.settings.Engine.ExcludeWaitingMoves {
			// The pending relocation moves the client anyway; the move must not enter history before it.
			d.Verdict = VerdictReject
		}
		d.Endpoint = e
		return d
	case ClassCancelled:
		p.counters.Inc(diag.Cancelled)
		d = reject(ClassCancelled, nil)
		d.Endpoint = e
		return d
	}

	if p.inVehicle {
		p.rebaseline(e)
		d = accept(ClassOrdinary)
		d.Endpoint = e
		return d
	}
	return p.evaluate(e, now)
}

// abandon is returned for updates of players whose session has ended.
func (p *Player) abandon() Decision {
	p.counters.Inc(diag.Abandoned)
	return reject(ClassOrdinary, oerror.ErrSessionClosed)
}

func (p *Player) handleConfirmation(id, now int64) Decision {
	target, err := p.acks.Confirm(id)
	if err != nil {
		p.counters.Inc(diag.StaleAck)
		p.log.Debugf("%s: %v (got %d, expected %d)", p.name, err, id, p.acks.LastOutgoingID())
		d := accept(ClassOrdinary)
		d.Reason = err
		return d
	}

	p.counters.Inc(diag.Ack)
	// The confirmation is an extra round trip the client did not choose to send.
	p.frequency.Discount(now, 1)
	p.last = Resolve(p.geometry, target, p.width, p.height)
	p.hasLast = true
	p.history.Invalidate()
	p.Dbg.Notify(DebugModeACKs, true, "relocation %d to %s confirmed", id, target)
	return accept(ClassAck)
}

// rebaseline moves the player to the reported position without evaluating how it got there.
func (p *Player) rebaseline(e protocol.Endpoint) {
	p.last = Resolve(p.geometry, p.merge(e), p.width, p.height)
	p.hasLast = true
	p.history.Invalidate()
	p.fall.Reset(ResetTeleport, p.last.Y())
	p.hasTakeoffSetBack = false
}

func (p *Player) advanceClock(now int64) {
	p.now = now
	p.tick = now / (1000 / game.TicksPerSecond)
}

// merge fills in the parts of the endpoint that were not sent with the last location of the player.
func (p *Player) merge(e protocol.Endpoint) Location {
	loc := p.last.Location()
	loc.World = p.world
	if e.HasPosition {
		loc.Position = e.Position
	}
	if e.HasLook {
		loc.Yaw, loc.Pitch = e.Yaw, e.Pitch
	}
	return loc
}

func (p *Player) evaluate(e protocol.Endpoint, now int64) Decision {
	p.effects.Tick()

	from := p.last
	to := Resolve(p.geometry, p.merge(e), p.width, p.height)
	model := p.currentModel()
	prior := p.history.Current()
	move := p.history.Push(from, to, model.Key(), p.tick, now)

	sb := p.setBack
	res := movement.Evaluate(movement.Input{
		Model:   model,
		Physics: p.settings.Physics,

		HorizontalDistance: move.HorizontalDistance,
		VerticalDistance:   move.VerticalDistance,
		ToY:                to.Y(),

		FromOnGround:   from.OnGround(),
		ToOnGround:     to.OnGround(),
		TouchedGround:  move.TouchedGround,
		ResetCondition: from.ResetCondition() || to.ResetCondition(),
		HeadObstructed: from.HeadObstructed() || to.HeadObstructed(),

		PriorValid:              prior.ToIsValid,
		PriorHorizontalDistance: prior.HorizontalDistance,
		PriorVerticalDistance:   prior.VerticalDistance,
		PriorTouchedGround:      prior.ToIsValid && prior.TouchedGround,

		JumpPhase:        sb.JumpPhase(),
		BunnyHopCooldown: sb.BunnyHopCooldown(),

		Flying:    p.flying,
		Sprinting: p.sprinting,
		FlySpeed:  p.flySpeed,

		SpeedLevel:     p.effects.Level(effect.Speed),
		SlownessLevel:  p.effects.Level(effect.Slowness),
		JumpBoostLevel: p.effects.Level(effect.JumpBoost),

		WorldTop: p.worldTop(),
	})
	move.BunnyHop = res.BunnyHop
	if res.BunnyHop {
		sb.ArmBunnyHop(p.settings.Physics.BunnyHopDelay)
	} else {
		sb.TickBunnyHop()
	}
	p.counters.Inc(diag.Evaluated)

	p.Dbg.Notify(
		DebugModeMovement,
		true,
		"model=%s h=%.4f/%.4f v=%.4f/%.4f (%s) ground=%t->%t phase=%d bhop=%t",
		model.Key(),
		move.HorizontalDistance,
		res.LimitH,
		move.VerticalDistance,
		res.LimitV,
		res.Branch,
		from.OnGround(),
		to.OnGround(),
		sb.JumpPhase(),
		res.BunnyHop,
	)

	ctx := &MoveContext{Endpoint: e, Move: move, Result: res, Model: model, Now: now}
	p.runDetections(ctx)

	sb.SetJumpPhase(movement.NextJumpPhase(sb.JumpPhase(), movement.JumpInput{
		FromGround:    from.OnGround(),
		ToGround:      to.OnGround(),
		FromReset:     from.ResetCondition(),
		ToReset:       to.ResetCondition(),
		TouchedGround: move.TouchedGround,
		Ascending:     move.VerticalDistance > 0,
	}))

	d := accept(ClassOrdinary)
	d.Endpoint = e
	d.Move = move
	d.Score = res.Score()

	switch {
	case res.MaxHeightExceeded:
		return p.enforceSetBack(d, model, "max height")
	case ctx.Cancelled():
		return p.enforceSetBack(d, model, "violation")
	}

	d.FallDamage = p.updateFall(move, model)
	p.last = to
	if sb.MaybeAdopt(to.Location(), res.Clean()) {
		p.Dbg.Notify(DebugModeSetBack, true, "adopted set-back %s", to.Location())
	}
	return d
}

// enforceSetBack relocates the player to its set-back and rejects the update. If no set-back was adopted
// yet, the update is rejected without a relocation.
func (p *Player) enforceSetBack(d Decision, model movement.Model, reason string) Decision {
	d.Verdict = VerdictReject
	loc, err := p.setBack.Request(model.MaxHeight()+p.worldTop(), p.worldFloor())
	if err != nil {
		p.counters.Inc(diag.MissingSetBack)
		p.log.Warnf("%s: unable to enforce set-back (%s): %v", p.name, reason, err)
		d.Reason = err
		return d
	}

	p.counters.Inc(diag.SetBack)
	p.history.Invalidate()
	p.setBack.SetJumpPhase(0)
	p.fall.Reset(ResetViolation, loc.Position.Y())
	p.hasTakeoffSetBack = false

	d.Relocation = &Relocation{ID: p.acks.Issue(loc), Target: loc}
	if p.acks.Degraded() {
		// Nothing will confirm the relocation, so the next update is evaluated from its target.
		p.last = Resolve(p.geometry, loc, p.width, p.height)
		p.hasLast = true
	}
	p.Dbg.Notify(DebugModeSetBack, true, "set back to %s (%s, relocation %d)", loc, reason, d.Relocation.ID)
	return d
}

// updateFall updates the fall state with an accepted move, and returns the fall damage to deal.
func (p *Player) updateFall(move *MoveRecord, model movement.Model) float64 {
	from, to := move.From, move.To
	switch {
	case to.ResetCondition() || !model.Gravity() || p.gliding:
		p.fall.Reset(ResetEnvironment, to.Y())
		p.hasTakeoffSetBack = false
	case !to.OnGround():
		if from.GroundOrReset() {
			loc, ok := p.setBack.Current()
			p.takeoffSetBackY, p.hasTakeoffSetBack = loc.Position.Y(), ok
		}
		p.fall.OnAirborneMove(to.Y(), move.VerticalDistance)
	default:
		dec := p.fall.OnGroundContact(to.Y(), p.takeoffSetBackY, p.hasTakeoffSetBack)
		p.hasTakeoffSetBack = false
		if dec.Applies() {
			p.Dbg.Notify(DebugModeFall, true, "landed after falling %.3f blocks, damage=%.3f", dec.FallHeight, dec.Damage)
			return dec.Damage
		}
	}
	return 0
}

func (p *Player) runDetections(ctx *MoveContext) {
	for _, d := range p.detections {
		d.Detect(ctx)
	}
}
