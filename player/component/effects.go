package component

import (
	"github.com/df-mc/dragonfly/server/entity/effect"
)

type EffectsComponent struct {
	effects map[effect.Type]effect.Effect
}

// NewEffectsComponent returns a new effects component.
func NewEffectsComponent() *EffectsComponent {
	return &EffectsComponent{
		effects: make(map[effect.Type]effect.Effect),
	}
}

// Add adds an effect to the effect component.
func (ec *EffectsComponent) Add(e effect.Effect) {
	// If the effect component already has this effect at a higher level, reject.
	if current, ok := ec.effects[e.Type()]; ok && current.Level() > e.Level() {
		return
	}
	ec.effects[e.Type()] = e
}

// Remove removes the effect of the type passed from the effect component.
func (ec *EffectsComponent) Remove(t effect.Type) {
	delete(ec.effects, t)
}

// Level returns the level of the effect of the type passed, or 0 if there is none.
func (ec *EffectsComponent) Level(t effect.Type) int {
	if e, ok := ec.effects[t]; ok {
		return e.Level()
	}
	return 0
}

// Tick ticks all the effects, and removes those effects in which the duration has expired.
func (ec *EffectsComponent) Tick() {
	for t, e := range ec.effects {
		e = e.TickDuration()
		if e.Duration() <= 0 {
			delete(ec.effects, t)
		} else {
			ec.effects[t] = e
		}
	}
}

func (ec *EffectsComponent) Clear() {
	clear(ec.effects)
}
