package player

import "github.com/df-mc/dragonfly/server/entity/effect"

type EffectsComponent interface {
	// Add adds an effect to the effect component. An effect of the same type with a higher level is kept.
	Add(e effect.Effect)
	// Remove removes the effect of the type passed.
	Remove(t effect.Type)
	// Level returns the level of the effect of the type passed, or 0 if the player does not have it.
	Level(t effect.Type) int

	// Tick ticks all the effects, and removes those effects in which the duration has expired.
	Tick()
	// Clear removes all effects.
	Clear()
}
