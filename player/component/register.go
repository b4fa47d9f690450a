package component

import "github.com/oomph-ac/moveguard/player"

// Register registers the components for the given player.
func Register(p *player.Player) {
	s := p.Settings()
	p.SetACKs(NewACKComponent(p.Capabilities(), s.Engine.CancelUnconfirmedMoves))
	p.SetHistory(NewHistoryComponent(s.Engine.HistorySize, s.Physics.LostGroundStep))
	p.SetSetBack(NewSetBackComponent())
	p.SetFall(NewFallComponent(s.Fall))
	p.SetEffects(NewEffectsComponent())
}
