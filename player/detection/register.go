package detection

import (
	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/settings"
)

// Register registers all enabled detections for the given player.
func Register(p *player.Player) {
	d := p.Settings().Detections

	// envelope detections
	register(p, d.Speed.A, New_SpeedA(p))
	register(p, d.Fly.A, New_FlyA(p))

	// airborne detections
	register(p, d.Hover.A, New_HoverA(p))
	register(p, d.NoFall.A, New_NoFallA(p))

	// packet detections
	register(p, d.Timer.A, New_TimerA(p))
	register(p, d.BadPacket.A, New_BadPacketA(p))
}

// CancelLevels returns the violation level from which each enabled detection cancels updates, keyed by
// check ID.
func CancelLevels(s settings.Settings) map[string]float64 {
	d := s.Detections
	levels := make(map[string]float64)
	for id, b := range map[string]settings.Basics{
		TypeSpeed + "/A":     d.Speed.A,
		TypeFly + "/A":       d.Fly.A,
		TypeHover + "/A":     d.Hover.A,
		TypeNoFall + "/A":    d.NoFall.A,
		TypeTimer + "/A":     d.Timer.A,
		TypeBadPacket + "/A": d.BadPacket.A,
	} {
		if b.Enabled {
			levels[id] = b.CancelLevel
		}
	}
	return levels
}

func register(p *player.Player, b settings.Basics, d player.Detection) {
	if !b.Enabled {
		return
	}
	m := d.Metadata()
	m.MaxViolations = b.MaxViolations
	m.Decay = b.Decay
	p.RegisterDetection(d)
}
