package player

import (
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/player/movement"
	"github.com/oomph-ac/moveguard/protocol"
	"github.com/oomph-ac/moveguard/utils"
)

type Detection interface {
	// Type returns the primary type of the detection. E.G - "Speed", "Fly", etc.
	Type() string
	// SubType returns the sub-type of the detection. This is mainly a letter or a number representing a
	// detection for the same cheat defined in Type(), but with a different method.
	SubType() string
	// Description returns the description of what the detection does.
	Description() string
	// Punishable returns true if the detection should trigger a punishment.
	Punishable() bool
	// Metadata returns the inital metadata that should be registered for a detection.
	Metadata() *DetectionMetadata

	// Detect lets the detection inspect an update for any suspicious behavior that might flag it.
	Detect(ctx *MoveContext)
}

type DetectionMetadata struct {
	Violations    float64
	MaxViolations float64

	Buffer     float64
	FailBuffer float64
	MaxBuffer  float64

	// Decay is the factor Violations is multiplied with every time the detection passes.
	Decay       float64
	LastFlagged int64

	// Mitigation is true if the detection is simply meant to notify that a certain action was mitigated,
	// rather than that the player is cheating.
	Mitigation bool
}

// MoveContext is passed to every detection for each update of a player.
type MoveContext struct {
	Endpoint protocol.Endpoint
	// Err is set if the update could not be interpreted, in which case Move is nil.
	Err error
	// Move is the move being evaluated and Result its envelope result.
	Move   *MoveRecord
	Result movement.Result
	// Model is the movement model that applied to the move.
	Model movement.Model
	Now   int64

	cancelled bool
}

// Cancel marks the update as cancelled. The player will be set back.
func (ctx *MoveContext) Cancel() {
	ctx.cancelled = true
}

// Cancelled returns true if a detection cancelled the update.
func (ctx *MoveContext) Cancelled() bool {
	return ctx.cancelled
}

// CheckID returns the ID of a detection as passed to the ViolationHandler.
func CheckID(d Detection) string {
	return d.Type() + "/" + d.SubType()
}

// RegisterDetection adds a detection that is run for every update of the player.
func (p *Player) RegisterDetection(d Detection) {
	p.detections = append(p.detections, d)
}

// Detections returns all registered detections.
func (p *Player) Detections() []Detection {
	return p.detections
}

// Detection returns the registered detection with the check ID passed.
func (p *Player) Detection(checkID string) (Detection, bool) {
	for _, d := range p.detections {
		if CheckID(d) == checkID {
			return d, true
		}
	}
	return nil, false
}

func (p *Player) PassDetection(d Detection, sub float64) {
	m := d.Metadata()
	m.Buffer = math.Max(0, m.Buffer-sub)
	if m.Decay > 0 {
		m.Violations *= m.Decay
	}
}

// FailDetection raises the violation level of the detection by magnitude and passes the violation to the
// ViolationHandler of the player. It returns true if the handler cancelled the update.
func (p *Player) FailDetection(d Detection, magnitude float64, extraData *orderedmap.OrderedMap[string, any]) bool {
	if extraData == nil {
		extraData = orderedmap.NewOrderedMap[string, any]()
	}

	m := d.Metadata()
	m.Buffer = math.Min(m.Buffer+1.0, m.MaxBuffer)
	if m.Buffer < m.FailBuffer {
		return false
	}
	m.Violations += magnitude
	m.LastFlagged = p.tick

	extraDatString := utils.OrderedMapToString(extraData)
	if !m.Mitigation {
		p.log.Warnf("%s flagged %s (%s) <x%.2f> %s", p.name, d.Type(), d.SubType(), game.Round64(m.Violations, 2), extraDatString)
	} else {
		p.log.Infof("%s was mitigated for %s (%s) <%.2f> %s", p.name, d.Type(), d.SubType(), m.Violations, extraDatString)
	}

	cancel := p.handler.HandleViolation(Violation{
		CheckID:   CheckID(d),
		EntityID:  p.id,
		Name:      p.name,
		Level:     m.Violations,
		Magnitude: magnitude,
		Extra:     extraData,
	})

	if d.Punishable() && m.MaxViolations > 0 && m.Violations >= m.MaxViolations {
		p.log.Warnf("%s should be removed from the server for usage of third-party modifications (%s-%s).", p.name, d.Type(), d.SubType())
	}
	return cancel
}
