package player

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/uuid"
	"github.com/oomph-ac/moveguard/utils"
	"github.com/sirupsen/logrus"
)

// Violation is passed to a ViolationHandler every time a detection flags.
type Violation struct {
	// CheckID is the type and sub type of the detection, such as "Speed/A".
	CheckID  string
	EntityID uuid.UUID
	Name     string
	// Level is the violation level of the detection after the flag.
	Level float64
	// Magnitude is how much the level increased with this flag.
	Magnitude float64
	Extra     *orderedmap.OrderedMap[string, any]
}

// ViolationHandler decides what happens when a detection flags. The engine does not know which actions
// exist; it only learns whether the update should be cancelled, which sets the player back.
type ViolationHandler interface {
	HandleViolation(v Violation) (cancel bool)
}

// NopViolationHandler never cancels updates.
type NopViolationHandler struct{}

func (NopViolationHandler) HandleViolation(Violation) bool { return false }

// ThresholdHandler cancels updates once the violation level of a detection reaches the configured level.
// Detections without a configured level cancel on every flag.
type ThresholdHandler struct {
	log    *logrus.Logger
	levels map[string]float64
}

// NewThresholdHandler returns a ThresholdHandler with a cancel level per check ID.
func NewThresholdHandler(log *logrus.Logger, levels map[string]float64) *ThresholdHandler {
	return &ThresholdHandler{log: log, levels: levels}
}

func (h *ThresholdHandler) HandleViolation(v Violation) bool {
	if v.Level < h.levels[v.CheckID] {
		return false
	}
	h.log.Debugf("%s: cancelled update for %s <x%.2f> %s", v.Name, v.CheckID, v.Level, utils.OrderedMapToString(v.Extra))
	return true
}
