package movement

import (
	"math"

	"github.com/oomph-ac/moveguard/settings"
)

// Branch is the vertical branch of the envelope a move was evaluated in.
type Branch uint8

const (
	BranchHold Branch = iota
	BranchAscend
	BranchDescend
)

func (b Branch) String() string {
	switch b {
	case BranchAscend:
		return "ascend"
	case BranchDescend:
		return "descend"
	}
	return "hold"
}

// Input is everything the envelope needs to know about a single move.
type Input struct {
	Model   Model
	Physics settings.Physics

	HorizontalDistance float64
	VerticalDistance   float64
	ToY                float64

	FromOnGround   bool
	ToOnGround     bool
	TouchedGround  bool
	ResetCondition bool
	HeadObstructed bool

	// PriorValid is false if there is no previous move to inherit momentum from.
	PriorValid              bool
	PriorHorizontalDistance float64
	PriorVerticalDistance   float64
	PriorTouchedGround      bool

	JumpPhase        int
	BunnyHopCooldown int

	Flying    bool
	Sprinting bool
	FlySpeed  float64

	SpeedLevel     int
	SlownessLevel  int
	JumpBoostLevel int

	// WorldTop is the highest buildable y of the world the move happens in.
	WorldTop float64
}

// Result is the outcome of evaluating a move against the envelope.
type Result struct {
	LimitH, ExcessH float64
	LimitV, ExcessV float64

	// BunnyHop is true if horizontal excess was forgiven as a bunny hop. The cooldown should be armed.
	BunnyHop bool
	Branch   Branch
	// MaxHeightExceeded is true if the move ends above the highest position the model allows. The
	// player should be set back silently.
	MaxHeightExceeded bool
}

// Score returns the violation magnitude of the result, in percent of one block.
func (r Result) Score() float64 {
	return 100 * (math.Max(0, r.ExcessH) + math.Max(0, r.ExcessV))
}

// Clean returns true if the move stayed within the envelope on both axes.
func (r Result) Clean() bool {
	return r.ExcessH <= 0 && r.ExcessV <= 0
}

// Evaluate computes the horizontal and vertical limits for a move and how far it exceeded them.
func Evaluate(in Input) Result {
	var res Result
	res.LimitH, res.ExcessH, res.BunnyHop = horizontal(in)
	res.Branch, res.LimitV, res.ExcessV = vertical(in)
	res.MaxHeightExceeded = in.ToY > in.Model.MaxHeight()+in.WorldTop
	return res
}

// SpeedAmplifier returns the factor speed altering effects apply to the horizontal limit.
func SpeedAmplifier(p settings.Physics, speed, slowness int) float64 {
	f := (1 + p.SpeedPerLevel*float64(max(speed, 0))) * (1 - p.SlownessPerLevel*float64(max(slowness, 0)))
	return math.Max(0, f)
}

func flySpeedRatio(in Input) float64 {
	if in.Physics.DefaultFlySpeed <= 0 || in.FlySpeed <= 0 {
		return 1
	}
	return in.FlySpeed / in.Physics.DefaultFlySpeed
}

func horizontal(in Input) (limit, excess float64, bunnyHop bool) {
	limit = in.Model.HorizontalModifier() * in.Physics.BaseHorizontalSpeed
	if in.Model.Modifiers() {
		limit *= SpeedAmplifier(in.Physics, in.SpeedLevel, in.SlownessLevel)
	}
	if in.Flying {
		limit *= flySpeedRatio(in)
		if in.Sprinting {
			limit *= in.Model.SprintModifier()
		}
	}
	if in.PriorValid {
		limit = math.Max(limit, in.PriorHorizontalDistance*in.Physics.AirFriction)
	}

	excess = math.Max(0, in.HorizontalDistance-limit)
	if excess > 0 && excess < in.Physics.BunnyHopMaxExcess && bunnyHopAllowed(in) {
		return limit, 0, true
	}
	return limit, excess, false
}

func bunnyHopAllowed(in Input) bool {
	if !in.Model.Modifiers() || in.BunnyHopCooldown > 0 || in.JumpPhase > 1 || in.ResetCondition {
		return false
	}
	if !in.TouchedGround && !in.FromOnGround && !in.PriorTouchedGround {
		return false
	}
	return in.VerticalDistance > 0 || in.HeadObstructed
}

func vertical(in Input) (Branch, float64, float64) {
	y := in.VerticalDistance
	switch {
	case y > 0:
		limit := in.Model.VerticalModifier() * in.Physics.BaseAscendSpeed
		if in.Flying {
			limit *= flySpeedRatio(in)
		}
		if in.Model.Gravity() && y > limit && in.PriorValid {
			limit = math.Max(limit, in.PriorVerticalDistance*in.Physics.GravityFriction)
		}
		if in.Model.GroundMechanics() && leftGround(in) {
			gain := in.Model.JumpGain()
			if in.Model.Modifiers() {
				gain += in.Physics.JumpGainPerLevel * float64(max(in.JumpBoostLevel, 0))
			}
			limit = math.Max(limit, gain)
		}
		if y <= in.Physics.StepHeight && (in.FromOnGround || in.PriorTouchedGround) {
			limit = math.Max(limit, in.Physics.StepHeight)
		}
		return BranchAscend, limit, math.Max(0, y-limit)
	case y < 0:
		return BranchDescend, 0, 0
	}
	return BranchHold, 0, 0
}

// leftGround returns true if the move is the first one away from the ground.
func leftGround(in Input) bool {
	return (in.FromOnGround || in.PriorTouchedGround) && !in.ToOnGround && in.JumpPhase <= 1
}
