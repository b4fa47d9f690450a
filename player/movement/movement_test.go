package movement

import (
	"math"
	"testing"

	"github.com/oomph-ac/moveguard/settings"
)

func testModels(t *testing.T) (Models, settings.Physics) {
	t.Helper()
	s := settings.DefaultSettings()
	models, err := BuildModels(s)
	if err != nil {
		t.Fatalf("failed to build models: %v", err)
	}
	return models, s.Physics
}

func TestBuildModelsOverridesBase(t *testing.T) {
	models, _ := testModels(t)

	creative := models.Get(ModelCreative)
	if creative.HorizontalModifier() != 2.75 || creative.Gravity() {
		t.Fatalf("unexpected creative model: %+v", creative)
	}
	survival := models.Get(ModelSurvival)
	if survival.HorizontalModifier() != 1.0 || !survival.Gravity() || !survival.GroundMechanics() {
		t.Fatalf("unexpected survival model: %+v", survival)
	}
	// Fields that are not overridden are copied from the base.
	if survival.MaxHeight() != creative.MaxHeight() || survival.JumpGain() != creative.JumpGain() {
		t.Fatalf("survival model did not inherit base fields: %+v", survival)
	}
	if models.Get("unknown").Key() != ModelSurvival {
		t.Fatalf("expected unknown keys to fall back to survival")
	}
}

func TestBuildModelsRejectsUnknownField(t *testing.T) {
	s := settings.DefaultSettings()
	s.Models.Overrides["survival"]["Teleport"] = true
	if _, err := BuildModels(s); err == nil {
		t.Fatalf("expected an error for an unknown model field")
	}
}

func TestKeyFor(t *testing.T) {
	if k := KeyFor(State{}); k != ModelSurvival {
		t.Fatalf("expected survival, got %s", k)
	}
	if k := KeyFor(State{Flying: true, Levitating: true}); k != ModelCreative {
		t.Fatalf("expected creative while flying, got %s", k)
	}
	if k := KeyFor(State{Gliding: true, Flying: true}); k != ModelElytra {
		t.Fatalf("expected elytra while gliding, got %s", k)
	}
	if k := KeyFor(State{Spectator: true, Gliding: true}); k != ModelSpectator {
		t.Fatalf("expected spectator, got %s", k)
	}
	if k := KeyFor(State{Levitating: true}); k != ModelLevitation {
		t.Fatalf("expected levitation, got %s", k)
	}
}

func TestHorizontalExcessScore(t *testing.T) {
	models, physics := testModels(t)
	res := Evaluate(Input{
		Model:              models.Get(ModelSurvival),
		Physics:            physics,
		HorizontalDistance: 0.25,
		FromOnGround:       true,
		ToOnGround:         true,
		TouchedGround:      true,
	})
	if math.Abs(res.LimitH-0.2) > 1e-9 {
		t.Fatalf("expected horizontal limit 0.2, got %f", res.LimitH)
	}
	if math.Abs(res.ExcessH-0.05) > 1e-9 {
		t.Fatalf("expected horizontal excess 0.05, got %f", res.ExcessH)
	}
	if math.Abs(res.Score()-5) > 1e-6 {
		t.Fatalf("expected a score of 5, got %f", res.Score())
	}
	if res.BunnyHop {
		t.Fatalf("a flat move must not be treated as a bunny hop")
	}
}

func TestEnvelopeMonotonicity(t *testing.T) {
	_, physics := testModels(t)
	s := settings.DefaultSettings().Models.Base
	s.Gravity, s.GroundMechanics = true, true

	for _, dist := range []float64{0.1, 0.3, 0.55, 0.9, 2.5} {
		prev := math.Inf(1)
		for mod := 0.5; mod <= 4; mod += 0.25 {
			s.HorizontalModifier = mod
			res := Evaluate(Input{
				Model:              NewModel("test", s),
				Physics:            physics,
				HorizontalDistance: dist,
				VerticalDistance:   0.42,
				FromOnGround:       true,
			})
			if res.ExcessH > prev {
				t.Fatalf("excess grew from %f to %f when raising the modifier to %f (distance %f)", prev, res.ExcessH, mod, dist)
			}
			prev = res.ExcessH
		}
	}
}

func TestInheritedFrictionFloor(t *testing.T) {
	models, physics := testModels(t)
	res := Evaluate(Input{
		Model:                   models.Get(ModelSurvival),
		Physics:                 physics,
		HorizontalDistance:      0.5,
		PriorValid:              true,
		PriorHorizontalDistance: 0.6,
		JumpPhase:               5,
	})
	if math.Abs(res.LimitH-0.6*0.91) > 1e-9 || res.ExcessH != 0 {
		t.Fatalf("expected the prior move to raise the limit to %f, got limit %f excess %f", 0.6*0.91, res.LimitH, res.ExcessH)
	}
}

func TestBunnyHopExemption(t *testing.T) {
	models, physics := testModels(t)
	in := Input{
		Model:              models.Get(ModelSurvival),
		Physics:            physics,
		HorizontalDistance: 0.45,
		VerticalDistance:   0.42,
		FromOnGround:       true,
		Sprinting:          true,
	}
	res := Evaluate(in)
	if !res.BunnyHop || res.ExcessH != 0 {
		t.Fatalf("expected a sprint jump to be forgiven as a bunny hop, got %+v", res)
	}

	in.BunnyHopCooldown = 3
	if res := Evaluate(in); res.BunnyHop || res.ExcessH <= 0 {
		t.Fatalf("expected no bunny hop while the cooldown is armed, got %+v", res)
	}

	in.BunnyHopCooldown = 0
	in.ResetCondition = true
	if res := Evaluate(in); res.BunnyHop {
		t.Fatalf("expected no bunny hop in a liquid")
	}

	in.ResetCondition = false
	in.HorizontalDistance = 1.2
	if res := Evaluate(in); res.BunnyHop || res.ExcessH <= physics.BunnyHopMaxExcess {
		t.Fatalf("expected a large excess to never be forgiven, got %+v", res)
	}
}

func TestSprintOnlyScalesFlight(t *testing.T) {
	models, physics := testModels(t)
	in := Input{
		Model:              models.Get(ModelSurvival),
		Physics:            physics,
		HorizontalDistance: 0.25,
		FromOnGround:       true,
		ToOnGround:         true,
		TouchedGround:      true,
		Sprinting:          true,
	}
	res := Evaluate(in)
	if math.Abs(res.LimitH-0.2) > 1e-9 || math.Abs(res.Score()-5) > 1e-6 {
		t.Fatalf("expected sprinting on the ground to keep the walking limit, got limit %f score %f", res.LimitH, res.Score())
	}

	creative := models.Get(ModelCreative)
	in.Model = creative
	in.Flying = true
	in.FlySpeed = physics.DefaultFlySpeed
	res = Evaluate(in)
	want := creative.HorizontalModifier() * physics.BaseHorizontalSpeed * creative.SprintModifier()
	if math.Abs(res.LimitH-want) > 1e-9 {
		t.Fatalf("expected sprinting in flight to scale the limit to %f, got %f", want, res.LimitH)
	}
}

func TestVerticalBranches(t *testing.T) {
	models, physics := testModels(t)
	survival := models.Get(ModelSurvival)

	jump := Evaluate(Input{Model: survival, Physics: physics, VerticalDistance: 0.42, FromOnGround: true})
	if jump.Branch != BranchAscend || jump.ExcessV != 0 {
		t.Fatalf("expected a jump to be within the envelope, got %+v", jump)
	}

	boosted := Evaluate(Input{Model: survival, Physics: physics, VerticalDistance: 0.61, FromOnGround: true, JumpBoostLevel: 2})
	if boosted.ExcessV != 0 {
		t.Fatalf("expected jump boost II to allow 0.61, got %+v", boosted)
	}
	if plain := Evaluate(Input{Model: survival, Physics: physics, VerticalDistance: 0.61, FromOnGround: true}); plain.ExcessV <= 0 {
		t.Fatalf("expected 0.61 to exceed a jump without boost, got %+v", plain)
	}

	air := Evaluate(Input{Model: survival, Physics: physics, VerticalDistance: 0.5, JumpPhase: 4, PriorValid: true, PriorVerticalDistance: 0.1})
	if math.Abs(air.ExcessV-(0.5-0.1*0.98)) > 1e-9 {
		t.Fatalf("expected the carried momentum limit, got %+v", air)
	}

	step := Evaluate(Input{Model: survival, Physics: physics, VerticalDistance: 0.5, FromOnGround: true, ToOnGround: true})
	if step.ExcessV != 0 {
		t.Fatalf("expected a step up to be allowed, got %+v", step)
	}

	fall := Evaluate(Input{Model: survival, Physics: physics, VerticalDistance: -3})
	if fall.Branch != BranchDescend || fall.ExcessV != 0 {
		t.Fatalf("expected a free fall to carry no excess, got %+v", fall)
	}

	hold := Evaluate(Input{Model: survival, Physics: physics})
	if hold.Branch != BranchHold || hold.ExcessV != 0 {
		t.Fatalf("expected no excess when holding height, got %+v", hold)
	}
}

func TestMaxHeight(t *testing.T) {
	models, physics := testModels(t)
	res := Evaluate(Input{Model: models.Get(ModelCreative), Physics: physics, ToY: 320 + 129, WorldTop: 320})
	if !res.MaxHeightExceeded {
		t.Fatalf("expected the maximum height to be exceeded")
	}
	res = Evaluate(Input{Model: models.Get(ModelCreative), Physics: physics, ToY: 320 + 127, WorldTop: 320})
	if res.MaxHeightExceeded {
		t.Fatalf("expected the maximum height to not be exceeded")
	}
}

func TestNextJumpPhase(t *testing.T) {
	phase := NextJumpPhase(0, JumpInput{FromGround: true, Ascending: true})
	if phase != 1 {
		t.Fatalf("expected phase 1 after leaving the ground, got %d", phase)
	}
	for i := 0; i < 3; i++ {
		phase = NextJumpPhase(phase, JumpInput{Ascending: i == 0})
	}
	if phase != 4 {
		t.Fatalf("expected phase 4 after three airborne moves, got %d", phase)
	}
	if phase = NextJumpPhase(phase, JumpInput{ToReset: true}); phase != 0 {
		t.Fatalf("expected a reset condition to clear the phase, got %d", phase)
	}
	if phase = NextJumpPhase(7, JumpInput{ToGround: true}); phase != 0 {
		t.Fatalf("expected landing to clear the phase, got %d", phase)
	}
}
