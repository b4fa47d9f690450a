package component

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/player"
)

func TestSetBackIdempotence(t *testing.T) {
	for _, pos := range []mgl64.Vec3{{0, 64, 0}, {12.5, 70.25, -3}, {-1e6, -10, 1e6}} {
		loc := player.Location{World: "world", Position: pos, Yaw: 90, Pitch: 10}

		once := NewSetBackComponent()
		once.MaybeAdopt(loc, true)

		twice := NewSetBackComponent()
		twice.MaybeAdopt(loc, true)
		twice.MaybeAdopt(loc, true)

		a, okA := once.Current()
		b, okB := twice.Current()
		if !okA || !okB || a != b {
			t.Fatalf("adopting twice gave %v (%t), once gave %v (%t)", b, okB, a, okA)
		}
	}
}

func TestSetBackOnlyAdoptsCleanMoves(t *testing.T) {
	c := NewSetBackComponent()
	if c.MaybeAdopt(player.Location{Position: mgl64.Vec3{1, 2, 3}}, false) {
		t.Fatalf("a move with excess must not be adopted")
	}
	if _, ok := c.Current(); ok {
		t.Fatalf("expected no set-back")
	}
}

func TestSetBackMissing(t *testing.T) {
	c := NewSetBackComponent()
	if _, err := c.Request(320, -64); !errors.Is(err, oerror.ErrMissingSetBack) {
		t.Fatalf("expected ErrMissingSetBack, got %v", err)
	}
}

func TestSetBackHeightCorrection(t *testing.T) {
	c := NewSetBackComponent()
	c.MaybeAdopt(player.Location{Position: mgl64.Vec3{0, 500, 0}}, true)

	loc, err := c.Request(448, -64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Position[1] != 438 {
		t.Fatalf("expected the set-back to be lowered to 438, got %f", loc.Position[1])
	}
	loc, _ = c.Request(5, 0)
	if loc.Position[1] != 0 {
		t.Fatalf("expected the set-back to be clamped to the floor, got %f", loc.Position[1])
	}
	if stored, _ := c.Current(); stored.Position[1] != 500 {
		t.Fatalf("requesting a set-back must not modify it, got %f", stored.Position[1])
	}
}

func TestSetBackClear(t *testing.T) {
	c := NewSetBackComponent()
	c.MaybeAdopt(player.Location{Position: mgl64.Vec3{1, 64, 1}}, true)
	c.SetJumpPhase(3)
	c.ArmBunnyHop(9)

	c.Clear()
	if _, ok := c.Current(); ok {
		t.Fatalf("expected the set-back to be forgotten")
	}
	if c.JumpPhase() != 0 || c.BunnyHopCooldown() != 0 {
		t.Fatalf("expected the jump phase and bunny hop cooldown to be cleared")
	}
	if _, err := c.Request(320, -64); !errors.Is(err, oerror.ErrMissingSetBack) {
		t.Fatalf("expected ErrMissingSetBack after clearing, got %v", err)
	}
}

func TestSetBackReset(t *testing.T) {
	c := NewSetBackComponent()
	c.SetJumpPhase(5)
	c.ArmBunnyHop(9)
	c.Reset(player.Location{Position: mgl64.Vec3{0, 64, 0}})
	if c.JumpPhase() != 0 || c.BunnyHopCooldown() != 0 {
		t.Fatalf("expected the jump phase and cooldown to be cleared")
	}
	if _, ok := c.Current(); !ok {
		t.Fatalf("expected a set-back after resetting")
	}
}
