package detection

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/player/component"
	"github.com/oomph-ac/moveguard/player/movement"
	"github.com/oomph-ac/moveguard/settings"
)

func newPlayer(t *testing.T, s settings.Settings) *player.Player {
	t.Helper()
	models, err := movement.BuildModels(s)
	if err != nil {
		t.Fatalf("failed to build models: %v", err)
	}
	p := player.New(uuid.New(), player.Config{Settings: s, Models: models})
	component.Register(p)
	Register(p)
	return p
}

func TestRegisterRespectsSettings(t *testing.T) {
	s := settings.DefaultSettings()
	s.Detections.Timer.A.Enabled = false
	s.Detections.Speed.A.MaxViolations = 42
	p := newPlayer(t, s)

	if _, ok := p.Detection("Timer/A"); ok {
		t.Fatalf("expected Timer/A to be disabled")
	}
	d, ok := p.Detection("Speed/A")
	if !ok {
		t.Fatalf("expected Speed/A to be registered")
	}
	if d.Metadata().MaxViolations != 42 || d.Metadata().Decay != s.Detections.Speed.A.Decay {
		t.Fatalf("expected the metadata to be taken from the settings, got %+v", d.Metadata())
	}
	if len(p.Detections()) != 5 {
		t.Fatalf("expected 5 detections, got %d", len(p.Detections()))
	}
}

func TestCancelLevels(t *testing.T) {
	s := settings.DefaultSettings()
	s.Detections.Fly.A.Enabled = false
	levels := CancelLevels(s)
	if _, ok := levels["Fly/A"]; ok {
		t.Fatalf("expected no cancel level for a disabled detection")
	}
	if levels["Timer/A"] != 10 || levels["Hover/A"] != 1 {
		t.Fatalf("unexpected cancel levels %v", levels)
	}
}

func TestViolationDecay(t *testing.T) {
	p := newPlayer(t, settings.DefaultSettings())
	d, _ := p.Detection("Speed/A")

	p.FailDetection(d, 10, nil)
	if d.Metadata().Violations != 10 {
		t.Fatalf("expected 10 violations, got %f", d.Metadata().Violations)
	}
	p.PassDetection(d, 1)
	if v := d.Metadata().Violations; math.Abs(v-9.8) > 1e-9 {
		t.Fatalf("expected the violations to decay to 9.8, got %f", v)
	}
}
