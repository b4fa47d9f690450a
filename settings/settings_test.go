package settings

import (
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Engine.HistorySize != 8 {
		t.Fatalf("expected history size 8, got %d", s.Engine.HistorySize)
	}
	if s.Physics.BunnyHopDelay != 9 || s.Physics.BunnyHopMaxExcess != 0.3 || s.Physics.LostGroundStep != 0.05 {
		t.Fatalf("unexpected bunny hop tunables: %+v", s.Physics)
	}
	if s.Fall.SafeDistance != 3 || s.Fall.MinDamage != 1 {
		t.Fatalf("unexpected fall settings: %+v", s.Fall)
	}
	for _, key := range []string{"survival", "creative", "spectator", "elytra", "levitation"} {
		if _, ok := s.Models.Overrides[key]; !ok {
			t.Fatalf("missing model %q", key)
		}
	}
}

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moveguard.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("failed to save default settings: %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatalf("expected an error when the settings file already exists")
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	def := DefaultSettings()
	if s.Physics != def.Physics {
		t.Fatalf("physics changed after round trip: %+v != %+v", s.Physics, def.Physics)
	}
	if s.Fall != def.Fall {
		t.Fatalf("fall settings changed after round trip: %+v != %+v", s.Fall, def.Fall)
	}
	if s.Models.Base != def.Models.Base {
		t.Fatalf("base model changed after round trip: %+v != %+v", s.Models.Base, def.Models.Base)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected an error loading a missing file")
	}
}
