package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Settings contains all settings that can be configured for the engine and each of its detections.
type Settings struct {
	Engine struct {
		// HistorySize is the amount of moves kept in the move history of each player.
		HistorySize int
		// ExcludeWaitingMoves is true if moves received while a relocation is unconfirmed are accepted
		// without being recorded or evaluated.
		ExcludeWaitingMoves bool
		// CancelUnconfirmedMoves is true if, on protocols without a confirmation channel, moves are
		// cancelled while a relocation is outstanding.
		CancelUnconfirmedMoves bool
		// MalformedLogInterval is the minimum amount of milliseconds between two logs of a malformed update.
		MalformedLogInterval int64
		// Scheduler is the scheduler updates are dispatched on, either "single" or "regional".
		Scheduler string
		// Regions is the amount of owner loops of the regional scheduler.
		Regions int
		// Debug enables debug logging for every player.
		Debug bool
	}
	Physics Physics
	Fall    Fall
	Models  struct {
		// Base is the creative model every other model is copied from.
		Base Model
		// Overrides holds, per model key, the fields that differ from Base.
		Overrides map[string]map[string]interface{}
	}
	Detections struct {
		Speed     struct{ A Basics }
		Fly       struct{ A Basics }
		Hover     struct{ A Basics }
		NoFall    struct{ A Basics }
		Timer     struct{ A Basics }
		BadPacket struct{ A Basics }
	}
	// Worlds maps a world name to the dimension it lives in, which decides its build height.
	Worlds map[string]string
}

// Physics holds the empirical constants of the movement envelope.
type Physics struct {
	BaseHorizontalSpeed float64
	BaseAscendSpeed     float64
	AirFriction         float64
	GravityFriction     float64
	StepHeight          float64
	JumpGainPerLevel    float64
	SpeedPerLevel       float64
	SlownessPerLevel    float64
	BunnyHopMaxExcess   float64
	BunnyHopDelay       int
	LostGroundStep      float64
	DefaultFlySpeed     float64
	// HoverTicks is the amount of consecutive airborne moves without vertical movement tolerated.
	HoverTicks int
	// MaxPacketsPerSecond is the amount of movement updates a client may send per second.
	MaxPacketsPerSecond float64
	// PacketBurst is the amount of updates above the limit tolerated in a window.
	PacketBurst float64
}

// Fall holds the settings of the fall distance tracker.
type Fall struct {
	SafeDistance      float64
	MinDamage         float64
	ClampThreshold    float64
	ResetOnViolation  bool
	ResetOnTeleport   bool
	ResetOnVehicle    bool
	ResetOnGround     bool
	SetBackCorrection bool
}

// Model holds the fields of a movement model.
type Model struct {
	HorizontalModifier float64
	VerticalModifier   float64
	SprintModifier     float64
	JumpGain           float64
	MaxHeight          float64
	Gravity            bool
	GroundMechanics    bool
	Modifiers          bool
}

// Basics are the basic settings for a detection.
type Basics struct {
	// Enabled is whether the detection should be enabled or not.
	Enabled bool
	// MaxViolations is the violation level at which a punishable detection asks for the player to be removed.
	MaxViolations float64
	// CancelLevel is the violation level from which the default handler cancels the update.
	CancelLevel float64
	// Decay is the factor the violation level is multiplied with on every passing move.
	Decay float64
}

// DefaultSettings returns the default settings of the engine.
func DefaultSettings() Settings {
	s := Settings{}
	s.Engine.HistorySize = 8
	s.Engine.ExcludeWaitingMoves = true
	s.Engine.MalformedLogInterval = 5000
	s.Engine.Scheduler = "single"
	s.Engine.Regions = 4

	s.Physics = Physics{
		BaseHorizontalSpeed: 0.2,
		BaseAscendSpeed:     0.42,
		AirFriction:         0.91,
		GravityFriction:     0.98,
		StepHeight:          0.6,
		JumpGainPerLevel:    0.1,
		SpeedPerLevel:       0.2,
		SlownessPerLevel:    0.15,
		BunnyHopMaxExcess:   0.3,
		BunnyHopDelay:       9,
		LostGroundStep:      0.05,
		DefaultFlySpeed:     0.05,
		HoverTicks:          40,
		MaxPacketsPerSecond: 22,
		PacketBurst:         10,
	}

	s.Fall = Fall{
		SafeDistance:      3,
		MinDamage:         1,
		ClampThreshold:    0.05,
		ResetOnViolation:  true,
		ResetOnTeleport:   true,
		ResetOnVehicle:    true,
		ResetOnGround:     true,
		SetBackCorrection: true,
	}

	s.Models.Base = Model{
		HorizontalModifier: 2.75,
		VerticalModifier:   1.0,
		SprintModifier:     2.0,
		JumpGain:           0.42,
		MaxHeight:          128,
		Modifiers:          true,
	}
	s.Models.Overrides = map[string]map[string]interface{}{
		"creative": {},
		"survival": {
			"HorizontalModifier": 1.0,
			"VerticalModifier":   0.0,
			"SprintModifier":     1.3,
			"Gravity":            true,
			"GroundMechanics":    true,
		},
		"spectator": {
			"HorizontalModifier": 5.5,
			"VerticalModifier":   2.5,
			"Modifiers":          false,
		},
		"elytra": {
			"HorizontalModifier": 15.0,
			"VerticalModifier":   2.0,
			"SprintModifier":     1.0,
			"Gravity":            true,
			"Modifiers":          false,
		},
		"levitation": {
			"HorizontalModifier": 1.0,
			"VerticalModifier":   0.5,
			"SprintModifier":     1.3,
			"GroundMechanics":    true,
		},
	}

	basics := Basics{Enabled: true, MaxViolations: 500, Decay: 0.98}
	s.Detections.Speed.A = basics
	s.Detections.Fly.A = basics
	s.Detections.Hover.A = basics
	s.Detections.Hover.A.CancelLevel = 1
	s.Detections.NoFall.A = basics
	s.Detections.NoFall.A.CancelLevel = 1
	s.Detections.Timer.A = basics
	s.Detections.Timer.A.MaxViolations = 100
	s.Detections.Timer.A.CancelLevel = 10
	s.Detections.BadPacket.A = basics
	s.Detections.BadPacket.A.MaxViolations = 1

	s.Worlds = map[string]string{
		"world":        "overworld",
		"world_nether": "nether",
		"world_end":    "end",
	}
	return s
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	return settings, nil
}

// DimensionOf returns the dimension the world with the name passed lives in.
func (s Settings) DimensionOf(world string) string {
	if d, ok := s.Worlds[world]; ok {
		return d
	}
	return "overworld"
}
