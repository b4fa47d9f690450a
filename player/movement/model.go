package movement

import (
	"fmt"

	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/settings"
	"golang.org/x/exp/slices"
)

const (
	ModelSurvival   = "survival"
	ModelCreative   = "creative"
	ModelSpectator  = "spectator"
	ModelElytra     = "elytra"
	ModelLevitation = "levitation"
)

// Model is an immutable set of movement properties that applies to a player in a certain game mode or
// flight state. Models are only ever built by copying a base model and overriding named fields.
type Model struct {
	key string

	horizontalModifier float64
	verticalModifier   float64
	sprintModifier     float64
	jumpGain           float64
	maxHeight          float64

	gravity         bool
	groundMechanics bool
	modifiers       bool
}

// NewModel returns a model with the key passed from its settings.
func NewModel(key string, s settings.Model) Model {
	return Model{
		key:                key,
		horizontalModifier: s.HorizontalModifier,
		verticalModifier:   s.VerticalModifier,
		sprintModifier:     s.SprintModifier,
		jumpGain:           s.JumpGain,
		maxHeight:          s.MaxHeight,
		gravity:            s.Gravity,
		groundMechanics:    s.GroundMechanics,
		modifiers:          s.Modifiers,
	}
}

func (m Model) Key() string                 { return m.key }
func (m Model) HorizontalModifier() float64 { return m.horizontalModifier }
func (m Model) VerticalModifier() float64   { return m.verticalModifier }
func (m Model) SprintModifier() float64     { return m.sprintModifier }
func (m Model) JumpGain() float64           { return m.jumpGain }
func (m Model) MaxHeight() float64          { return m.maxHeight }
func (m Model) Gravity() bool               { return m.gravity }
func (m Model) GroundMechanics() bool       { return m.groundMechanics }
func (m Model) Modifiers() bool             { return m.modifiers }

// With returns a copy of the model with the field passed overridden. Unknown fields and values of the
// wrong type result in an error.
func (m Model) With(field string, value interface{}) (Model, error) {
	var err error
	switch field {
	case "HorizontalModifier":
		err = assignFloat(&m.horizontalModifier, field, value)
	case "VerticalModifier":
		err = assignFloat(&m.verticalModifier, field, value)
	case "SprintModifier":
		err = assignFloat(&m.sprintModifier, field, value)
	case "JumpGain":
		err = assignFloat(&m.jumpGain, field, value)
	case "MaxHeight":
		err = assignFloat(&m.maxHeight, field, value)
	case "Gravity":
		err = assignBool(&m.gravity, field, value)
	case "GroundMechanics":
		err = assignBool(&m.groundMechanics, field, value)
	case "Modifiers":
		err = assignBool(&m.modifiers, field, value)
	default:
		err = oerror.New("unknown model field %q", field)
	}
	return m, err
}

// Models is the immutable set of movement models, looked up by key.
type Models struct {
	byKey map[string]Model
}

// BuildModels builds every model from a copy of the base model with its overrides applied. Overrides are
// applied in sorted order so errors are reported deterministically.
func BuildModels(s settings.Settings) (Models, error) {
	keys := make([]string, 0, len(s.Models.Overrides))
	for key := range s.Models.Overrides {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	models := Models{byKey: make(map[string]Model, len(keys)+1)}
	models.byKey[ModelCreative] = NewModel(ModelCreative, s.Models.Base)
	for _, key := range keys {
		fields := s.Models.Overrides[key]
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		slices.Sort(names)

		m := NewModel(key, s.Models.Base)
		for _, name := range names {
			var err error
			if m, err = m.With(name, fields[name]); err != nil {
				return Models{}, fmt.Errorf("model %s: %w", key, err)
			}
		}
		models.byKey[key] = m
	}
	if _, ok := models.byKey[ModelSurvival]; !ok {
		return Models{}, oerror.New("no %s model configured", ModelSurvival)
	}
	return models, nil
}

// Get returns the model with the key passed, falling back to the survival model.
func (m Models) Get(key string) Model {
	if model, ok := m.byKey[key]; ok {
		return model
	}
	return m.byKey[ModelSurvival]
}

// Keys returns the keys of all models in sorted order.
func (m Models) Keys() []string {
	keys := make([]string, 0, len(m.byKey))
	for key := range m.byKey {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// State is the part of a player's state that decides which model applies to it.
type State struct {
	Spectator  bool
	Flying     bool
	Gliding    bool
	Levitating bool
}

// KeyFor returns the key of the model that applies to a player in the state passed.
func KeyFor(s State) string {
	switch {
	case s.Spectator:
		return ModelSpectator
	case s.Gliding:
		return ModelElytra
	case s.Flying:
		return ModelCreative
	case s.Levitating:
		return ModelLevitation
	}
	return ModelSurvival
}

func assignFloat(dst *float64, field string, value interface{}) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case int64:
		*dst = float64(v)
	case int:
		*dst = float64(v)
	default:
		return oerror.New("field %s expects a number, got %T", field, value)
	}
	return nil
}

func assignBool(dst *bool, field string, value interface{}) error {
	v, ok := value.(bool)
	if !ok {
		return oerror.New("field %s expects a boolean, got %T", field, value)
	}
	*dst = v
	return nil
}
