package protocol

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/oerror"
)

// Interpret validates a movement RawUpdate and normalizes it into an Endpoint. ErrMalformedPacket is
// returned if the update does not carry the fields the capabilities require, and ErrInvalidContent
// if any of its present values are non-finite or out of bounds. No partially filled Endpoint is
// ever returned alongside an error.
func Interpret(raw RawUpdate, caps Capabilities) (Endpoint, error) {
	if raw.Kind != KindMovement {
		return Endpoint{}, oerror.Wrap(oerror.ErrMalformedPacket, "update kind %d is not a movement", raw.Kind)
	}
	if want := caps.BooleanFields(); len(raw.Booleans) != want {
		return Endpoint{}, oerror.Wrap(oerror.ErrMalformedPacket, "expected %d booleans, got %d", want, len(raw.Booleans))
	}
	if len(raw.Doubles) != DoubleFields {
		return Endpoint{}, oerror.Wrap(oerror.ErrMalformedPacket, "expected %d doubles, got %d", DoubleFields, len(raw.Doubles))
	}
	if len(raw.Floats) != FloatFields {
		return Endpoint{}, oerror.Wrap(oerror.ErrMalformedPacket, "expected %d floats, got %d", FloatFields, len(raw.Floats))
	}

	b := raw.Booleans
	var e Endpoint
	e.OnGround = b[0]
	if caps.CollisionFlag {
		e.HorizontalCollision = b[1]
		b = b[1:]
	}
	e.HasPosition, e.HasLook = b[1], b[2]

	if e.HasPosition {
		pos := mgl64.Vec3{raw.Doubles[0], raw.Doubles[1], raw.Doubles[2]}
		if !game.FiniteVec64(pos) {
			return Endpoint{}, oerror.Wrap(oerror.ErrInvalidContent, "non-finite position %v", pos)
		}
		if math.Abs(pos[0]) > game.MaxWorldCoordinate || math.Abs(pos[2]) > game.MaxWorldCoordinate {
			return Endpoint{}, oerror.Wrap(oerror.ErrInvalidContent, "horizontal position %v out of bounds", pos)
		}
		if math.Abs(pos[1]) > game.MaxWorldHeight {
			return Endpoint{}, oerror.Wrap(oerror.ErrInvalidContent, "vertical position %f out of bounds", pos[1])
		}
		e.Position = pos
	}
	if e.HasLook {
		yaw, pitch := raw.Floats[0], raw.Floats[1]
		if !game.Finite32(yaw) || !game.Finite32(pitch) {
			return Endpoint{}, oerror.Wrap(oerror.ErrInvalidContent, "non-finite rotation (%f, %f)", yaw, pitch)
		}
		if math32.Abs(pitch) > game.MaxPitch {
			return Endpoint{}, oerror.Wrap(oerror.ErrInvalidContent, "pitch %f out of bounds", pitch)
		}
		e.Yaw, e.Pitch = yaw, pitch
	}
	return e, nil
}
