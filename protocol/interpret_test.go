package protocol

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/moveguard/oerror"
)

func TestResolveCapabilities(t *testing.T) {
	tests := []struct {
		edition      Edition
		protocol     int32
		confirmation bool
		collision    bool
	}{
		{EditionJava, 47, false, false},
		{EditionJava, JavaTeleportConfirmProtocol, true, false},
		{EditionJava, 767, true, false},
		{EditionJava, JavaMovementFlagsProtocol, true, true},
		{EditionBedrock, 766, true, false},
	}
	for _, test := range tests {
		caps := Resolve(test.edition, test.protocol)
		if caps.ConfirmationChannel != test.confirmation || caps.CollisionFlag != test.collision {
			t.Fatalf("%s %d: unexpected capabilities %+v", test.edition, test.protocol, caps)
		}
	}
}

func TestInterpretMalformed(t *testing.T) {
	caps := Resolve(EditionJava, JavaMovementFlagsProtocol)
	valid := Movement(caps, true, false, &mgl64.Vec3{1, 2, 3}, nil)

	short := valid
	short.Booleans = short.Booleans[:3]
	extra := valid
	extra.Doubles = append([]float64{}, 1, 2, 3, 4)
	noFloats := valid
	noFloats.Floats = nil

	for name, raw := range map[string]RawUpdate{
		"missing collision flag": short,
		"extra double":           extra,
		"missing floats":         noFloats,
		"confirmation":           Confirmation(1),
	} {
		if _, err := Interpret(raw, caps); !errors.Is(err, oerror.ErrMalformedPacket) {
			t.Fatalf("%s: expected ErrMalformedPacket, got %v", name, err)
		}
	}

	// A pre-flags update is malformed on a revision with the collision flag.
	legacy := Movement(Resolve(EditionJava, 340), true, false, nil, nil)
	if _, err := Interpret(legacy, caps); !errors.Is(err, oerror.ErrMalformedPacket) {
		t.Fatalf("expected ErrMalformedPacket, got %v", err)
	}
}

func TestInterpretInvalidContent(t *testing.T) {
	caps := Resolve(EditionJava, 340)
	for name, raw := range map[string]RawUpdate{
		"nan x":         Movement(caps, false, false, &mgl64.Vec3{math.NaN(), 64, 0}, nil),
		"infinite y":    Movement(caps, false, false, &mgl64.Vec3{0, math.Inf(1), 0}, nil),
		"far z":         Movement(caps, false, false, &mgl64.Vec3{0, 64, 3.1e7}, nil),
		"high y":        Movement(caps, false, false, &mgl64.Vec3{0, 2.1e7, 0}, nil),
		"steep pitch":   Movement(caps, false, false, nil, &[2]float32{0, 91}),
		"infinite yaw":  Movement(caps, false, false, nil, &[2]float32{float32(math.Inf(-1)), 0}),
		"nan with look": Movement(caps, false, false, &mgl64.Vec3{0, math.NaN(), 0}, &[2]float32{0, 0}),
	} {
		e, err := Interpret(raw, caps)
		if !errors.Is(err, oerror.ErrInvalidContent) {
			t.Fatalf("%s: expected ErrInvalidContent, got %v", name, err)
		}
		if e != (Endpoint{}) {
			t.Fatalf("%s: expected an empty endpoint alongside the error, got %+v", name, e)
		}
	}
}

func TestInterpretIgnoresAbsentFields(t *testing.T) {
	caps := Resolve(EditionJava, 340)
	raw := Movement(caps, true, false, nil, &[2]float32{45, 30})
	raw.Doubles[0] = math.NaN()

	e, err := Interpret(raw, caps)
	if err != nil {
		t.Fatalf("values of an absent position must not be validated: %v", err)
	}
	if e.HasPosition || !e.HasLook || !e.OnGround || e.Yaw != 45 || e.Pitch != 30 {
		t.Fatalf("unexpected endpoint %+v", e)
	}
	if e.ConfirmationOnly() {
		t.Fatalf("an update with a look is not confirmation only")
	}
}

func TestInterpretCollisionFlag(t *testing.T) {
	caps := Resolve(EditionJava, JavaMovementFlagsProtocol)
	e, err := Interpret(Movement(caps, false, true, &mgl64.Vec3{0, 64, 0}, nil), caps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.OnGround || !e.HorizontalCollision || !e.HasPosition || e.HasLook {
		t.Fatalf("unexpected endpoint %+v", e)
	}
}
