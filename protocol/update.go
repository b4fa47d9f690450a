package protocol

import "github.com/go-gl/mathgl/mgl64"

// UpdateKind is the kind of a RawUpdate received from a client.
type UpdateKind uint8

const (
	// KindMovement is a movement update carrying an on-ground flag and optionally a position and look.
	KindMovement UpdateKind = iota
	// KindConfirmation is a confirmation of a relocation previously sent to the client.
	KindConfirmation
)

const (
	// DoubleFields is the amount of float64 fields a movement update always carries.
	DoubleFields = 3
	// FloatFields is the amount of float32 fields a movement update always carries.
	FloatFields = 2
)

// RawUpdate is a movement related update as decoded from the wire, before any of its content is
// validated. The boolean layout is [onGround, hasPosition, hasLook], with the horizontal collision
// flag inserted at index 1 when the protocol carries one. Doubles are [x, y, z] and floats are
// [yaw, pitch]; values that are not present are left zero.
type RawUpdate struct {
	Kind      UpdateKind
	Booleans  []bool
	Doubles   []float64
	Floats    []float32
	ConfirmID int64
}

// Movement returns a well formed movement RawUpdate for the capabilities passed.
func Movement(caps Capabilities, onGround, collision bool, pos *mgl64.Vec3, look *[2]float32) RawUpdate {
	u := RawUpdate{
		Kind:    KindMovement,
		Doubles: make([]float64, DoubleFields),
		Floats:  make([]float32, FloatFields),
	}
	u.Booleans = append(u.Booleans, onGround)
	if caps.CollisionFlag {
		u.Booleans = append(u.Booleans, collision)
	}
	u.Booleans = append(u.Booleans, pos != nil, look != nil)
	if pos != nil {
		copy(u.Doubles, pos[:])
	}
	if look != nil {
		copy(u.Floats, look[:])
	}
	return u
}

// Confirmation returns a RawUpdate confirming the relocation with the ID passed.
func Confirmation(id int64) RawUpdate {
	return RawUpdate{Kind: KindConfirmation, ConfirmID: id}
}

// Endpoint is the normalized content of a movement update. A position or look is either present as
// a whole or absent.
type Endpoint struct {
	OnGround            bool
	HorizontalCollision bool
	HasPosition         bool
	HasLook             bool

	Position   mgl64.Vec3
	Yaw, Pitch float32
}

// ConfirmationOnly returns true if the endpoint carries neither a position nor a look.
func (e Endpoint) ConfirmationOnly() bool {
	return !e.HasPosition && !e.HasLook
}
