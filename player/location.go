package player

import (
	"fmt"
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/world"
)

// Location is a position and rotation in a world.
type Location struct {
	World      string
	Position   mgl64.Vec3
	Yaw, Pitch float32
}

func (l Location) String() string {
	return fmt.Sprintf("%s(%.3f, %.3f, %.3f)", l.World, l.Position[0], l.Position[1], l.Position[2])
}

// ResolvedLocation is a Location combined with the dimensions of the entity at it, and what the world
// looks like around it. It is immutable once resolved.
type ResolvedLocation struct {
	loc    Location
	box    cube.BBox
	width  float64
	height float64

	onGround       bool
	inLiquid       bool
	inClimbable    bool
	sticky         bool
	headObstructed bool
}

// Resolve queries the geometry around the location for an entity with the width and height passed.
func Resolve(g world.Geometry, loc Location, width, height float64) ResolvedLocation {
	pos := loc.Position
	hw := width / 2
	r := ResolvedLocation{
		loc:    loc,
		box:    cube.Box(pos[0]-hw, pos[1], pos[2]-hw, pos[0]+hw, pos[1]+height, pos[2]+hw),
		width:  width,
		height: height,
	}
	if g == nil {
		return r
	}

	r.onGround = g.IsOnGround(r.box)
	r.inClimbable = g.Collides(r.box, world.FlagClimbable)
	r.sticky = g.Collides(r.box, world.FlagSticky)
	if g.Collides(r.box, world.FlagLiquid) {
		fx, fy, fz := int(math.Floor(pos[0])), int(math.Floor(pos[1])), int(math.Floor(pos[2]))
		h := g.LiquidHeightAt(fx, fy, fz)
		// Liquid that does not reach the feet block is above the feet and still submerges the entity.
		r.inLiquid = h == 0 || pos[1]-float64(fy) < h
	}

	top := r.box.Max()
	head := cube.Box(r.box.Min().X(), top.Y(), r.box.Min().Z(), top.X(), top.Y()+game.HeadEpsilon, top.Z())
	r.headObstructed = g.Collides(head, world.FlagSolid)
	return r
}

func (r ResolvedLocation) Location() Location   { return r.loc }
func (r ResolvedLocation) Position() mgl64.Vec3 { return r.loc.Position }
func (r ResolvedLocation) World() string        { return r.loc.World }
func (r ResolvedLocation) X() float64           { return r.loc.Position[0] }
func (r ResolvedLocation) Y() float64           { return r.loc.Position[1] }
func (r ResolvedLocation) Z() float64           { return r.loc.Position[2] }
func (r ResolvedLocation) Yaw() float32         { return r.loc.Yaw }
func (r ResolvedLocation) Pitch() float32       { return r.loc.Pitch }
func (r ResolvedLocation) BBox() cube.BBox      { return r.box }
func (r ResolvedLocation) OnGround() bool       { return r.onGround }
func (r ResolvedLocation) InLiquid() bool       { return r.inLiquid }
func (r ResolvedLocation) InClimbable() bool    { return r.inClimbable }
func (r ResolvedLocation) StickyContact() bool  { return r.sticky }
func (r ResolvedLocation) HeadObstructed() bool { return r.headObstructed }
func (r ResolvedLocation) EyeHeight() float64   { return r.loc.Position[1] + r.height*0.9 }
func (r ResolvedLocation) Width() float64       { return r.width }
func (r ResolvedLocation) Height() float64      { return r.height }

// ResetCondition returns true if the entity is in an environment that suspends normal ground and fall
// accounting, such as liquids, ladders and cobwebs.
func (r ResolvedLocation) ResetCondition() bool {
	return r.inLiquid || r.inClimbable || r.sticky
}

// GroundOrReset returns true if the entity is on the ground or in a reset condition.
func (r ResolvedLocation) GroundOrReset() bool {
	return r.onGround || r.ResetCondition()
}
