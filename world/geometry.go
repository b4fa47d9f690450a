package world

import "github.com/df-mc/dragonfly/server/block/cube"

// BlockFlag describes how a block interacts with an entity moving through or on top of it.
type BlockFlag uint32

const (
	// FlagSolid blocks stop movement and can be stood on.
	FlagSolid BlockFlag = 1 << iota
	// FlagGround blocks can be stood on without being solid, such as lily pads.
	FlagGround
	// FlagLiquid blocks are water or lava.
	FlagLiquid
	// FlagClimbable blocks are ladders, vines and scaffolding.
	FlagClimbable
	// FlagSticky blocks slow entities down in all directions, such as cobwebs and honey.
	FlagSticky
)

// FlagsResetCondition is the set of flags that suspend normal ground and fall accounting.
const FlagsResetCondition = FlagLiquid | FlagClimbable | FlagSticky

// Geometry is a read-only query service over the blocks of a world. Implementations must not
// block, as queries are made while the state of an entity is locked.
type Geometry interface {
	// IsOnGround returns true if the bottom of the box rests on a solid or ground block.
	IsOnGround(box cube.BBox) bool
	// Collides returns true if the box intersects any block carrying one of the flags.
	Collides(box cube.BBox, flags BlockFlag) bool
	// LiquidHeightAt returns the height of the liquid in the block at the position, or zero if
	// the block holds no liquid.
	LiquidHeightAt(x, y, z int) float64
}
