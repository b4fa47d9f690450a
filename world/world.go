package world

import (
	"math"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/moveguard/game"
)

// Block is a block stored in a World.
type Block struct {
	Flags BlockFlag
	// Boxes are the collision boxes of the block relative to its origin. A nil slice is a full cube.
	Boxes []cube.BBox
	// LiquidHeight is the height of the liquid surface in the block, between 0 and 1.
	LiquidHeight float64
}

var (
	fullCube = []cube.BBox{cube.Box(0, 0, 0, 1, 1, 1)}

	Stone   = Block{Flags: FlagSolid}
	Water   = Block{Flags: FlagLiquid, Boxes: fullCube, LiquidHeight: 8.0 / 9.0}
	Ladder  = Block{Flags: FlagClimbable, Boxes: []cube.BBox{cube.Box(0, 0, 0.8125, 1, 1, 1)}}
	Cobweb  = Block{Flags: FlagSticky}
	LilyPad = Block{Flags: FlagGround, Boxes: []cube.BBox{cube.Box(0.0625, 0, 0.0625, 0.9375, 0.09375, 0.9375)}}
)

func (b Block) boxes() []cube.BBox {
	if b.Boxes == nil {
		return fullCube
	}
	return b.Boxes
}

// World is an in-memory Geometry backed by a sparse map of blocks. It is safe for concurrent use.
type World struct {
	mu     sync.RWMutex
	blocks map[cube.Pos]Block
}

// New returns an empty World.
func New() *World {
	return &World{blocks: make(map[cube.Pos]Block)}
}

// SetBlock sets the block at the position.
func (w *World) SetBlock(pos cube.Pos, b Block) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blocks[pos] = b
}

// RemoveBlock replaces the block at the position with air.
func (w *World) RemoveBlock(pos cube.Pos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.blocks, pos)
}

// Fill sets every block between the two positions (inclusive) to the block passed.
func (w *World) Fill(a, b cube.Pos, blk Block) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for x := min(a[0], b[0]); x <= max(a[0], b[0]); x++ {
		for y := min(a[1], b[1]); y <= max(a[1], b[1]); y++ {
			for z := min(a[2], b[2]); z <= max(a[2], b[2]); z++ {
				w.blocks[cube.Pos{x, y, z}] = blk
			}
		}
	}
}

// Block returns the block at the position and true, or false if the position holds air.
func (w *World) Block(pos cube.Pos) (Block, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.blocks[pos]
	return b, ok
}

func (w *World) IsOnGround(box cube.BBox) bool {
	minPos := box.Min()
	below := cube.Box(
		minPos.X(), minPos.Y()-game.GroundEpsilon, minPos.Z(),
		box.Max().X(), minPos.Y(), box.Max().Z(),
	)
	return w.Collides(below, FlagSolid|FlagGround)
}

func (w *World) Collides(box cube.BBox, flags BlockFlag) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	minPos, maxPos := box.Min(), box.Max()
	for x := floor(minPos.X()); x <= floor(maxPos.X()); x++ {
		for y := floor(minPos.Y()); y <= floor(maxPos.Y()); y++ {
			for z := floor(minPos.Z()); z <= floor(maxPos.Z()); z++ {
				b, ok := w.blocks[cube.Pos{x, y, z}]
				if !ok || b.Flags&flags == 0 {
					continue
				}
				origin := mgl64.Vec3{float64(x), float64(y), float64(z)}
				for _, bb := range b.boxes() {
					if bb.Translate(origin).IntersectsWith(box) {
						return true
					}
				}
			}
		}
	}
	return false
}

func (w *World) LiquidHeightAt(x, y, z int) float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if b, ok := w.blocks[cube.Pos{x, y, z}]; ok && b.Flags&FlagLiquid != 0 {
		return b.LiquidHeight
	}
	return 0
}

func floor(v float64) int {
	return int(math.Floor(v))
}
