package detection

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/moveguard/player"
)

// HoverA counts consecutive airborne moves that do not move vertically. The envelope accepts any such
// move on its own, so sustained hovering is only visible over time.
type HoverA struct {
	mPlayer  *player.Player
	metadata *player.DetectionMetadata

	ticks int
}

func New_HoverA(p *player.Player) *HoverA {
	return &HoverA{
		mPlayer: p,
		metadata: &player.DetectionMetadata{
			FailBuffer: 1,
			MaxBuffer:  1,
		},
	}
}

func (*HoverA) Type() string {
	return TypeHover
}

func (*HoverA) SubType() string {
	return "A"
}

func (*HoverA) Description() string {
	return "Checks if a player stays in the air without falling."
}

func (*HoverA) Punishable() bool {
	return true
}

func (d *HoverA) Metadata() *player.DetectionMetadata {
	return d.metadata
}

// Ticks returns the amount of consecutive airborne moves without vertical movement.
func (d *HoverA) Ticks() int {
	return d.ticks
}

func (d *HoverA) Detect(ctx *player.MoveContext) {
	if ctx.Move == nil {
		return
	}
	to := ctx.Move.To
	if to.OnGround() || to.ResetCondition() || !ctx.Model.Gravity() || ctx.Move.VerticalDistance != 0 {
		d.ticks = 0
		d.mPlayer.PassDetection(d, 1)
		return
	}

	d.ticks++
	if limit := d.mPlayer.Settings().Physics.HoverTicks; d.ticks > limit {
		data := orderedmap.NewOrderedMap[string, any]()
		data.Set("ticks", d.ticks)
		data.Set("limit", limit)
		if d.mPlayer.FailDetection(d, 1, data) {
			ctx.Cancel()
		}
	}
}
