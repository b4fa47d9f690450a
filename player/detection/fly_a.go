package detection

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/player"
)

type FlyA struct {
	mPlayer  *player.Player
	metadata *player.DetectionMetadata
}

func New_FlyA(p *player.Player) *FlyA {
	return &FlyA{
		mPlayer: p,
		metadata: &player.DetectionMetadata{
			FailBuffer: 1,
			MaxBuffer:  1,
		},
	}
}

func (*FlyA) Type() string {
	return TypeFly
}

func (*FlyA) SubType() string {
	return "A"
}

func (*FlyA) Description() string {
	return "Checks if a player ascends higher than its movement model allows."
}

func (*FlyA) Punishable() bool {
	return true
}

func (d *FlyA) Metadata() *player.DetectionMetadata {
	return d.metadata
}

func (d *FlyA) Detect(ctx *player.MoveContext) {
	if ctx.Move == nil {
		return
	}
	if ctx.Result.ExcessV <= 0 {
		d.mPlayer.PassDetection(d, 1)
		return
	}

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("yDist", game.Round64(ctx.Move.VerticalDistance, 4))
	data.Set("limit", game.Round64(ctx.Result.LimitV, 4))
	data.Set("model", ctx.Model.Key())
	if d.mPlayer.FailDetection(d, 100*ctx.Result.ExcessV, data) {
		ctx.Cancel()
	}
}
