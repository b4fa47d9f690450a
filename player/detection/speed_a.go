package detection

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/player"
)

type SpeedA struct {
	mPlayer  *player.Player
	metadata *player.DetectionMetadata
}

func New_SpeedA(p *player.Player) *SpeedA {
	return &SpeedA{
		mPlayer: p,
		metadata: &player.DetectionMetadata{
			FailBuffer: 1,
			MaxBuffer:  1,
		},
	}
}

func (*SpeedA) Type() string {
	return TypeSpeed
}

func (*SpeedA) SubType() string {
	return "A"
}

func (*SpeedA) Description() string {
	return "Checks if a player moves further horizontally than its movement model allows."
}

func (*SpeedA) Punishable() bool {
	return true
}

func (d *SpeedA) Metadata() *player.DetectionMetadata {
	return d.metadata
}

func (d *SpeedA) Detect(ctx *player.MoveContext) {
	if ctx.Move == nil {
		return
	}
	if ctx.Result.ExcessH <= 0 {
		d.mPlayer.PassDetection(d, 1)
		return
	}

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("dist", game.Round64(ctx.Move.HorizontalDistance, 4))
	data.Set("limit", game.Round64(ctx.Result.LimitH, 4))
	data.Set("model", ctx.Model.Key())
	if d.mPlayer.FailDetection(d, 100*ctx.Result.ExcessH, data) {
		ctx.Cancel()
	}
}
