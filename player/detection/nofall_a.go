package detection

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/player"
)

type NoFallA struct {
	mPlayer  *player.Player
	metadata *player.DetectionMetadata
}

func New_NoFallA(p *player.Player) *NoFallA {
	return &NoFallA{
		mPlayer: p,
		metadata: &player.DetectionMetadata{
			FailBuffer: 1,
			MaxBuffer:  1,
		},
	}
}

func (*NoFallA) Type() string {
	return TypeNoFall
}

func (*NoFallA) SubType() string {
	return "A"
}

func (*NoFallA) Description() string {
	return "Checks if a player claims to be on the ground in the middle of a fall."
}

func (*NoFallA) Punishable() bool {
	return true
}

func (d *NoFallA) Metadata() *player.DetectionMetadata {
	return d.metadata
}

func (d *NoFallA) Detect(ctx *player.MoveContext) {
	if ctx.Move == nil || !ctx.Endpoint.OnGround || ctx.Move.To.GroundOrReset() {
		return
	}
	dist := d.mPlayer.Fall().Distance()
	if dist <= d.mPlayer.Settings().Fall.SafeDistance {
		return
	}

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("fallDist", game.Round64(dist, 3))
	data.Set("y", game.Round64(ctx.Move.To.Y(), 3))
	if d.mPlayer.FailDetection(d, 1, data) {
		ctx.Cancel()
	}
}
