package detection

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/moveguard/game"
	"github.com/oomph-ac/moveguard/player"
)

type TimerA struct {
	mPlayer  *player.Player
	metadata *player.DetectionMetadata
}

func New_TimerA(p *player.Player) *TimerA {
	return &TimerA{
		mPlayer: p,
		metadata: &player.DetectionMetadata{
			FailBuffer: 2,
			MaxBuffer:  4,
		},
	}
}

func (*TimerA) Type() string {
	return TypeTimer
}

func (*TimerA) SubType() string {
	return "A"
}

func (*TimerA) Description() string {
	return "Checks if a player sends movement updates faster than the game allows."
}

func (*TimerA) Punishable() bool {
	return true
}

func (d *TimerA) Metadata() *player.DetectionMetadata {
	return d.metadata
}

func (d *TimerA) Detect(ctx *player.MoveContext) {
	if ctx.Move == nil {
		return
	}
	f := d.mPlayer.Frequency()
	phys := d.mPlayer.Settings().Physics
	score := f.Score(ctx.Now, 1)
	limit := phys.MaxPacketsPerSecond*float64(f.Window())/1000 + phys.PacketBurst

	d.mPlayer.Dbg.Notify(player.DebugModeTimer, true, "packets=%.1f limit=%.1f", score, limit)
	if score <= limit {
		d.mPlayer.PassDetection(d, 0.25)
		return
	}

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("packets", game.Round64(score, 1))
	data.Set("limit", game.Round64(limit, 1))
	if d.mPlayer.FailDetection(d, score-limit, data) {
		ctx.Cancel()
	}
}
