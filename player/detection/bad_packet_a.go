package detection

import (
	"errors"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/player"
)

type BadPacketA struct {
	mPlayer  *player.Player
	metadata *player.DetectionMetadata
}

func New_BadPacketA(p *player.Player) *BadPacketA {
	return &BadPacketA{
		mPlayer: p,
		metadata: &player.DetectionMetadata{
			FailBuffer: 1,
			MaxBuffer:  1,
		},
	}
}

func (*BadPacketA) Type() string {
	return TypeBadPacket
}

func (*BadPacketA) SubType() string {
	return "A"
}

func (*BadPacketA) Description() string {
	return "Checks if a player sends non-finite or out of bounds coordinates."
}

func (*BadPacketA) Punishable() bool {
	return true
}

func (d *BadPacketA) Metadata() *player.DetectionMetadata {
	return d.metadata
}

func (d *BadPacketA) Detect(ctx *player.MoveContext) {
	if !errors.Is(ctx.Err, oerror.ErrInvalidContent) {
		return
	}
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("err", ctx.Err.Error())
	d.mPlayer.FailDetection(d, 1, data)
}
