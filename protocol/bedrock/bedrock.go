// Package bedrock adapts Bedrock Edition packets, as decoded by gophertunnel, to the engine.
package bedrock

import (
	"time"

	"github.com/df-mc/dragonfly/server/entity/effect"
	dfworld "github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/protocol"
	"github.com/oomph-ac/moveguard/settings"
	"github.com/oomph-ac/moveguard/utils"
	"github.com/oomph-ac/moveguard/world"
	gtprotocol "github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
)

const (
	// EyeHeight is the offset between the position a Bedrock client reports and its feet.
	EyeHeight = 1.62
	// AckDivider is the factor clients multiply NetworkStackLatency timestamps with before echoing them.
	AckDivider = 1_000
)

// Capabilities returns the protocol capabilities of the Bedrock protocol revision passed.
func Capabilities(protocolVersion int32) protocol.Capabilities {
	return protocol.Resolve(protocol.EditionBedrock, protocolVersion)
}

// DecodeMovement converts a MovePlayer packet sent by the client into a RawUpdate. Bedrock clients always
// send both their position and rotation.
func DecodeMovement(pk *packet.MovePlayer, caps protocol.Capabilities) protocol.RawUpdate {
	pos := mgl64.Vec3{float64(pk.Position[0]), float64(pk.Position[1]) - EyeHeight, float64(pk.Position[2])}
	look := [2]float32{pk.Yaw, pk.Pitch}
	return protocol.Movement(caps, pk.OnGround, false, &pos, &look)
}

// DecodeAck converts the response to a NetworkStackLatency sent with a relocation into a confirmation.
// Clients on PlayStation echo the timestamp multiplied once, all other clients twice.
func DecodeAck(pk *packet.NetworkStackLatency, os gtprotocol.DeviceOS) protocol.RawUpdate {
	id := pk.Timestamp / AckDivider
	if os != gtprotocol.DeviceOrbis {
		id /= AckDivider
	}
	return protocol.Confirmation(id)
}

// Relocation returns the packets that move the client to the target of the relocation. The
// NetworkStackLatency that follows the teleport is answered once the client has applied it.
func Relocation(runtimeID uint64, rel player.Relocation) []packet.Packet {
	pos := rel.Target.Position
	return []packet.Packet{
		&packet.MovePlayer{
			EntityRuntimeID: runtimeID,
			Position:        mgl32.Vec3{float32(pos[0]), float32(pos[1] + EyeHeight), float32(pos[2])},
			Pitch:           rel.Target.Pitch,
			Yaw:             rel.Target.Yaw,
			HeadYaw:         rel.Target.Yaw,
			Mode:            packet.MoveModeTeleport,
		},
		&packet.NetworkStackLatency{Timestamp: rel.ID, NeedsResponse: true},
	}
}

// ApplyServer updates the player with a packet the server is about to send to it. The packets returned
// must be sent to the client after it.
func ApplyServer(p *player.Player, runtimeID uint64, pk packet.Packet) []packet.Packet {
	switch pk := pk.(type) {
	case *packet.SetPlayerGameType:
		p.SetGameMode(gameMode(pk.GameType))
	case *packet.UpdateAbilities:
		for _, l := range pk.AbilityData.Layers {
			p.SetMayFly(utils.HasFlag(uint64(l.Values), gtprotocol.AbilityMayFly))
			p.SetFlying(utils.HasFlag(uint64(l.Values), gtprotocol.AbilityFlying))
			p.SetFlySpeed(float64(l.FlySpeed))
		}
	case *packet.MobEffect:
		if pk.EntityRuntimeID != runtimeID {
			return nil
		}
		switch pk.Operation {
		case packet.MobEffectAdd, packet.MobEffectModify:
			t, ok := effect.ByID(int(pk.EffectType))
			if !ok {
				return nil
			}
			e, ok := t.(effect.LastingType)
			if !ok {
				return nil
			}
			p.AddEffect(effect.New(e, int(pk.Amplifier)+1, time.Duration(pk.Duration*50)*time.Millisecond))
		case packet.MobEffectRemove:
			if t, ok := effect.ByID(int(pk.EffectType)); ok {
				p.RemoveEffect(t)
			}
		}
	case *packet.MovePlayer:
		if pk.EntityRuntimeID != runtimeID || pk.Mode == packet.MoveModeRotation {
			return nil
		}
		// The world is left empty so the player stays in its current one.
		rel := p.Teleport(player.Location{
			Position: mgl64.Vec3{float64(pk.Position[0]), float64(pk.Position[1]) - EyeHeight, float64(pk.Position[2])},
			Yaw:      pk.Yaw,
			Pitch:    pk.Pitch,
		})
		return []packet.Packet{&packet.NetworkStackLatency{Timestamp: rel.ID, NeedsResponse: true}}
	case *packet.Respawn:
		if pk.EntityRuntimeID != runtimeID || pk.State != packet.RespawnStateReadyToSpawn {
			return nil
		}
		rel := p.Respawn(player.Location{Position: vec64(pk.Position)})
		return []packet.Packet{&packet.NetworkStackLatency{Timestamp: rel.ID, NeedsResponse: true}}
	case *packet.ChangeDimension:
		name, ok := worldOf(p.Settings(), pk.Dimension)
		if !ok {
			p.Log().Warnf("%s: no world configured for dimension %d", p.Name(), pk.Dimension)
			return nil
		}
		rel := p.ChangeWorld(player.Location{World: name, Position: vec64(pk.Position)})
		return []packet.Packet{&packet.NetworkStackLatency{Timestamp: rel.ID, NeedsResponse: true}}
	}
	return nil
}

// ApplyLink updates the riding state of the player with an entity link the server is about to send. Links
// between other entities are ignored.
func ApplyLink(p *player.Player, uniqueID int64, pk *packet.SetActorLink) {
	if pk.EntityLink.RiderEntityUniqueID != uniqueID {
		return
	}
	if pk.EntityLink.Type == gtprotocol.EntityLinkRemove {
		p.ExitVehicle(p.Location().Location())
		return
	}
	p.EnterVehicle()
}

// ApplyAction updates the sprinting and gliding state of the player with an action it sent.
func ApplyAction(p *player.Player, pk *packet.PlayerAction) {
	switch pk.ActionType {
	case gtprotocol.PlayerActionStartSprint:
		p.SetSprinting(true)
	case gtprotocol.PlayerActionStopSprint:
		p.SetSprinting(false)
	case gtprotocol.PlayerActionStartGlide:
		p.SetGliding(true)
	case gtprotocol.PlayerActionStopGlide:
		p.SetGliding(false)
	}
}

// worldOf returns the first world, by name, that lives in the dimension with the ID passed.
func worldOf(s settings.Settings, dimension int32) (string, bool) {
	dim, ok := dfworld.DimensionByID(int(dimension))
	if !ok {
		return "", false
	}
	var name string
	for w := range s.Worlds {
		if world.DimensionOf(s.DimensionOf(w)) == dim && (name == "" || w < name) {
			name = w
		}
	}
	return name, name != ""
}

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

func gameMode(t int32) player.GameMode {
	switch t {
	case packet.GameTypeCreative, packet.GameTypeCreativeSpectator:
		return player.GameModeCreative
	case packet.GameTypeAdventure:
		return player.GameModeAdventure
	case packet.GameTypeSpectator:
		return player.GameModeSpectator
	}
	return player.GameModeSurvival
}
