package bedrock

import (
	"math"
	"testing"

	"github.com/df-mc/dragonfly/server/entity/effect"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/player/component"
	"github.com/oomph-ac/moveguard/player/movement"
	"github.com/oomph-ac/moveguard/protocol"
	"github.com/oomph-ac/moveguard/settings"
	gtprotocol "github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
)

const runtimeID = 1

func newPlayer(t *testing.T) *player.Player {
	t.Helper()
	s := settings.DefaultSettings()
	models, err := movement.BuildModels(s)
	if err != nil {
		t.Fatalf("failed to build models: %v", err)
	}
	p := player.New(uuid.New(), player.Config{
		Settings:     s,
		Models:       models,
		Capabilities: Capabilities(766),
		World:        "world",
	})
	component.Register(p)
	p.Spawn(player.Location{World: "world", Position: mgl64.Vec3{0, 64, 0}})
	return p
}

func TestDecodeMovement(t *testing.T) {
	caps := Capabilities(766)
	raw := DecodeMovement(&packet.MovePlayer{
		Position: mgl32.Vec3{1, 65.62, 3},
		Yaw:      90,
		Pitch:    -10,
		OnGround: true,
	}, caps)

	e, err := protocol.Interpret(raw, caps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.OnGround || !e.HasPosition || !e.HasLook {
		t.Fatalf("unexpected endpoint %+v", e)
	}
	if math.Abs(e.Position[1]-64) > 1e-4 {
		t.Fatalf("expected the feet to be at y=64, got %f", e.Position[1])
	}
	if e.Yaw != 90 || e.Pitch != -10 {
		t.Fatalf("unexpected rotation %f, %f", e.Yaw, e.Pitch)
	}
}

func TestDecodeAck(t *testing.T) {
	raw := DecodeAck(&packet.NetworkStackLatency{Timestamp: 7 * AckDivider * AckDivider}, gtprotocol.DeviceAndroid)
	if raw.Kind != protocol.KindConfirmation || raw.ConfirmID != 7 {
		t.Fatalf("expected a confirmation of 7, got %+v", raw)
	}
	raw = DecodeAck(&packet.NetworkStackLatency{Timestamp: 7 * AckDivider}, gtprotocol.DeviceOrbis)
	if raw.ConfirmID != 7 {
		t.Fatalf("expected a confirmation of 7, got %d", raw.ConfirmID)
	}
}

func TestRelocation(t *testing.T) {
	pks := Relocation(runtimeID, player.Relocation{ID: 3, Target: player.Location{Position: mgl64.Vec3{1, 64, 1}}})
	if len(pks) != 2 {
		t.Fatalf("expected 2 packets, got %d", len(pks))
	}
	mv, ok := pks[0].(*packet.MovePlayer)
	if !ok || mv.Mode != packet.MoveModeTeleport || mv.Position[1] != float32(64+EyeHeight) {
		t.Fatalf("unexpected teleport %+v", pks[0])
	}
	if ack, ok := pks[1].(*packet.NetworkStackLatency); !ok || ack.Timestamp != 3 || !ack.NeedsResponse {
		t.Fatalf("unexpected latency packet %+v", pks[1])
	}
}

func TestApplyServer(t *testing.T) {
	p := newPlayer(t)

	ApplyServer(p, runtimeID, &packet.SetPlayerGameType{GameType: packet.GameTypeSpectator})
	if p.GameMode() != player.GameModeSpectator {
		t.Fatalf("expected spectator, got %s", p.GameMode())
	}

	ApplyServer(p, runtimeID, &packet.MobEffect{
		EntityRuntimeID: runtimeID,
		Operation:       packet.MobEffectAdd,
		EffectType:      packet.EffectJumpBoost,
		Amplifier:       1,
		Duration:        200,
	})
	if lvl := p.Effects().Level(effect.JumpBoost); lvl != 2 {
		t.Fatalf("expected jump boost level 2, got %d", lvl)
	}
	ApplyServer(p, runtimeID, &packet.MobEffect{
		EntityRuntimeID: runtimeID + 1,
		Operation:       packet.MobEffectRemove,
		EffectType:      packet.EffectJumpBoost,
	})
	if lvl := p.Effects().Level(effect.JumpBoost); lvl != 2 {
		t.Fatalf("an effect of another entity was removed")
	}

	out := ApplyServer(p, runtimeID, &packet.MovePlayer{
		EntityRuntimeID: runtimeID,
		Position:        mgl32.Vec3{10, 71.62, 10},
		Mode:            packet.MoveModeTeleport,
	})
	if len(out) != 1 {
		t.Fatalf("expected a latency packet after the teleport, got %d packets", len(out))
	}
	if p.ACKs().State() != player.AckPending {
		t.Fatalf("expected the teleport to be pending")
	}
}

func TestApplyAction(t *testing.T) {
	p := newPlayer(t)
	ApplyAction(p, &packet.PlayerAction{ActionType: gtprotocol.PlayerActionStartGlide})
	if !p.Gliding() {
		t.Fatalf("expected the player to be gliding")
	}
	ApplyAction(p, &packet.PlayerAction{ActionType: gtprotocol.PlayerActionStopGlide})
	ApplyAction(p, &packet.PlayerAction{ActionType: gtprotocol.PlayerActionStartSprint})
	if p.Gliding() || !p.Sprinting() {
		t.Fatalf("expected the player to be sprinting without gliding")
	}
}

func TestApplyServerLifecycle(t *testing.T) {
	p := newPlayer(t)

	out := ApplyServer(p, runtimeID, &packet.Respawn{
		EntityRuntimeID: runtimeID,
		Position:        mgl32.Vec3{5, 70, 5},
		State:           packet.RespawnStateSearchingForSpawn,
	})
	if out != nil {
		t.Fatalf("expected a respawn that is not ready to be ignored")
	}
	out = ApplyServer(p, runtimeID, &packet.Respawn{
		EntityRuntimeID: runtimeID,
		Position:        mgl32.Vec3{5, 70, 5},
		State:           packet.RespawnStateReadyToSpawn,
	})
	if len(out) != 1 {
		t.Fatalf("expected a latency packet after the respawn, got %d packets", len(out))
	}
	if loc, ok := p.CurrentSetBack(); !ok || loc.Position != (mgl64.Vec3{5, 70, 5}) || loc.World != "world" {
		t.Fatalf("expected the set-back to move to the respawn point, got %s", loc)
	}

	out = ApplyServer(p, runtimeID, &packet.ChangeDimension{Dimension: 1, Position: mgl32.Vec3{0, 40, 0}})
	if len(out) != 1 {
		t.Fatalf("expected a latency packet after the dimension change, got %d packets", len(out))
	}
	if w := p.Location().World(); w != "world_nether" {
		t.Fatalf("expected the player to be in world_nether, got %q", w)
	}
}

func TestApplyLink(t *testing.T) {
	const uniqueID = 10
	p := newPlayer(t)

	ApplyLink(p, uniqueID, &packet.SetActorLink{EntityLink: gtprotocol.EntityLink{
		RiddenEntityUniqueID: 11,
		RiderEntityUniqueID:  uniqueID,
		Type:                 gtprotocol.EntityLinkRider,
	}})
	caps := p.Capabilities()
	pos := mgl64.Vec3{20, 64, 20}
	if d := p.HandleUpdate(protocol.Movement(caps, false, false, &pos, nil), 50); d.Verdict != player.VerdictAccept || d.Move != nil {
		t.Fatalf("expected the move of a riding player to be accepted without evaluation, got %+v", d)
	}

	ApplyLink(p, uniqueID, &packet.SetActorLink{EntityLink: gtprotocol.EntityLink{
		RiddenEntityUniqueID: 11,
		RiderEntityUniqueID:  uniqueID,
		Type:                 gtprotocol.EntityLinkRemove,
	}})
	pos = mgl64.Vec3{40, 64, 40}
	if d := p.HandleUpdate(protocol.Movement(caps, false, false, &pos, nil), 100); d.Move == nil || d.Score <= 0 {
		t.Fatalf("expected a teleport-sized move after dismounting to be scored, got %+v", d)
	}
}
