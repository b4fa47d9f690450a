package java

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Tnze/go-mc/data/packetid"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/protocol"
)

func encode(id packetid.ServerboundPacketID, fields ...pk.FieldEncoder) pk.Packet {
	var buf bytes.Buffer
	for _, f := range fields {
		_, _ = f.WriteTo(&buf)
	}
	return pk.Packet{ID: int32(id), Data: buf.Bytes()}
}

func TestDecodePosition(t *testing.T) {
	caps := Capabilities(340)
	p := encode(packetid.ServerboundMovePlayerPos, pk.Double(1.5), pk.Double(64), pk.Double(-2.25), pk.Boolean(true))
	if !Handles(p) {
		t.Fatalf("expected the packet to be handled")
	}

	raw, err := Decode(p, caps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, err := protocol.Interpret(raw, caps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.OnGround || !e.HasPosition || e.HasLook || e.Position != (mgl64.Vec3{1.5, 64, -2.25}) {
		t.Fatalf("unexpected endpoint %+v", e)
	}
}

func TestDecodeMovementFlags(t *testing.T) {
	caps := Capabilities(protocol.JavaMovementFlagsProtocol)
	p := encode(packetid.ServerboundMovePlayerRot, pk.Float(90), pk.Float(45), pk.UnsignedByte(flagHorizontalCollision))

	raw, err := Decode(p, caps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, err := protocol.Interpret(raw, caps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.OnGround || !e.HorizontalCollision || e.HasPosition || !e.HasLook || e.Yaw != 90 || e.Pitch != 45 {
		t.Fatalf("unexpected endpoint %+v", e)
	}
}

func TestDecodeConfirmation(t *testing.T) {
	raw, err := Decode(encode(packetid.ServerboundAcceptTeleportation, pk.VarInt(7)), Capabilities(340))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Kind != protocol.KindConfirmation || raw.ConfirmID != 7 {
		t.Fatalf("expected a confirmation of 7, got %+v", raw)
	}
}

func TestDecodeTruncated(t *testing.T) {
	p := encode(packetid.ServerboundMovePlayerPosRot, pk.Double(1), pk.Double(2))
	if _, err := Decode(p, Capabilities(340)); !errors.Is(err, oerror.ErrMalformedPacket) {
		t.Fatalf("expected ErrMalformedPacket, got %v", err)
	}
}

func TestRelocation(t *testing.T) {
	p := Relocation(mgl64.Vec3{1, 64, 3}, 90, 10, 12)
	if p.ID != int32(packetid.ClientboundPlayerPosition) {
		t.Fatalf("unexpected packet ID 0x%02x", p.ID)
	}

	var (
		x, y, z    pk.Double
		yaw, pitch pk.Float
		flags      pk.Byte
		id         pk.VarInt
	)
	if err := p.Scan(&x, &y, &z, &yaw, &pitch, &flags, &id); err != nil {
		t.Fatalf("failed to read relocation: %v", err)
	}
	if x != 1 || y != 64 || z != 3 || yaw != 90 || pitch != 10 || flags != 0 || id != 12 {
		t.Fatalf("unexpected relocation content")
	}
}
