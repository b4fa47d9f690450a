// Package java adapts Java Edition movement packets, as decoded by go-mc, to the engine.
package java

import (
	"bytes"

	"github.com/Tnze/go-mc/data/packetid"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/moveguard/oerror"
	"github.com/oomph-ac/moveguard/protocol"
)

const (
	flagOnGround            = 0x01
	flagHorizontalCollision = 0x02
)

// Capabilities returns the protocol capabilities of the Java protocol revision passed.
func Capabilities(protocolVersion int32) protocol.Capabilities {
	return protocol.Resolve(protocol.EditionJava, protocolVersion)
}

// Handles returns true if the packet is one Decode understands.
func Handles(p pk.Packet) bool {
	switch packetid.ServerboundPacketID(p.ID) {
	case packetid.ServerboundAcceptTeleportation,
		packetid.ServerboundMovePlayerPos,
		packetid.ServerboundMovePlayerPosRot,
		packetid.ServerboundMovePlayerRot,
		packetid.ServerboundMovePlayerStatusOnly:
		return true
	}
	return false
}

// Decode converts a serverbound movement or teleport confirmation packet into a RawUpdate. Packets
// that are cut short are reported as ErrMalformedPacket.
func Decode(p pk.Packet, caps protocol.Capabilities) (protocol.RawUpdate, error) {
	var (
		x, y, z    pk.Double
		yaw, pitch pk.Float
		pos        *mgl64.Vec3
		look       *[2]float32
		err        error
	)
	ground := groundField(caps)

	switch packetid.ServerboundPacketID(p.ID) {
	case packetid.ServerboundAcceptTeleportation:
		var id pk.VarInt
		if _, err := id.ReadFrom(bytes.NewReader(p.Data)); err != nil {
			return protocol.RawUpdate{}, oerror.Wrap(oerror.ErrMalformedPacket, "teleport confirmation: %v", err)
		}
		return protocol.Confirmation(int64(id)), nil
	case packetid.ServerboundMovePlayerPos:
		err = p.Scan(&x, &y, &z, ground)
		pos = &mgl64.Vec3{float64(x), float64(y), float64(z)}
	case packetid.ServerboundMovePlayerPosRot:
		err = p.Scan(&x, &y, &z, &yaw, &pitch, ground)
		pos = &mgl64.Vec3{float64(x), float64(y), float64(z)}
		look = &[2]float32{float32(yaw), float32(pitch)}
	case packetid.ServerboundMovePlayerRot:
		err = p.Scan(&yaw, &pitch, ground)
		look = &[2]float32{float32(yaw), float32(pitch)}
	case packetid.ServerboundMovePlayerStatusOnly:
		err = p.Scan(ground)
	default:
		return protocol.RawUpdate{}, oerror.Wrap(oerror.ErrMalformedPacket, "packet 0x%02x is not a movement packet", p.ID)
	}
	if err != nil {
		return protocol.RawUpdate{}, oerror.Wrap(oerror.ErrMalformedPacket, "packet 0x%02x: %v", p.ID, err)
	}
	onGround, collision := ground.values()
	return protocol.Movement(caps, onGround, collision, pos, look), nil
}

// Relocation encodes a ClientboundPlayerPosition packet moving the client to the position and
// rotation passed. The client confirms it with the teleport ID.
func Relocation(pos mgl64.Vec3, yaw, pitch float32, teleportID int64) pk.Packet {
	var buf bytes.Buffer
	fields := []pk.FieldEncoder{
		pk.Double(pos[0]),
		pk.Double(pos[1]),
		pk.Double(pos[2]),
		pk.Float(yaw),
		pk.Float(pitch),
		// Absolute coordinates.
		pk.Byte(0),
		pk.VarInt(teleportID),
	}
	for _, f := range fields {
		// Writing to a bytes.Buffer never fails.
		_, _ = f.WriteTo(&buf)
	}
	return pk.Packet{ID: int32(packetid.ClientboundPlayerPosition), Data: buf.Bytes()}
}

// groundDecoder reads the on-ground state of a movement packet, which is a single boolean before
// the movement flags revision and a flags byte from it onwards.
type groundDecoder interface {
	pk.FieldDecoder
	values() (onGround, collision bool)
}

func groundField(caps protocol.Capabilities) groundDecoder {
	if caps.CollisionFlag {
		return new(flagsField)
	}
	return new(boolField)
}

type boolField struct{ pk.Boolean }

func (b *boolField) values() (bool, bool) { return bool(b.Boolean), false }

type flagsField struct{ pk.UnsignedByte }

func (f *flagsField) values() (bool, bool) {
	return f.UnsignedByte&flagOnGround != 0, f.UnsignedByte&flagHorizontalCollision != 0
}
