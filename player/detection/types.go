package detection

const (
	TypeSpeed     = "Speed"
	TypeFly       = "Fly"
	TypeHover     = "Hover"
	TypeNoFall    = "NoFall"
	TypeTimer     = "Timer"
	TypeBadPacket = "BadPacket"
)
