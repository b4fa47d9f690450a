package game

const (
	TicksPerSecond = 20

	DefaultPlayerWidth        = 0.6
	DefaultPlayerHeight       = 1.8
	DefaultPlayerHeightOffset = 1.62

	DefaultJumpHeight       = 0.42
	JumpHeightPerLevel      = 0.1
	DefaultAirFriction      = 0.91
	NormalGravityMultiplier = 0.98
	NormalGravity           = 0.08
	StepHeight              = 0.6
	DefaultFlySpeed         = 0.05
	DefaultWalkSpeed        = 0.2

	// GroundEpsilon is how far below the feet a bounding box is extended when searching for ground.
	GroundEpsilon = 0.001
	// HeadEpsilon is how far above the head a bounding box is extended when searching for a ceiling.
	HeadEpsilon = 0.1

	SpeedEffectMultiplier    = 0.2
	SlownessEffectMultiplier = 0.15

	BunnyHopMaxExcess = 0.3
	BunnyHopDelay     = 9
	LostGroundStep    = 0.05

	SafeFallDistance   = 3.0
	MinFallDamage      = 1.0
	FallClampThreshold = 0.05

	// SetBackHeightMargin is subtracted from the height limit when a stored set-back sits above it.
	SetBackHeightMargin = 10.0
)

const (
	MaxWorldCoordinate = 3.0e7
	MaxWorldHeight     = 2.0e7
	MaxPitch           = 90.0
)
