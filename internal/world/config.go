package world

// Player body.
const (
	PlayerHeight = 1.6 // eye height, also the clamped camera y
	PlayerSpeed  = 5.0 // units per second
	PlayerRadius = 0.3
)

// Arena layout.
const (
	ObjectCount          = 1000
	TargetCount          = 10
	AreaSize             = 80.0 // full side length; objects land in [-AreaSize/2, AreaSize/2]
	MinSpacing           = PlayerRadius*2 + 0.5
	MaxPlacementAttempts = 10
)

// Object sizing.
const (
	MaxBaseSizeTarget = 1.8
	MaxBaseSizeOther  = 2.2
	MinObjScale       = 0.6
	MaxObjScale       = 1.0
)

// Collision.
const (
	CollisionCheckRadius = 5.0  // horizontal broad-phase radius around the player
	PushSafety           = 1.01 // penetration push multiplier
)

// Labels.
const (
	LabelVisibilityDistance = 35.0
	LabelUpdateInterval     = 0.25 // seconds between visibility recomputes
	LabelFacingDot          = 0.75 // min cos between camera forward and target direction
	LabelRayPadding         = 1.0  // ray far = distance + padding
	LabelAnchorOffset       = 0.8  // label height above the target top
)

// Particles.
const (
	MaxParticles       = 1000
	ParticlesPerEffect = 50
	ParticleGravity    = -9.8
	ParticleMinLife    = 1.8
	ParticleMaxLife    = 2.5
)

// MaxFrameDelta bounds the simulation step after stalls.
const MaxFrameDelta = 0.1

// Colours.
var (
	TargetColor  = HexRGB(0xff0000)
	TrunkColor   = HexRGB(0x5d4037)
	FoliageColor = HexRGB(0x2e7d32)
)
