package level

// PerSize holds a value for each enemy size level. Size level 3 is the
// largest, slowest shape; size level 1 is terminal and never splits.
type PerSize struct {
	Small  float64 // size level 1
	Medium float64 // size level 2
	Large  float64 // size level 3
}

// ForLevel returns the value for a size level, clamping out-of-range levels
// to the nearest declared size.
func (p PerSize) ForLevel(sizeLevel int) float64 {
	switch {
	case sizeLevel <= 1:
		return p.Small
	case sizeLevel == 2:
		return p.Medium
	default:
		return p.Large
	}
}

// BaseConfig carries the physics and sizing constants shared by every level
// before script overrides apply. Velocities are pixels/second, accelerations
// pixels/second².
type BaseConfig struct {
	ScreenWidth  float64
	ScreenHeight float64
	FloorY       float64

	Gravity       float64
	FloorBounce   float64
	WallBounce    float64
	CeilingBounce float64

	MinBounceVelocity     float64
	MinHorizontalVelocity float64

	// SpawnVelocityVariation bounds the random spread added to the per-size
	// horizontal spawn speed.
	SpawnVelocityVariation float64

	SplitOffset    float64
	SplitVelocityX float64
	SplitVelocityY float64

	SpeedBySize  PerSize
	SizeBySize   PerSize
	PointsBySize PerSize

	ProjectileSpeed        float64
	ProjectileWidth        float64
	ProjectileHeight       float64
	MaxActiveProjectiles   int
	CullProjectilesAtWalls bool

	AvatarWidth  float64
	AvatarHeight float64
}

// DefaultBaseConfig returns the tuning the arcade mode ships with.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		ScreenWidth:  800,
		ScreenHeight: 600,
		FloorY:       600,

		Gravity:       900,
		FloorBounce:   0.85,
		WallBounce:    0.95,
		CeilingBounce: 0.5,

		MinBounceVelocity:     120,
		MinHorizontalVelocity: 40,

		SpawnVelocityVariation: 15,

		SplitOffset:    18,
		SplitVelocityX: 140,
		SplitVelocityY: -220,

		SpeedBySize:  PerSize{Small: 90, Medium: 70, Large: 50},
		SizeBySize:   PerSize{Small: 28, Medium: 44, Large: 64},
		PointsBySize: PerSize{Small: 30, Medium: 20, Large: 10},

		ProjectileSpeed:      520,
		ProjectileWidth:      10,
		ProjectileHeight:     24,
		MaxActiveProjectiles: 2,

		AvatarWidth:  36,
		AvatarHeight: 48,
	}
}
