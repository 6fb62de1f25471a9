package level

import "sync"

// Overrides are the optional per-level balance knobs. Every multiplier field
// multiplies the matching base value when present; nil means "leave the base
// alone". A present zero is honoured (it legally disables gravity or bounce),
// which is why the fields are pointers rather than zero-defaulted floats.
// WindForce is not a multiplier: when present it replaces the base of 0 with an
// absolute horizontal acceleration.
type Overrides struct {
	GravityMultiplier           *float64 `yaml:"gravityMultiplier" json:"gravityMultiplier,omitempty"`
	BounceMultiplier            *float64 `yaml:"bounceMultiplier" json:"bounceMultiplier,omitempty"`
	MinBounceVelocityMultiplier *float64 `yaml:"minBounceVelocityMultiplier" json:"minBounceVelocityMultiplier,omitempty"`
	EnemySpeedMultiplier        *float64 `yaml:"enemySpeedMultiplier" json:"enemySpeedMultiplier,omitempty"`
	EnemySizeMultiplier         *float64 `yaml:"enemySizeMultiplier" json:"enemySizeMultiplier,omitempty"`
	SpawnVelocityMultiplier     *float64 `yaml:"spawnVelocityMultiplier" json:"spawnVelocityMultiplier,omitempty"`
	SplitVelocityMultiplier     *float64 `yaml:"splitVelocityMultiplier" json:"splitVelocityMultiplier,omitempty"`
	ProjectileSpeedMultiplier   *float64 `yaml:"projectileSpeedMultiplier" json:"projectileSpeedMultiplier,omitempty"`
	PointsMultiplier            *float64 `yaml:"pointsMultiplier" json:"pointsMultiplier,omitempty"`
	WindForce                   *float64 `yaml:"windForce" json:"windForce,omitempty"`
}

// EffectiveConfig is the immutable per-level snapshot every other component
// consumes. It mirrors BaseConfig with overrides applied, plus the resolved
// wind force.
type EffectiveConfig struct {
	ScreenWidth  float64
	ScreenHeight float64
	FloorY       float64

	Gravity       float64
	WindForce     float64
	FloorBounce   float64
	WallBounce    float64
	CeilingBounce float64

	MinBounceVelocity     float64
	MinHorizontalVelocity float64

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

func mul(base float64, multiplier *float64) float64 {
	if multiplier == nil {
		return base
	}
	return base * *multiplier
}

func mulPerSize(base PerSize, multiplier *float64) PerSize {
	return PerSize{
		Small:  mul(base.Small, multiplier),
		Medium: mul(base.Medium, multiplier),
		Large:  mul(base.Large, multiplier),
	}
}

// Resolve overlays per-level overrides on the base constants. It is pure:
// the same inputs always produce the same EffectiveConfig and neither argument
// is mutated, so results may be cached by level ID.
func Resolve(base BaseConfig, o Overrides) EffectiveConfig {
	cfg := EffectiveConfig{
		ScreenWidth:  base.ScreenWidth,
		ScreenHeight: base.ScreenHeight,
		FloorY:       base.FloorY,

		Gravity:       mul(base.Gravity, o.GravityMultiplier),
		FloorBounce:   mul(base.FloorBounce, o.BounceMultiplier),
		WallBounce:    mul(base.WallBounce, o.BounceMultiplier),
		CeilingBounce: mul(base.CeilingBounce, o.BounceMultiplier),

		MinBounceVelocity:     mul(base.MinBounceVelocity, o.MinBounceVelocityMultiplier),
		MinHorizontalVelocity: base.MinHorizontalVelocity,

		SpawnVelocityVariation: mul(base.SpawnVelocityVariation, o.SpawnVelocityMultiplier),

		SplitOffset:    base.SplitOffset,
		SplitVelocityX: mul(base.SplitVelocityX, o.SplitVelocityMultiplier),
		SplitVelocityY: mul(base.SplitVelocityY, o.SplitVelocityMultiplier),

		SpeedBySize:  mulPerSize(base.SpeedBySize, o.EnemySpeedMultiplier),
		SizeBySize:   mulPerSize(base.SizeBySize, o.EnemySizeMultiplier),
		PointsBySize: mulPerSize(base.PointsBySize, o.PointsMultiplier),

		ProjectileSpeed:        mul(base.ProjectileSpeed, o.ProjectileSpeedMultiplier),
		ProjectileWidth:        base.ProjectileWidth,
		ProjectileHeight:       base.ProjectileHeight,
		MaxActiveProjectiles:   base.MaxActiveProjectiles,
		CullProjectilesAtWalls: base.CullProjectilesAtWalls,

		AvatarWidth:  base.AvatarWidth,
		AvatarHeight: base.AvatarHeight,
	}
	if o.WindForce != nil {
		cfg.WindForce = *o.WindForce
	}
	return cfg
}

// PointsForSize returns the rounded score value for destroying an enemy of
// the given size level.
func (c EffectiveConfig) PointsForSize(sizeLevel int) int {
	return int(c.PointsBySize.ForLevel(sizeLevel) + 0.5)
}

// ConfigCache memoizes resolved configurations by level ID. Resolve is pure,
// so a cached entry never goes stale while the base constants stand.
type ConfigCache struct {
	mu      sync.Mutex
	base    BaseConfig
	entries map[string]EffectiveConfig
}

func NewConfigCache(base BaseConfig) *ConfigCache {
	return &ConfigCache{
		base:    base,
		entries: make(map[string]EffectiveConfig),
	}
}

// For resolves (or returns the memoized) configuration for a descriptor.
func (c *ConfigCache) For(d *Descriptor) EffectiveConfig {
	if c == nil {
		return Resolve(DefaultBaseConfig(), Overrides{})
	}
	if d == nil {
		return Resolve(c.base, Overrides{})
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if d.ID != "" {
		if cached, ok := c.entries[d.ID]; ok {
			return cached
		}
	}
	resolved := Resolve(c.base, d.Overrides)
	if d.ID != "" {
		c.entries[d.ID] = resolved
	}
	return resolved
}
