package level

// Descriptor is the designer-authored level script. It is consumed once at
// level load: waves feed the spawner, overrides feed the config overlay, and
// mysteries schedule bonus targets.
type Descriptor struct {
	ID        string          `yaml:"id" json:"id" jsonschema:"required,description=Stable level identifier used for config caching"`
	Name      string          `yaml:"name" json:"name,omitempty"`
	Waves     []Wave          `yaml:"waves" json:"waves" jsonschema:"required"`
	Overrides Overrides       `yaml:"overrides" json:"overrides,omitempty"`
	Mysteries []MysteryScript `yaml:"mysteries" json:"mysteries,omitempty"`
}

// Wave schedules a bounded spawning window within a level.
type Wave struct {
	ID                 string     `yaml:"id" json:"id,omitempty"`
	StartOffsetSeconds float64    `yaml:"startOffsetSeconds" json:"startOffsetSeconds" jsonschema:"minimum=0"`
	DurationSeconds    float64    `yaml:"durationSeconds" json:"durationSeconds" jsonschema:"required"`
	SpawnPattern       Pattern    `yaml:"spawnPattern" json:"spawnPattern,omitempty" jsonschema:"enum=two-point,enum=three-point-wide,enum=columns,enum=five-point,enum=edges"`
	Spawns             []SpawnDef `yaml:"spawns" json:"spawns" jsonschema:"required"`
}

// SpawnDef emits one enemy archetype on an independent interval timer.
type SpawnDef struct {
	Type                    EnemyType      `yaml:"type" json:"type" jsonschema:"required,enum=basic,enum=fast,enum=strong"`
	SizeLevel               int            `yaml:"sizeLevel" json:"sizeLevel" jsonschema:"required,minimum=1,maximum=3"`
	Count                   int            `yaml:"count" json:"count" jsonschema:"required,minimum=1"`
	SpawnIntervalSeconds    float64        `yaml:"spawnIntervalSeconds" json:"spawnIntervalSeconds" jsonschema:"required"`
	MovementSpeedMultiplier float64        `yaml:"movementSpeedMultiplier" json:"movementSpeedMultiplier,omitempty"`
	Split                   *SplitBehavior `yaml:"splitBehavior" json:"splitBehavior,omitempty"`
}

// SplitOrDefault returns the definition's split behaviour with defaults
// filled, falling back entirely to the defaults when the script omitted it.
func (d SpawnDef) SplitOrDefault() SplitBehavior {
	if d.Split == nil {
		return DefaultSplitBehavior()
	}
	return d.Split.withDefaults()
}

// MysteryScript schedules one bonus target. Positions are screen fractions so
// scripts stay resolution-independent; the reward payload is opaque to the
// simulation and forwarded verbatim when the target pops.
type MysteryScript struct {
	AppearAtSeconds float64        `yaml:"appearAtSeconds" json:"appearAtSeconds" jsonschema:"minimum=0"`
	XFraction       float64        `yaml:"xFraction" json:"xFraction" jsonschema:"minimum=0,maximum=1"`
	YFraction       float64        `yaml:"yFraction" json:"yFraction" jsonschema:"minimum=0,maximum=1"`
	LifetimeSeconds float64        `yaml:"lifetimeSeconds" json:"lifetimeSeconds,omitempty"`
	Reward          map[string]any `yaml:"reward" json:"reward,omitempty"`
}

// TotalSpawnCount sums the scripted enemy count across all waves.
func (d *Descriptor) TotalSpawnCount() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, wave := range d.Waves {
		for _, def := range wave.Spawns {
			total += def.Count
		}
	}
	return total
}
