// Package level defines the declarative level script consumed by the
// simulation: wave schedules, spawn definitions, physics overrides, and the
// overlay that resolves them into one effective configuration.
package level

import "fmt"

// EnemyType is the closed set of enemy archetypes a script may reference.
// Unknown strings fail validation instead of falling back to a default.
type EnemyType string

const (
	EnemyBasic  EnemyType = "basic"
	EnemyFast   EnemyType = "fast"
	EnemyStrong EnemyType = "strong"
)

// SpeedMultiplier returns the horizontal speed scale for the archetype. The
// switch is exhaustive over the declared constants.
func (t EnemyType) SpeedMultiplier() float64 {
	switch t {
	case EnemyBasic:
		return 1.0
	case EnemyFast:
		return 1.5
	case EnemyStrong:
		return 0.8
	}
	return 1.0
}

// Known reports whether the archetype is part of the closed set.
func (t EnemyType) Known() bool {
	switch t {
	case EnemyBasic, EnemyFast, EnemyStrong:
		return true
	}
	return false
}

// ParseEnemyType validates a script string into an EnemyType.
func ParseEnemyType(raw string) (EnemyType, error) {
	t := EnemyType(raw)
	if !t.Known() {
		return "", fmt.Errorf("unknown enemy type %q", raw)
	}
	return t, nil
}

// Pattern names a horizontal spawn layout. Fractions are of screen width.
type Pattern string

const (
	PatternTwoPoint       Pattern = "two-point"
	PatternThreePointWide Pattern = "three-point-wide"
	PatternColumns        Pattern = "columns"
	PatternFivePoint      Pattern = "five-point"
	PatternEdges          Pattern = "edges"
)

// Fractions returns the repeating horizontal placement cycle for the pattern.
func (p Pattern) Fractions() []float64 {
	switch p {
	case PatternTwoPoint:
		return []float64{0.25, 0.75}
	case PatternThreePointWide:
		return []float64{0.1, 0.5, 0.9}
	case PatternColumns:
		return []float64{0.125, 0.375, 0.625, 0.875}
	case PatternFivePoint:
		return []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	case PatternEdges:
		return []float64{0.05, 0.95}
	}
	return nil
}

// Known reports whether the pattern is one of the named layouts.
func (p Pattern) Known() bool {
	return p.Fractions() != nil
}

// SplitBehavior tunes how an enemy is replaced by children when hit.
type SplitBehavior struct {
	SplitInto          int     `yaml:"splitInto" json:"splitInto,omitempty" jsonschema:"minimum=1,description=Number of children a hit enemy splits into"`
	ChildSizeReduction float64 `yaml:"childSizeReduction" json:"childSizeReduction,omitempty" jsonschema:"description=Child bounding box scale relative to the parent"`
	ChildSpeedBonus    float64 `yaml:"childSpeedBonus" json:"childSpeedBonus,omitempty" jsonschema:"description=Child split velocity scale"`
}

// DefaultSplitBehavior matches the classic two-way split.
func DefaultSplitBehavior() SplitBehavior {
	return SplitBehavior{
		SplitInto:          2,
		ChildSizeReduction: 0.7,
		ChildSpeedBonus:    1.1,
	}
}

// withDefaults fills zero fields so partial script entries stay usable.
func (b SplitBehavior) withDefaults() SplitBehavior {
	defaults := DefaultSplitBehavior()
	if b.SplitInto <= 0 {
		b.SplitInto = defaults.SplitInto
	}
	if b.ChildSizeReduction <= 0 {
		b.ChildSizeReduction = defaults.ChildSizeReduction
	}
	if b.ChildSpeedBonus <= 0 {
		b.ChildSpeedBonus = defaults.ChildSpeedBonus
	}
	return b
}
