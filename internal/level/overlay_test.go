package level

import (
	"testing"

	"pgregory.net/rapid"
)

func ptr(v float64) *float64 { return &v }

func TestResolveWithoutOverridesMatchesBase(t *testing.T) {
	base := DefaultBaseConfig()
	cfg := Resolve(base, Overrides{})

	if cfg.Gravity != base.Gravity {
		t.Fatalf("Gravity = %v, want %v", cfg.Gravity, base.Gravity)
	}
	if cfg.SpeedBySize != base.SpeedBySize {
		t.Fatalf("SpeedBySize = %+v, want %+v", cfg.SpeedBySize, base.SpeedBySize)
	}
	if cfg.WindForce != 0 {
		t.Fatalf("WindForce = %v, want 0", cfg.WindForce)
	}
}

func TestResolveAppliesMultipliers(t *testing.T) {
	base := DefaultBaseConfig()
	cfg := Resolve(base, Overrides{
		GravityMultiplier:    ptr(0.5),
		BounceMultiplier:     ptr(1.1),
		EnemySpeedMultiplier: ptr(0.5),
		PointsMultiplier:     ptr(2),
	})

	if cfg.Gravity != base.Gravity*0.5 {
		t.Fatalf("Gravity = %v, want %v", cfg.Gravity, base.Gravity*0.5)
	}
	if cfg.FloorBounce != base.FloorBounce*1.1 || cfg.WallBounce != base.WallBounce*1.1 {
		t.Fatal("bounce multiplier not applied to every coefficient")
	}
	if cfg.SpeedBySize.Large != base.SpeedBySize.Large*0.5 {
		t.Fatalf("Large speed = %v, want %v", cfg.SpeedBySize.Large, base.SpeedBySize.Large*0.5)
	}
	if cfg.PointsForSize(1) != int(base.PointsBySize.Small*2+0.5) {
		t.Fatalf("PointsForSize(1) = %d", cfg.PointsForSize(1))
	}
}

func TestZeroMultiplierIsNotAbsent(t *testing.T) {
	base := DefaultBaseConfig()
	cfg := Resolve(base, Overrides{GravityMultiplier: ptr(0)})

	if cfg.Gravity != 0 {
		t.Fatalf("Gravity = %v, a present zero multiplier must disable gravity", cfg.Gravity)
	}
}

func TestWindForceReplacesRatherThanMultiplies(t *testing.T) {
	cfg := Resolve(DefaultBaseConfig(), Overrides{WindForce: ptr(-35)})

	if cfg.WindForce != -35 {
		t.Fatalf("WindForce = %v, want -35", cfg.WindForce)
	}
}

func TestResolveIsPure(t *testing.T) {
	base := DefaultBaseConfig()
	overrides := Overrides{EnemySpeedMultiplier: ptr(1.5)}

	first := Resolve(base, overrides)
	second := Resolve(base, overrides)
	if first != second {
		t.Fatal("identical inputs resolved differently")
	}
	if base.SpeedBySize != DefaultBaseConfig().SpeedBySize {
		t.Fatal("Resolve mutated the base config")
	}
}

func TestResolveMultiplierProperty(t *testing.T) {
	base := DefaultBaseConfig()
	rapid.Check(t, func(t *rapid.T) {
		m := rapid.Float64Range(0, 4).Draw(t, "multiplier")
		cfg := Resolve(base, Overrides{EnemySpeedMultiplier: &m})
		if cfg.SpeedBySize.Small != base.SpeedBySize.Small*m {
			t.Fatalf("Small speed = %v, want %v", cfg.SpeedBySize.Small, base.SpeedBySize.Small*m)
		}
	})
}

func TestConfigCacheMemoizesByID(t *testing.T) {
	cache := NewConfigCache(DefaultBaseConfig())
	descriptor := &Descriptor{ID: "level-9", Overrides: Overrides{GravityMultiplier: ptr(0.5)}}

	first := cache.For(descriptor)

	// Mutating the descriptor after the first resolve must not leak into the
	// cached entry: the snapshot is immutable per level.
	descriptor.Overrides.GravityMultiplier = ptr(3)
	second := cache.For(descriptor)

	if first != second {
		t.Fatal("cache resolved the same level twice")
	}
}

func TestPerSizeForLevelClamps(t *testing.T) {
	p := PerSize{Small: 1, Medium: 2, Large: 3}
	cases := []struct {
		level int
		want  float64
	}{
		{level: 1, want: 1},
		{level: 2, want: 2},
		{level: 3, want: 3},
		{level: 0, want: 1},
		{level: 9, want: 3},
	}
	for _, tc := range cases {
		if got := p.ForLevel(tc.level); got != tc.want {
			t.Fatalf("ForLevel(%d) = %v, want %v", tc.level, got, tc.want)
		}
	}
}
