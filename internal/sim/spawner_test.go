package sim

import (
	"math"
	"math/rand"
	"testing"

	"bounce-and-burst/sim/internal/level"
)

func newTestSpawner(waves []level.Wave) (*Spawner, *world) {
	cfg := testConfig()
	pool := NewPool(nil)
	w := newWorld(cfg, pool, rand.New(rand.NewSource(42)), nil)
	s := newSpawner(cfg, pool, rand.New(rand.NewSource(42)), nil, waves)
	return s, w
}

func singleDefWave(start, duration float64, count int, interval float64) level.Wave {
	return level.Wave{
		ID:                 "wave-1",
		StartOffsetSeconds: start,
		DurationSeconds:    duration,
		SpawnPattern:       level.PatternTwoPoint,
		Spawns: []level.SpawnDef{{
			Type:                    level.EnemyBasic,
			SizeLevel:               2,
			Count:                   count,
			SpawnIntervalSeconds:    interval,
			MovementSpeedMultiplier: 1,
		}},
	}
}

func TestSpawnerWaitsForStartOffset(t *testing.T) {
	s, w := newTestSpawner([]level.Wave{singleDefWave(5, 10, 3, 0.5)})

	if spawned := s.Advance(1, 1, w); len(spawned) != 0 {
		t.Fatalf("spawned %d enemies before the wave started", len(spawned))
	}
	if s.AllFinished() {
		t.Fatal("pending wave reported finished")
	}
}

func TestSpawnerAccumulatesTowardInterval(t *testing.T) {
	s, w := newTestSpawner([]level.Wave{singleDefWave(0, 10, 3, 1)})

	elapsed := 0.0
	dt := 0.25
	totalBefore := 0
	for i := 0; i < 3; i++ {
		elapsed += dt
		totalBefore += len(s.Advance(elapsed, dt, w))
	}
	if totalBefore != 0 {
		t.Fatalf("spawned %d enemies before the interval elapsed", totalBefore)
	}

	elapsed += dt
	if spawned := s.Advance(elapsed, dt, w); len(spawned) != 1 {
		t.Fatalf("spawned %d enemies at the interval boundary, want 1", len(spawned))
	}
}

func TestSpawnerAtMostOnePerDefinitionPerTick(t *testing.T) {
	s, w := newTestSpawner([]level.Wave{singleDefWave(0, 60, 5, 0.5)})

	// A stalled frame delivers a huge delta; it must delay further spawns, not
	// batch them.
	if spawned := s.Advance(10, 10, w); len(spawned) != 1 {
		t.Fatalf("stalled frame spawned %d enemies, want 1", len(spawned))
	}
	if spawned := s.Advance(10.5, 0.5, w); len(spawned) != 1 {
		t.Fatalf("follow-up frame spawned %d enemies, want 1", len(spawned))
	}
}

func TestSpawnerIndependentDefinitionTimers(t *testing.T) {
	wave := singleDefWave(0, 60, 2, 1)
	wave.Spawns = append(wave.Spawns, level.SpawnDef{
		Type:                    level.EnemyFast,
		SizeLevel:               1,
		Count:                   2,
		SpawnIntervalSeconds:    2,
		MovementSpeedMultiplier: 1,
	})
	s, w := newTestSpawner([]level.Wave{wave})

	perTick := make([]int, 0, 4)
	for step := 1; step <= 4; step++ {
		perTick = append(perTick, len(s.Advance(float64(step), 1, w)))
	}

	// t=1: def A. t=2: def A again plus def B. t=3: A exhausted. t=4: def B.
	want := []int{1, 2, 0, 1}
	for i := range want {
		if perTick[i] != want[i] {
			t.Fatalf("tick %d spawned %d, want %d (all: %v)", i+1, perTick[i], want[i], perTick)
		}
	}
}

func TestWaveCompleteness(t *testing.T) {
	wave := singleDefWave(2, 20, 4, 1)
	wave.Spawns = append(wave.Spawns, level.SpawnDef{
		Type:                    level.EnemyStrong,
		SizeLevel:               3,
		Count:                   3,
		SpawnIntervalSeconds:    2,
		MovementSpeedMultiplier: 1,
	})
	s, w := newTestSpawner([]level.Wave{wave})

	total := 0
	elapsed := 0.0
	dt := 1.0 / 60
	for elapsed < 25 {
		elapsed += dt
		total += len(s.Advance(elapsed, dt, w))
	}

	if total != 7 {
		t.Fatalf("wave spawned %d enemies, want its full count of 7", total)
	}
	if !s.AllFinished() {
		t.Fatal("wave not finished after its window fully elapsed")
	}
}

func TestFinishedWaveNeverReactivates(t *testing.T) {
	s, w := newTestSpawner([]level.Wave{singleDefWave(0, 1, 10, 0.4)})

	total := 0
	total += len(s.Advance(0.5, 0.5, w))
	total += len(s.Advance(1.0, 0.5, w))
	if total == 0 {
		t.Fatal("expected at least one spawn inside the window")
	}

	for step := 0; step < 10; step++ {
		if spawned := s.Advance(2+float64(step), 1, w); len(spawned) != 0 {
			t.Fatal("finished wave spawned again")
		}
	}
	if !s.AllFinished() {
		t.Fatal("expired wave still in the active set")
	}
}

func TestSpawnPlacementFollowsPattern(t *testing.T) {
	s, w := newTestSpawner([]level.Wave{singleDefWave(0, 60, 2, 1)})
	cfg := w.cfg

	s.Advance(1, 1, w)
	s.Advance(2, 1, w)
	if len(w.enemies) != 2 {
		t.Fatalf("%d enemies, want 2", len(w.enemies))
	}

	fractions := level.PatternTwoPoint.Fractions()
	for i, enemy := range w.enemies {
		wantX := fractions[i] * (cfg.ScreenWidth - enemy.Width)
		if math.Abs(enemy.X-wantX) > 1e-9 {
			t.Fatalf("enemy %d X = %v, want %v", i, enemy.X, wantX)
		}
		wantY := spawnHeightFractions[i] * cfg.ScreenHeight
		if math.Abs(enemy.Y-wantY) > 1e-9 {
			t.Fatalf("enemy %d Y = %v, want %v", i, enemy.Y, wantY)
		}
	}
}

func TestSpawnVelocityBiasedAwayFromEdges(t *testing.T) {
	wave := singleDefWave(0, 60, 2, 1)
	wave.SpawnPattern = level.PatternEdges // fractions 0.05 and 0.95
	s, w := newTestSpawner([]level.Wave{wave})

	s.Advance(1, 1, w)
	s.Advance(2, 1, w)

	left, right := w.enemies[0], w.enemies[1]
	if left.VelX <= 0 {
		t.Fatalf("left-edge spawn VelX = %v, want rightward", left.VelX)
	}
	if right.VelX >= 0 {
		t.Fatalf("right-edge spawn VelX = %v, want leftward", right.VelX)
	}
	if math.Abs(left.VelX) < w.cfg.MinHorizontalVelocity {
		t.Fatalf("spawn VelX %v below minimum horizontal speed", left.VelX)
	}
}
