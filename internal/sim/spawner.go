package sim

import (
	"math/rand"

	"bounce-and-burst/sim/internal/level"
	"bounce-and-burst/sim/internal/telemetry"
)

type waveState int

const (
	wavePending waveState = iota
	waveActive
	waveFinished
)

// defRuntime tracks one spawn definition's accumulated timer, independent of
// its siblings within the wave.
type defRuntime struct {
	def       level.SpawnDef
	sinceLast float64
	spawned   int
}

type waveRuntime struct {
	wave       level.Wave
	state      waveState
	defs       []defRuntime
	spawnIndex int
}

// Spawner walks each wave through pending → active → finished on accumulated
// level time and emits enemies from the pool while a wave is active. Timers
// accumulate frame deltas rather than consulting the wall clock, so a stalled
// frame delays spawns without ever doubling them.
type Spawner struct {
	cfg     level.EffectiveConfig
	pool    *Pool
	rng     *rand.Rand
	metrics telemetry.Metrics
	waves   []*waveRuntime
}

func newSpawner(cfg level.EffectiveConfig, pool *Pool, rng *rand.Rand, metrics telemetry.Metrics, waves []level.Wave) *Spawner {
	s := &Spawner{
		cfg:     cfg,
		pool:    pool,
		rng:     rng,
		metrics: metrics,
	}
	for _, wave := range waves {
		runtime := &waveRuntime{wave: wave}
		for _, def := range wave.Spawns {
			runtime.defs = append(runtime.defs, defRuntime{def: def})
		}
		s.waves = append(s.waves, runtime)
	}
	return s
}

// Advance progresses wave states and spawns due enemies, appending them to
// the world. At most one enemy per definition spawns per tick.
func (s *Spawner) Advance(levelElapsed, dt float64, w *world) []*Enemy {
	var spawned []*Enemy

	remaining := s.waves[:0]
	for _, runtime := range s.waves {
		if runtime.state == wavePending && levelElapsed >= runtime.wave.StartOffsetSeconds {
			runtime.state = waveActive
		}
		if runtime.state == waveActive && levelElapsed > runtime.wave.StartOffsetSeconds+runtime.wave.DurationSeconds {
			// A finished wave leaves the active set for good; its timers are
			// discarded with it.
			runtime.state = waveFinished
			runtime.defs = nil
			continue
		}
		if runtime.state == waveActive {
			for i := range runtime.defs {
				dr := &runtime.defs[i]
				dr.sinceLast += dt
				if dr.spawned >= dr.def.Count {
					continue
				}
				if dr.sinceLast < dr.def.SpawnIntervalSeconds {
					continue
				}
				dr.sinceLast = 0
				dr.spawned++
				enemy := s.spawn(runtime, dr.def)
				w.enemies = append(w.enemies, enemy)
				spawned = append(spawned, enemy)
			}
		}
		remaining = append(remaining, runtime)
	}
	s.waves = remaining

	if s.metrics != nil && len(spawned) > 0 {
		s.metrics.Add(metricEnemiesSpawned, uint64(len(spawned)))
	}
	return spawned
}

// AllFinished reports whether every scripted wave has run to completion.
func (s *Spawner) AllFinished() bool {
	return len(s.waves) == 0
}

func (s *Spawner) spawn(runtime *waveRuntime, def level.SpawnDef) *Enemy {
	cfg := s.cfg
	size := cfg.SizeBySize.ForLevel(def.SizeLevel)

	fractions := runtime.wave.SpawnPattern.Fractions()
	xFraction := fractions[runtime.spawnIndex%len(fractions)]
	yFraction := spawnHeightFractions[runtime.spawnIndex%len(spawnHeightFractions)]
	runtime.spawnIndex++

	x := xFraction * (cfg.ScreenWidth - size)
	y := yFraction * cfg.ScreenHeight

	enemy := s.pool.AcquireEnemy()
	enemy.X = x
	enemy.Y = y
	enemy.Width = size
	enemy.Height = size
	enemy.SizeLevel = def.SizeLevel
	enemy.Type = def.Type
	enemy.Split = def.SplitOrDefault()

	speed := cfg.SpeedBySize.ForLevel(def.SizeLevel) * def.MovementSpeedMultiplier
	speed += (s.rng.Float64()*2 - 1) * cfg.SpawnVelocityVariation
	if speed < cfg.MinHorizontalVelocity {
		speed = cfg.MinHorizontalVelocity
	}
	enemy.VelX = speed * s.spawnDirection(x)
	enemy.VelY = 0
	return enemy
}

// spawnDirection biases horizontal motion away from the nearest wall: the
// left third launches rightward, the right third leftward, the centre flips
// a coin.
func (s *Spawner) spawnDirection(x float64) float64 {
	third := s.cfg.ScreenWidth / 3
	switch {
	case x < third:
		return 1
	case x > 2*third:
		return -1
	case s.rng.Intn(2) == 0:
		return 1
	default:
		return -1
	}
}
