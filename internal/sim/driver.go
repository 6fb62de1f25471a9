package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bounce-and-burst/sim/internal/level"
	"bounce-and-burst/sim/logging/gameplay"
	"bounce-and-burst/sim/logging/simulation"
)

var (
	// ErrNoLevel is returned by Start when no level has been loaded.
	ErrNoLevel = errors.New("sim: no level loaded")
	// ErrNotIdle is returned when a lifecycle transition requires the idle
	// state.
	ErrNotIdle = errors.New("sim: driver is not idle")
)

// defaultCommandCapacity bounds the intent queue; a 60 Hz host staging a
// handful of intents per frame never comes close.
const defaultCommandCapacity = 256

// Driver owns one play session end to end: it loads a level script, drains
// staged intents at tick start, and sequences spawning, integration, and
// collision resolution. The host calls Tick from a single goroutine; intents
// and Snapshot are safe from any goroutine.
type Driver struct {
	deps     Deps
	commands *CommandBuffer

	mu           sync.Mutex
	state        State
	descriptor   *level.Descriptor
	cfg          level.EffectiveConfig
	cache        *level.ConfigCache
	pool         *Pool
	world        *world
	spawner      *Spawner
	tick         uint64
	levelElapsed float64
	cleared      bool
}

// NewDriver constructs an idle driver over the given base tuning profile.
func NewDriver(base level.BaseConfig, deps Deps) *Driver {
	deps = deps.normalized()
	return &Driver{
		deps:     deps,
		commands: NewCommandBuffer(defaultCommandCapacity, deps.Metrics),
		state:    StateIdle,
		cache:    level.NewConfigCache(base),
		pool:     NewPool(deps.Metrics),
	}
}

// LoadLevel binds a level script to the driver and resolves its tuning
// overrides. Only legal while idle.
func (d *Driver) LoadLevel(descriptor *level.Descriptor) error {
	if descriptor == nil {
		return errors.New("sim: nil level descriptor")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateIdle {
		return fmt.Errorf("%w: state %q", ErrNotIdle, d.state)
	}
	d.descriptor = descriptor
	d.cfg = d.cache.For(descriptor)
	return nil
}

// Start transitions idle → running and builds a fresh world from the loaded
// level. Intents staged before Start are discarded.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateIdle {
		return fmt.Errorf("%w: state %q", ErrNotIdle, d.state)
	}
	if d.descriptor == nil {
		return ErrNoLevel
	}
	d.commands.Drain()
	d.world = newWorld(d.cfg, d.pool, d.deps.RNG, d.descriptor.Mysteries)
	d.spawner = newSpawner(d.cfg, d.pool, d.deps.RNG, d.deps.Metrics, d.descriptor.Waves)
	d.tick = 0
	d.levelElapsed = 0
	d.cleared = false
	d.state = StateRunning
	d.deps.Logger.Printf("session started level=%s waves=%d", d.descriptor.ID, len(d.descriptor.Waves))
	return nil
}

// Reset returns the driver to idle from any state, releasing every pooled
// entity and dropping staged intents. The loaded level stays bound, so a
// subsequent Start replays it from scratch.
func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands.Drain()
	if d.world != nil {
		d.world.releaseAll()
		d.world = nil
	}
	d.spawner = nil
	d.tick = 0
	d.levelElapsed = 0
	d.cleared = false
	d.state = StateIdle
}

// SetAvatarX stages a horizontal reposition intent for the next tick. The
// value is clamped inside the walls when applied, never rejected.
func (d *Driver) SetAvatarX(x float64) {
	d.push(Command{Type: CommandSetAvatarX, X: x})
}

// FireProjectile stages a fire intent for the next tick.
func (d *Driver) FireProjectile() {
	d.push(Command{Type: CommandFire})
}

func (d *Driver) push(cmd Command) {
	cmd.IssuedAt = time.Now()
	if d.commands.Push(cmd) {
		return
	}
	simulation.CommandDropped(context.Background(), d.deps.Publisher, d.currentTick(), simulation.CommandDroppedPayload{
		CommandType: string(cmd.Type),
		Reason:      "intent queue full",
	})
}

func (d *Driver) currentTick() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tick
}

// Snapshot returns a deep copy of the observable state. It is safe to hold
// across ticks.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := Snapshot{Tick: d.tick, State: d.state}
	if d.descriptor != nil {
		snap.LevelID = d.descriptor.ID
	}
	if d.world != nil {
		snap = d.world.snapshot()
		snap.Tick = d.tick
		snap.State = d.state
		snap.LevelID = d.descriptor.ID
	}
	return snap
}

// Tick advances the session by dt seconds. Outside the running state it is a
// no-op. A panic during resolution voids the tick: the result is empty and
// no score is applied, but the session keeps running.
func (d *Driver) Tick(dt float64) (result TickResult) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateRunning {
		return TickResult{Tick: d.tick}
	}

	d.tick++
	tick := d.tick
	result = TickResult{Tick: tick}
	ctx := context.Background()

	defer func() {
		if recovered := recover(); recovered != nil {
			d.deps.Metrics.Add(metricTickPanics, 1)
			d.deps.Logger.Printf("tick %d voided by panic: %v", tick, recovered)
			simulation.TickPanicRecovered(ctx, d.deps.Publisher, tick, simulation.TickPanicPayload{
				Recovered: fmt.Sprint(recovered),
			})
			result = TickResult{Tick: tick}
		}
	}()

	if dt < 0 {
		dt = 0
	}
	if dt > maxTickDelta {
		simulation.TickDeltaClamped(ctx, d.deps.Publisher, tick, simulation.TickDeltaClampedPayload{
			RawDelta:     dt,
			AppliedDelta: maxTickDelta,
		})
		dt = maxTickDelta
	}

	w := d.world

	for _, cmd := range d.commands.Drain() {
		switch cmd.Type {
		case CommandSetAvatarX:
			w.setAvatarX(cmd.X)
		case CommandFire:
			projectile := w.fireProjectile()
			if projectile == nil {
				simulation.CommandDropped(ctx, d.deps.Publisher, tick, simulation.CommandDroppedPayload{
					CommandType: string(CommandFire),
					Reason:      "active projectile cap reached",
				})
				continue
			}
			result.Events = append(result.Events, Event{
				Type:     EventProjectileFired,
				EntityID: projectile.ID,
				X:        projectile.X,
				Y:        projectile.Y,
			})
			gameplay.ProjectileFired(ctx, d.deps.Publisher, tick, projectile.ID)
		}
	}

	d.levelElapsed += dt

	for _, enemy := range d.spawner.Advance(d.levelElapsed, dt, w) {
		result.Events = append(result.Events, Event{
			Type:      EventEnemySpawned,
			EntityID:  enemy.ID,
			SizeLevel: enemy.SizeLevel,
			X:         enemy.X,
			Y:         enemy.Y,
		})
	}

	w.advanceMysteries(d.levelElapsed)

	for i := len(w.enemies) - 1; i >= 0; i-- {
		enemy := w.enemies[i]
		integrateEnemy(d.cfg, enemy, dt)
		if enemyFellThrough(d.cfg, enemy) {
			w.enemies = append(w.enemies[:i], w.enemies[i+1:]...)
			w.pool.Release(enemy)
		}
	}

	for i := len(w.projectiles) - 1; i >= 0; i-- {
		projectile := w.projectiles[i]
		integrateProjectile(projectile, dt)
		if !projectileOffTop(projectile) &&
			!(d.cfg.CullProjectilesAtWalls && projectileOutsideWalls(d.cfg, projectile)) {
			continue
		}
		w.projectiles = append(w.projectiles[:i], w.projectiles[i+1:]...)
		w.pool.Release(projectile)
		result.Events = append(result.Events, Event{
			Type:     EventProjectileMissed,
			EntityID: projectile.ID,
		})
		gameplay.ProjectileMissed(ctx, d.deps.Publisher, tick, projectile.ID)
	}

	outcome := w.resolveCollisions()
	result.Events = append(result.Events, outcome.events...)
	result.ScoreDelta = outcome.scoreDelta
	w.score += outcome.scoreDelta

	for _, event := range outcome.events {
		switch event.Type {
		case EventEnemyEliminated:
			d.deps.Metrics.Add(metricEnemiesDestroyed, 1)
			gameplay.EnemyEliminated(ctx, d.deps.Publisher, tick, event.EntityID, gameplay.EnemyEliminatedPayload{
				SizeLevel: event.SizeLevel,
				Points:    event.Points,
				X:         event.X,
				Y:         event.Y,
			})
		case EventEnemySplit:
			d.deps.Metrics.Add(metricEnemiesSplit, 1)
			gameplay.EnemySplit(ctx, d.deps.Publisher, tick, event.EntityID, gameplay.EnemySplitPayload{
				SizeLevel: event.SizeLevel,
				Points:    event.Points,
				ChildIDs:  event.ChildIDs,
			})
		case EventMysteryReward:
			gameplay.MysteryReward(ctx, d.deps.Publisher, tick, event.EntityID, gameplay.MysteryRewardPayload{
				Reward: event.Reward,
			})
		case EventAvatarHit:
			gameplay.AvatarHit(ctx, d.deps.Publisher, tick, event.EntityID)
		}
	}

	if outcome.avatarHit {
		result.AvatarHit = true
		d.state = StateTerminated
	} else if len(w.enemies) == 0 && d.spawner.AllFinished() {
		// Level completion is a signal, not a state change: the decision to
		// advance belongs to the host.
		result.LevelCleared = true
		if !d.cleared {
			d.cleared = true
			gameplay.LevelCleared(ctx, d.deps.Publisher, tick, gameplay.LevelClearedPayload{
				LevelID: d.descriptor.ID,
				Score:   w.score,
			})
		}
	}

	d.deps.Metrics.Add(metricTicksTotal, 1)
	d.deps.Metrics.Store(metricEnemiesLive, uint64(len(w.enemies)))
	d.deps.Metrics.Store(metricProjectilesLive, uint64(len(w.projectiles)))

	return result
}
