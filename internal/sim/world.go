package sim

import (
	"math/rand"

	"github.com/google/uuid"

	"bounce-and-burst/sim/internal/level"
)

// world owns the live entity collections for one session. All mutation
// happens inside a tick; external callers only ever see snapshot copies.
type world struct {
	cfg  level.EffectiveConfig
	pool *Pool
	rng  *rand.Rand

	enemies     []*Enemy
	projectiles []*Projectile
	mysteries   []*MysteryTarget
	avatar      Avatar

	// pendingMysteries holds scripted targets not yet on screen.
	pendingMysteries []level.MysteryScript

	score int
}

func newWorld(cfg level.EffectiveConfig, pool *Pool, rng *rand.Rand, mysteries []level.MysteryScript) *world {
	w := &world{
		cfg:              cfg,
		pool:             pool,
		rng:              rng,
		pendingMysteries: append([]level.MysteryScript(nil), mysteries...),
	}
	w.avatar = Avatar{Entity: Entity{
		ID:     uuid.NewString(),
		X:      (cfg.ScreenWidth - cfg.AvatarWidth) / 2,
		Y:      cfg.FloorY - cfg.AvatarHeight,
		Width:  cfg.AvatarWidth,
		Height: cfg.AvatarHeight,
	}}
	return w
}

// setAvatarX repositions the avatar, clamped inside the walls. The avatar is
// never integrated, so this is the only way it moves.
func (w *world) setAvatarX(x float64) {
	w.avatar.X = clamp(x, 0, w.cfg.ScreenWidth-w.avatar.Width)
}

// fireProjectile spawns an upward projectile above the avatar's center,
// respecting the live-shot cap. Returns the projectile or nil when capped.
func (w *world) fireProjectile() *Projectile {
	if max := w.cfg.MaxActiveProjectiles; max > 0 && len(w.projectiles) >= max {
		return nil
	}
	projectile := w.pool.AcquireProjectile()
	projectile.X = w.avatar.X + (w.avatar.Width-w.cfg.ProjectileWidth)/2
	projectile.Y = w.avatar.Y - w.cfg.ProjectileHeight
	projectile.Width = w.cfg.ProjectileWidth
	projectile.Height = w.cfg.ProjectileHeight
	projectile.VelX = 0
	projectile.VelY = -w.cfg.ProjectileSpeed
	projectile.Age = 0
	projectile.Piercing = false
	w.projectiles = append(w.projectiles, projectile)
	return projectile
}

// advanceMysteries materializes scripted targets whose time has come and
// expires stale ones. Expiry is silent: the target simply disappears.
func (w *world) advanceMysteries(levelElapsed float64) {
	pending := w.pendingMysteries[:0]
	for _, script := range w.pendingMysteries {
		if levelElapsed < script.AppearAtSeconds {
			pending = append(pending, script)
			continue
		}
		target := &MysteryTarget{
			Entity: Entity{
				ID:     uuid.NewString(),
				X:      script.XFraction * (w.cfg.ScreenWidth - mysterySize),
				Y:      script.YFraction * (w.cfg.ScreenHeight - mysterySize),
				Width:  mysterySize,
				Height: mysterySize,
			},
			Reward:    script.Reward,
			ExpiresAt: script.AppearAtSeconds + script.LifetimeSeconds,
		}
		w.mysteries = append(w.mysteries, target)
	}
	w.pendingMysteries = pending

	for i := len(w.mysteries) - 1; i >= 0; i-- {
		if levelElapsed >= w.mysteries[i].ExpiresAt {
			w.mysteries = append(w.mysteries[:i], w.mysteries[i+1:]...)
		}
	}
}

const mysterySize = 40.0

// releaseAll bulk-returns every live pooled entity; used on reset.
func (w *world) releaseAll() {
	for _, enemy := range w.enemies {
		w.pool.Release(enemy)
	}
	for _, projectile := range w.projectiles {
		w.pool.Release(projectile)
	}
	w.enemies = w.enemies[:0]
	w.projectiles = w.projectiles[:0]
	w.mysteries = w.mysteries[:0]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
