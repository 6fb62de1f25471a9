package sim

import (
	"math"

	"bounce-and-burst/sim/internal/level"
)

// integrateEnemy advances one enemy through one tick. The resolution order is
// fixed: gravity, position, walls, ceiling, floor, minimum horizontal speed.
// Reordering these steps changes observable trajectories, so don't.
func integrateEnemy(cfg level.EffectiveConfig, e *Enemy, dt float64) {
	e.VelY += cfg.Gravity * dt
	e.VelX += cfg.WindForce * dt

	e.X += e.VelX * e.Type.SpeedMultiplier() * dt
	e.Y += e.VelY * dt

	// Walls reflect only inbound motion; an enemy already separating after a
	// clamp must not be bounced straight back.
	if e.X <= 0 {
		e.X = 0
		if e.VelX < 0 {
			e.VelX = -e.VelX * cfg.WallBounce
		}
	} else if e.X >= cfg.ScreenWidth-e.Width {
		e.X = cfg.ScreenWidth - e.Width
		if e.VelX > 0 {
			e.VelX = -e.VelX * cfg.WallBounce
		}
	}

	if e.Y <= 0 {
		e.Y = 0
		if e.VelY < 0 {
			e.VelY = -e.VelY * cfg.CeilingBounce
		}
	}

	if e.Y >= cfg.FloorY-e.Height {
		e.Y = cfg.FloorY - e.Height
		if e.VelY > 0 {
			bounce := -e.VelY * cfg.FloorBounce
			if math.Abs(bounce) < cfg.MinBounceVelocity {
				// Below the bounce threshold the enemy rests vertically
				// instead of jittering forever at the floor line.
				e.VelY = 0
			} else {
				e.VelY = bounce
			}
		}
	}

	// Bounce decay must never leave an enemy drifting purely vertically.
	if e.VelX != 0 && math.Abs(e.VelX) < cfg.MinHorizontalVelocity {
		if e.VelX < 0 {
			e.VelX = -cfg.MinHorizontalVelocity
		} else {
			e.VelX = cfg.MinHorizontalVelocity
		}
	}
}

// enemyFellThrough reports the defensive removal condition for an enemy that
// escaped the floor clamp.
func enemyFellThrough(cfg level.EffectiveConfig, e *Enemy) bool {
	return e.Y > cfg.FloorY+e.Height
}

// integrateProjectile advances one projectile. Projectiles ignore gravity in
// the default profile; Age feeds visual trails only.
func integrateProjectile(p *Projectile, dt float64) {
	p.X += p.VelX * dt
	p.Y += p.VelY * dt
	p.Age += dt
}

// projectileOffTop reports the off-screen cull line for missed shots.
func projectileOffTop(p *Projectile) bool {
	return p.Y <= projectileCullY
}

// projectileOutsideWalls reports horizontal exits, checked only in
// configurations that cull sideways shots.
func projectileOutsideWalls(cfg level.EffectiveConfig, p *Projectile) bool {
	return p.Right() < 0 || p.X > cfg.ScreenWidth
}
