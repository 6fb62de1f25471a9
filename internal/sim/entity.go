// Package sim is the frame-driven simulation core: entity state, pooling,
// wave spawning, physics integration, collision resolution, and the driver
// that sequences them once per tick.
package sim

import "bounce-and-burst/sim/internal/level"

// Entity is the shared shape of everything that moves. Positions are top-left
// screen pixels, velocities pixels/second.
type Entity struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	VelX   float64 `json:"velX"`
	VelY   float64 `json:"velY"`
}

// Right returns the exclusive right edge of the bounding box.
func (e Entity) Right() float64 { return e.X + e.Width }

// Bottom returns the exclusive bottom edge of the bounding box.
func (e Entity) Bottom() float64 { return e.Y + e.Height }

// Enemy is a bouncing target. SizeLevel strictly decreases by one per split;
// a size-1 enemy is eliminated outright, never split.
type Enemy struct {
	Entity
	SizeLevel int                 `json:"sizeLevel"`
	Type      level.EnemyType     `json:"type"`
	Split     level.SplitBehavior `json:"split"`
}

// Projectile travels in a straight line, upward by convention. Age only feeds
// visual effects and plays no part in collision.
type Projectile struct {
	Entity
	Age      float64 `json:"age"`
	Piercing bool    `json:"piercing"`
}

// MysteryTarget is a bonus entity. The simulation only detects the hit; the
// reward payload is forwarded opaquely to the meta-progression collaborator.
type MysteryTarget struct {
	Entity
	Reward    map[string]any `json:"reward,omitempty"`
	ExpiresAt float64        `json:"-"` // level-elapsed seconds
}

// Avatar is the singleton player entity. It is repositioned directly and
// never integrated, so its velocity stays zero.
type Avatar struct {
	Entity
}

func (e *Enemy) reset() {
	*e = Enemy{}
}

func (p *Projectile) reset() {
	*p = Projectile{}
}
