package sim

// State tracks the driver lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateRunning    State = "running"
	StateTerminated State = "terminated"
)

// Snapshot is the read-only view handed to rendering collaborators between
// ticks. Every slice and payload is a copy: holding a snapshot across frames
// can never observe or tear live simulation state.
type Snapshot struct {
	Tick        uint64          `json:"tick"`
	State       State           `json:"state"`
	LevelID     string          `json:"levelId,omitempty"`
	Score       int             `json:"score"`
	Avatar      Entity          `json:"avatar"`
	Enemies     []Enemy         `json:"enemies,omitempty"`
	Projectiles []Projectile    `json:"projectiles,omitempty"`
	Mysteries   []MysteryTarget `json:"mysteries,omitempty"`
}

func (w *world) snapshot() Snapshot {
	snap := Snapshot{
		Score:  w.score,
		Avatar: w.avatar.Entity,
	}
	if len(w.enemies) > 0 {
		snap.Enemies = make([]Enemy, len(w.enemies))
		for i, enemy := range w.enemies {
			snap.Enemies[i] = *enemy
		}
	}
	if len(w.projectiles) > 0 {
		snap.Projectiles = make([]Projectile, len(w.projectiles))
		for i, projectile := range w.projectiles {
			snap.Projectiles[i] = *projectile
		}
	}
	if len(w.mysteries) > 0 {
		snap.Mysteries = make([]MysteryTarget, len(w.mysteries))
		for i, target := range w.mysteries {
			copied := *target
			if target.Reward != nil {
				reward := make(map[string]any, len(target.Reward))
				for k, v := range target.Reward {
					reward[k] = v
				}
				copied.Reward = reward
			}
			snap.Mysteries[i] = copied
		}
	}
	return snap
}
