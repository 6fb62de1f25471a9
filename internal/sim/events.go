package sim

// EventType enumerates the discrete outcomes a tick can report.
type EventType string

const (
	EventEnemySpawned     EventType = "enemy_spawned"
	EventEnemySplit       EventType = "enemy_split"
	EventEnemyEliminated  EventType = "enemy_eliminated"
	EventAvatarHit        EventType = "avatar_hit"
	EventMysteryReward    EventType = "mystery_reward"
	EventProjectileFired  EventType = "projectile_fired"
	EventProjectileMissed EventType = "projectile_missed"
)

// Event is one discrete occurrence within a tick, ordered by resolution
// order. Fields beyond EntityID are populated per type.
type Event struct {
	Type      EventType      `json:"type"`
	EntityID  string         `json:"entityId,omitempty"`
	SizeLevel int            `json:"sizeLevel,omitempty"`
	Points    int            `json:"points,omitempty"`
	ChildIDs  []string       `json:"childIds,omitempty"`
	Reward    map[string]any `json:"reward,omitempty"`
	X         float64        `json:"x,omitempty"`
	Y         float64        `json:"y,omitempty"`
}

// TickResult summarizes one tick for external collaborators.
type TickResult struct {
	Tick         uint64  `json:"tick"`
	Events       []Event `json:"events,omitempty"`
	ScoreDelta   int     `json:"scoreDelta"`
	LevelCleared bool    `json:"levelCleared"`
	AvatarHit    bool    `json:"avatarHit"`
}
