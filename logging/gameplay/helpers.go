// Package gameplay defines the discrete gameplay notifications delivered to
// the meta-progression and telemetry collaborators. Helpers are fire-and-forget
// and tolerate a nil publisher.
package gameplay

import (
	"context"

	"bounce-and-burst/sim/logging"
)

const (
	// EventEnemyEliminated is emitted when a size-1 enemy is destroyed outright.
	EventEnemyEliminated logging.EventType = "gameplay.enemy_eliminated"
	// EventEnemySplit is emitted when an enemy above size 1 is replaced by children.
	EventEnemySplit logging.EventType = "gameplay.enemy_split"
	// EventAvatarHit is emitted when an enemy touches the avatar and the session ends.
	EventAvatarHit logging.EventType = "gameplay.avatar_hit"
	// EventMysteryReward is emitted when a projectile pops a mystery target.
	EventMysteryReward logging.EventType = "gameplay.mystery_reward"
	// EventProjectileFired is emitted when a fire intent produces a projectile.
	EventProjectileFired logging.EventType = "gameplay.projectile_fired"
	// EventProjectileMissed is emitted when a projectile leaves the screen unspent.
	EventProjectileMissed logging.EventType = "gameplay.projectile_missed"
	// EventLevelCleared is emitted once when the last enemy and wave are gone.
	EventLevelCleared logging.EventType = "gameplay.level_cleared"
)

// EnemyEliminatedPayload captures the size and score value of a destroyed enemy.
type EnemyEliminatedPayload struct {
	SizeLevel int     `json:"sizeLevel"`
	Points    int     `json:"points"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

func EnemyEliminated(ctx context.Context, pub logging.Publisher, tick uint64, enemyID string, payload EnemyEliminatedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEnemyEliminated,
		Tick:     tick,
		Subject:  logging.EntityRef{ID: enemyID, Kind: logging.EntityKindEnemy},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// EnemySplitPayload captures a split resolution.
type EnemySplitPayload struct {
	SizeLevel int      `json:"sizeLevel"`
	Points    int      `json:"points"`
	ChildIDs  []string `json:"childIds"`
}

func EnemySplit(ctx context.Context, pub logging.Publisher, tick uint64, enemyID string, payload EnemySplitPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEnemySplit,
		Tick:     tick,
		Subject:  logging.EntityRef{ID: enemyID, Kind: logging.EntityKindEnemy},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func AvatarHit(ctx context.Context, pub logging.Publisher, tick uint64, enemyID string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAvatarHit,
		Tick:     tick,
		Subject:  logging.EntityRef{ID: enemyID, Kind: logging.EntityKindEnemy},
		Severity: logging.SeverityWarn,
		Category: logging.CategoryGameplay,
	})
}

// MysteryRewardPayload forwards the opaque reward to the meta-progression
// collaborator; the simulation never interprets it.
type MysteryRewardPayload struct {
	Reward map[string]any `json:"reward,omitempty"`
}

func MysteryReward(ctx context.Context, pub logging.Publisher, tick uint64, targetID string, payload MysteryRewardPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMysteryReward,
		Tick:     tick,
		Subject:  logging.EntityRef{ID: targetID, Kind: logging.EntityKindMystery},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func ProjectileFired(ctx context.Context, pub logging.Publisher, tick uint64, projectileID string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileFired,
		Tick:     tick,
		Subject:  logging.EntityRef{ID: projectileID, Kind: logging.EntityKindProjectile},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
	})
}

func ProjectileMissed(ctx context.Context, pub logging.Publisher, tick uint64, projectileID string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileMissed,
		Tick:     tick,
		Subject:  logging.EntityRef{ID: projectileID, Kind: logging.EntityKindProjectile},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
	})
}

// LevelClearedPayload reports the final score when a level empties out.
type LevelClearedPayload struct {
	LevelID string `json:"levelId"`
	Score   int    `json:"score"`
}

func LevelCleared(ctx context.Context, pub logging.Publisher, tick uint64, payload LevelClearedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLevelCleared,
		Tick:     tick,
		Subject:  logging.EntityRef{ID: payload.LevelID, Kind: logging.EntityKindSession},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}
