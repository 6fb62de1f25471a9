package sim

// overlaps reports strict AABB intersection. Boxes that merely touch along an
// edge do not collide.
func overlaps(a, b Entity) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

// collisionOutcome aggregates everything one resolution pass produced.
type collisionOutcome struct {
	events     []Event
	scoreDelta int
	avatarHit  bool
}

// resolveCollisions runs the fixed-order passes for one tick: projectiles
// against enemies, score-and-split, enemies against the avatar, projectiles
// against mystery targets. An avatar hit short-circuits the mystery pass.
// Split children are appended last so nothing re-evaluates them this tick.
func (w *world) resolveCollisions() collisionOutcome {
	var out collisionOutcome

	// A projectile hits at most one enemy per tick, and an enemy is hit by at
	// most one projectile per tick.
	hitEnemies := map[int]bool{}
	spentShots := map[int]bool{}
	for pi, projectile := range w.projectiles {
		for ei, enemy := range w.enemies {
			if hitEnemies[ei] || !overlaps(projectile.Entity, enemy.Entity) {
				continue
			}
			hitEnemies[ei] = true
			if !projectile.Piercing {
				spentShots[pi] = true
			}
			break
		}
	}

	var children []*Enemy
	for ei := len(w.enemies) - 1; ei >= 0; ei-- {
		if !hitEnemies[ei] {
			continue
		}
		enemy := w.enemies[ei]
		points := w.cfg.PointsForSize(enemy.SizeLevel)
		out.scoreDelta += points

		if enemy.SizeLevel > 1 {
			brood := w.splitEnemy(enemy)
			ids := make([]string, 0, len(brood))
			for _, child := range brood {
				ids = append(ids, child.ID)
			}
			children = append(children, brood...)
			out.events = append(out.events, Event{
				Type:      EventEnemySplit,
				EntityID:  enemy.ID,
				SizeLevel: enemy.SizeLevel,
				Points:    points,
				ChildIDs:  ids,
				X:         enemy.X,
				Y:         enemy.Y,
			})
		} else {
			out.events = append(out.events, Event{
				Type:      EventEnemyEliminated,
				EntityID:  enemy.ID,
				SizeLevel: enemy.SizeLevel,
				Points:    points,
				X:         enemy.X,
				Y:         enemy.Y,
			})
		}

		w.enemies = append(w.enemies[:ei], w.enemies[ei+1:]...)
		w.pool.Release(enemy)
	}

	for pi := len(w.projectiles) - 1; pi >= 0; pi-- {
		if !spentShots[pi] {
			continue
		}
		projectile := w.projectiles[pi]
		w.projectiles = append(w.projectiles[:pi], w.projectiles[pi+1:]...)
		w.pool.Release(projectile)
	}

	for _, enemy := range w.enemies {
		if overlaps(enemy.Entity, w.avatar.Entity) {
			out.avatarHit = true
			out.events = append(out.events, Event{
				Type:      EventAvatarHit,
				EntityID:  enemy.ID,
				SizeLevel: enemy.SizeLevel,
				X:         enemy.X,
				Y:         enemy.Y,
			})
			break
		}
	}

	if !out.avatarHit {
		for mi := len(w.mysteries) - 1; mi >= 0; mi-- {
			target := w.mysteries[mi]
			hit := -1
			for pi, projectile := range w.projectiles {
				if overlaps(projectile.Entity, target.Entity) {
					hit = pi
					break
				}
			}
			if hit < 0 {
				continue
			}
			out.events = append(out.events, Event{
				Type:     EventMysteryReward,
				EntityID: target.ID,
				Reward:   target.Reward,
				X:        target.X,
				Y:        target.Y,
			})
			if !w.projectiles[hit].Piercing {
				projectile := w.projectiles[hit]
				w.projectiles = append(w.projectiles[:hit], w.projectiles[hit+1:]...)
				w.pool.Release(projectile)
			}
			w.mysteries = append(w.mysteries[:mi], w.mysteries[mi+1:]...)
		}
	}

	w.enemies = append(w.enemies, children...)

	return out
}

// splitEnemy spawns the parent's children fanned across an upward arc. The
// parent itself is untouched; callers remove it.
func (w *world) splitEnemy(parent *Enemy) []*Enemy {
	behavior := parent.Split
	count := behavior.SplitInto
	if count < 1 {
		count = 1
	}

	childLevel := parent.SizeLevel - 1
	width := parent.Width * behavior.ChildSizeReduction
	height := parent.Height * behavior.ChildSizeReduction

	children := make([]*Enemy, 0, count)
	for i := 0; i < count; i++ {
		dirX := 0.0
		if count > 1 {
			dirX = -1 + 2*float64(i)/float64(count-1)
		}
		child := w.pool.AcquireEnemy()
		child.SizeLevel = childLevel
		child.Type = parent.Type
		child.Split = behavior
		child.Width = width
		child.Height = height
		child.X = clamp(parent.X+dirX*w.cfg.SplitOffset, 0, w.cfg.ScreenWidth-width)
		child.Y = parent.Y
		child.VelX = dirX * w.cfg.SplitVelocityX * behavior.ChildSpeedBonus
		if dirX == 0 {
			// The middle child of an odd fan has no outward direction; it
			// still must not move purely vertically.
			child.VelX = w.cfg.MinHorizontalVelocity
			if w.rng.Intn(2) == 0 {
				child.VelX = -child.VelX
			}
		}
		child.VelY = w.cfg.SplitVelocityY * behavior.ChildSpeedBonus
		children = append(children, child)
	}
	return children
}
