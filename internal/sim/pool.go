package sim

import (
	"github.com/google/uuid"

	"bounce-and-burst/sim/internal/telemetry"
)

// Pool recycles enemy and projectile records so steady-state play allocates
// nothing per spawn. It is owned by a single driver instance, never shared
// process-wide, and is only touched from within a tick.
type Pool struct {
	freeEnemies     []*Enemy
	freeProjectiles []*Projectile
	live            map[string]struct{}
	metrics         telemetry.Metrics
}

func NewPool(metrics telemetry.Metrics) *Pool {
	return &Pool{
		live:    make(map[string]struct{}),
		metrics: metrics,
	}
}

// AcquireEnemy returns a reset enemy record with a fresh ID. The caller is
// expected to overwrite every field before the record becomes visible.
func (p *Pool) AcquireEnemy() *Enemy {
	var enemy *Enemy
	if n := len(p.freeEnemies); n > 0 {
		enemy = p.freeEnemies[n-1]
		p.freeEnemies = p.freeEnemies[:n-1]
		enemy.reset()
	} else {
		enemy = &Enemy{}
	}
	enemy.ID = uuid.NewString()
	p.live[enemy.ID] = struct{}{}
	p.storeGauges()
	return enemy
}

// AcquireProjectile returns a reset projectile record with a fresh ID.
func (p *Pool) AcquireProjectile() *Projectile {
	var projectile *Projectile
	if n := len(p.freeProjectiles); n > 0 {
		projectile = p.freeProjectiles[n-1]
		p.freeProjectiles = p.freeProjectiles[:n-1]
		projectile.reset()
	} else {
		projectile = &Projectile{}
	}
	projectile.ID = uuid.NewString()
	p.live[projectile.ID] = struct{}{}
	p.storeGauges()
	return projectile
}

// Release returns an entity to its free list. Releasing an unknown or
// already-released entity is a no-op: removal passes may race with defensive
// culls within a tick, and double-release must never corrupt the free list.
func (p *Pool) Release(entity any) {
	switch e := entity.(type) {
	case *Enemy:
		if e == nil {
			return
		}
		if _, ok := p.live[e.ID]; !ok {
			return
		}
		delete(p.live, e.ID)
		p.freeEnemies = append(p.freeEnemies, e)
	case *Projectile:
		if e == nil {
			return
		}
		if _, ok := p.live[e.ID]; !ok {
			return
		}
		delete(p.live, e.ID)
		p.freeProjectiles = append(p.freeProjectiles, e)
	}
	p.storeGauges()
}

// LiveCount reports how many acquired records have not been released.
func (p *Pool) LiveCount() int {
	return len(p.live)
}

// TrackedCount reports every record the pool has ever retained: live plus
// free. It never exceeds the historical peak of simultaneously live entities.
func (p *Pool) TrackedCount() int {
	return len(p.live) + len(p.freeEnemies) + len(p.freeProjectiles)
}

func (p *Pool) storeGauges() {
	if p.metrics == nil {
		return
	}
	p.metrics.Store(metricPoolEnemiesFree, uint64(len(p.freeEnemies)))
	p.metrics.Store(metricPoolShotsFree, uint64(len(p.freeProjectiles)))
}
