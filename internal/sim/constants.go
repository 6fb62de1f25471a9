package sim

const (
	// maxTickDelta absorbs host stalls (tab backgrounding, debugger pauses):
	// larger frame deltas are clamped before integration.
	maxTickDelta = 0.25 // seconds

	// projectileCullY marks the off-top line past which a projectile counts
	// as missed.
	projectileCullY = -100.0
)

// spawnHeightFractions is the fixed repeating cycle of screen-relative spawn
// heights, indexed by a wave's spawn counter.
var spawnHeightFractions = []float64{0.15, 0.30, 0.22, 0.40, 0.25}

const (
	metricEnemiesLive      = "sim_enemies_live"
	metricProjectilesLive  = "sim_projectiles_live"
	metricPoolEnemiesFree  = "sim_pool_enemies_free"
	metricPoolShotsFree    = "sim_pool_projectiles_free"
	metricEnemiesSpawned   = "sim_enemies_spawned_total"
	metricEnemiesSplit     = "sim_enemies_split_total"
	metricEnemiesDestroyed = "sim_enemies_destroyed_total"
	metricTicksTotal       = "sim_ticks_total"
	metricTickPanics       = "sim_tick_panics_total"
	metricQueueOccupancy   = "sim_command_queue_occupancy"
	metricQueueOverflow    = "sim_command_queue_overflow_total"
)
