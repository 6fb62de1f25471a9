package app

import (
	"reflect"
	"testing"

	"bounce-and-burst/sim/internal/level"
	"bounce-and-burst/sim/internal/net/ws"
	"bounce-and-burst/sim/internal/sim"
	"bounce-and-burst/sim/internal/telemetry"
)

func testDescriptor(id string) *level.Descriptor {
	return &level.Descriptor{
		ID: id,
		Waves: []level.Wave{{
			ID:                 "wave-1",
			StartOffsetSeconds: 0,
			DurationSeconds:    10,
			SpawnPattern:       level.PatternTwoPoint,
			Spawns: []level.SpawnDef{{
				Type:                    level.EnemyBasic,
				SizeLevel:               2,
				Count:                   2,
				SpawnIntervalSeconds:    1,
				MovementSpeedMultiplier: 1,
			}},
		}},
	}
}

func testHub() *Hub {
	driver := sim.NewDriver(level.DefaultBaseConfig(), sim.Deps{})
	levels := map[string]*level.Descriptor{
		"rooftops-1": testDescriptor("rooftops-1"),
		"harbor-2":   testDescriptor("harbor-2"),
	}
	return NewHub(driver, levels, telemetry.LoggerFunc(func(string, ...any) {}), 60)
}

func TestHubLevelIDsSorted(t *testing.T) {
	hub := testHub()
	want := []string{"harbor-2", "rooftops-1"}
	if got := hub.LevelIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("LevelIDs = %v, want %v", got, want)
	}
}

func TestHubStartLevel(t *testing.T) {
	hub := testHub()

	if err := hub.Apply(ws.Command{Type: ws.CommandStart, LevelID: "rooftops-1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if state := hub.driver.Snapshot().State; state != sim.StateRunning {
		t.Fatalf("state = %q, want running", state)
	}

	// Starting another level mid-session resets first.
	if err := hub.Apply(ws.Command{Type: ws.CommandStart, LevelID: "harbor-2"}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	snap := hub.driver.Snapshot()
	if snap.State != sim.StateRunning || snap.LevelID != "harbor-2" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestHubStartUnknownLevel(t *testing.T) {
	hub := testHub()
	if err := hub.Apply(ws.Command{Type: ws.CommandStart, LevelID: "nope"}); err == nil {
		t.Fatal("unknown level started")
	}
	if state := hub.driver.Snapshot().State; state != sim.StateIdle {
		t.Fatalf("state = %q, want idle", state)
	}
}

func TestHubRoutesIntents(t *testing.T) {
	hub := testHub()
	if err := hub.Apply(ws.Command{Type: ws.CommandStart, LevelID: "rooftops-1"}); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := hub.Apply(ws.Command{Type: ws.CommandSetAvatarX, X: 123}); err != nil {
		t.Fatalf("setAvatarX: %v", err)
	}
	if err := hub.Apply(ws.Command{Type: ws.CommandFire}); err != nil {
		t.Fatalf("fire: %v", err)
	}

	hub.driver.Tick(1.0 / 60)

	snap := hub.driver.Snapshot()
	if snap.Avatar.X != 123 {
		t.Fatalf("avatar X = %v, want 123", snap.Avatar.X)
	}
	if len(snap.Projectiles) != 1 {
		t.Fatalf("%d projectiles, want 1", len(snap.Projectiles))
	}
}

func TestHubRejectsUnknownCommand(t *testing.T) {
	hub := testHub()
	if err := hub.Apply(ws.Command{Type: "teleport"}); err == nil {
		t.Fatal("unknown command accepted")
	}
}

func TestHubReset(t *testing.T) {
	hub := testHub()
	if err := hub.Apply(ws.Command{Type: ws.CommandStart, LevelID: "rooftops-1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	hub.driver.Tick(1.5)

	if err := hub.Apply(ws.Command{Type: ws.CommandReset}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	snap := hub.driver.Snapshot()
	if snap.State != sim.StateIdle || len(snap.Enemies) != 0 {
		t.Fatalf("snapshot after reset = %+v", snap)
	}
}
