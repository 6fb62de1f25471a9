package level

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validScript = `
id: rooftops-1
name: Rooftops
overrides:
  gravityMultiplier: 0.8
  windForce: -20
waves:
  - id: opener
    startOffsetSeconds: 0
    durationSeconds: 20
    spawnPattern: three-point-wide
    spawns:
      - type: basic
        sizeLevel: 3
        count: 2
        spawnIntervalSeconds: 3
  - startOffsetSeconds: 15
    durationSeconds: 25
    spawnPattern: edges
    spawns:
      - type: fast
        sizeLevel: 2
        count: 4
        spawnIntervalSeconds: 2
        movementSpeedMultiplier: 1.4
        splitBehavior:
          splitInto: 3
mysteries:
  - appearAtSeconds: 10
    xFraction: 0.5
    yFraction: 0.3
    reward:
      coins: 25
`

func TestParseValidScript(t *testing.T) {
	desc, skipped, err := Parse([]byte(validScript))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skip reports: %+v", skipped)
	}

	if desc.ID != "rooftops-1" || len(desc.Waves) != 2 {
		t.Fatalf("descriptor = %+v", desc)
	}
	if desc.Waves[1].ID != "wave-2" {
		t.Fatalf("wave id default = %q, want wave-2", desc.Waves[1].ID)
	}
	if desc.Overrides.GravityMultiplier == nil || *desc.Overrides.GravityMultiplier != 0.8 {
		t.Fatal("gravity multiplier not decoded")
	}
	if desc.Overrides.EnemySpeedMultiplier != nil {
		t.Fatal("absent multiplier must decode as nil, not zero")
	}

	def := desc.Waves[0].Spawns[0]
	if def.MovementSpeedMultiplier != 1 {
		t.Fatalf("default movement speed multiplier = %v, want 1", def.MovementSpeedMultiplier)
	}

	split := desc.Waves[1].Spawns[0].SplitOrDefault()
	if split.SplitInto != 3 {
		t.Fatalf("splitInto = %d, want 3", split.SplitInto)
	}
	if split.ChildSizeReduction != DefaultSplitBehavior().ChildSizeReduction {
		t.Fatal("partial split behavior did not backfill defaults")
	}

	if len(desc.Mysteries) != 1 || desc.Mysteries[0].LifetimeSeconds != defaultMysteryLifetimeSeconds {
		t.Fatalf("mysteries = %+v", desc.Mysteries)
	}
	if desc.TotalSpawnCount() != 6 {
		t.Fatalf("TotalSpawnCount = %d, want 6", desc.TotalSpawnCount())
	}
}

func TestParseRequiresLevelID(t *testing.T) {
	_, _, err := Parse([]byte("name: anonymous\nwaves: []\n"))
	if err == nil {
		t.Fatal("script without id parsed")
	}
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	_, _, err := Parse([]byte("id: [unclosed"))
	if err == nil {
		t.Fatal("malformed YAML parsed")
	}
}

func TestParseSkipsMalformedEntriesAndContinues(t *testing.T) {
	script := `
id: ragged
waves:
  - id: no-duration
    startOffsetSeconds: 0
    spawns:
      - type: basic
        sizeLevel: 2
        count: 1
        spawnIntervalSeconds: 1
  - id: mixed
    startOffsetSeconds: 0
    durationSeconds: 10
    spawns:
      - type: gargoyle
        sizeLevel: 2
        count: 1
        spawnIntervalSeconds: 1
      - type: basic
        sizeLevel: 7
        count: 1
        spawnIntervalSeconds: 1
      - type: basic
        sizeLevel: 2
        count: 3
        spawnIntervalSeconds: 1.5
  - id: hollow
    startOffsetSeconds: 0
    durationSeconds: 10
    spawns:
      - type: basic
        sizeLevel: 2
        count: 0
        spawnIntervalSeconds: 1
`
	desc, skipped, err := Parse([]byte(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(desc.Waves) != 1 || desc.Waves[0].ID != "mixed" {
		t.Fatalf("surviving waves = %+v", desc.Waves)
	}
	if len(desc.Waves[0].Spawns) != 1 || desc.Waves[0].Spawns[0].Count != 3 {
		t.Fatalf("surviving spawns = %+v", desc.Waves[0].Spawns)
	}

	// no-duration wave, two bad defs in mixed, the zero-count def in hollow,
	// and hollow itself collapsing to zero usable definitions.
	if len(skipped) != 5 {
		t.Fatalf("%d skip reports, want 5: %+v", len(skipped), skipped)
	}
	var reasons []string
	for _, report := range skipped {
		reasons = append(reasons, report.Reason)
	}
	joined := strings.Join(reasons, "; ")
	for _, fragment := range []string{"duration", "gargoyle", "size level 7", "no usable"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("skip reasons %q missing %q", joined, fragment)
		}
	}
}

func TestParseFallsBackOnUnknownPattern(t *testing.T) {
	script := `
id: patterned
waves:
  - id: odd
    startOffsetSeconds: 0
    durationSeconds: 10
    spawnPattern: spiral
    spawns:
      - type: basic
        sizeLevel: 1
        count: 1
        spawnIntervalSeconds: 1
`
	desc, skipped, err := Parse([]byte(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if desc.Waves[0].SpawnPattern != PatternTwoPoint {
		t.Fatalf("pattern = %q, want fallback %q", desc.Waves[0].SpawnPattern, PatternTwoPoint)
	}
	if len(skipped) != 1 || !strings.Contains(skipped[0].Reason, "spiral") {
		t.Fatalf("skip reports = %+v", skipped)
	}
}

func TestParseDropsOutOfRangeMysteries(t *testing.T) {
	script := `
id: mysterious
waves:
  - id: only
    startOffsetSeconds: 0
    durationSeconds: 10
    spawns:
      - type: basic
        sizeLevel: 1
        count: 1
        spawnIntervalSeconds: 1
mysteries:
  - appearAtSeconds: 5
    xFraction: 1.5
    yFraction: 0.5
  - appearAtSeconds: 5
    xFraction: 0.5
    yFraction: 0.5
    lifetimeSeconds: 3
`
	desc, skipped, err := Parse([]byte(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(desc.Mysteries) != 1 || desc.Mysteries[0].LifetimeSeconds != 3 {
		t.Fatalf("mysteries = %+v", desc.Mysteries)
	}
	if len(skipped) != 1 {
		t.Fatalf("skip reports = %+v", skipped)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(validScript), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	desc, _, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if desc.ID != "rooftops-1" {
		t.Fatalf("ID = %q", desc.ID)
	}

	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file loaded")
	}
}
