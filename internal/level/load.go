package level

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultMysteryLifetimeSeconds = 8.0

// SkipReport names a wave or spawn definition dropped during validation. The
// rest of the level keeps loading; callers surface reports as warnings.
type SkipReport struct {
	WaveID   string
	DefIndex int // -1 when the whole wave was dropped
	Reason   string
}

var errMissingID = errors.New("level script missing id")

// Parse decodes and sanitizes a YAML level script. Malformed waves and spawn
// definitions are dropped and reported rather than failing the level; only an
// unreadable document or a missing level ID is an error.
func Parse(data []byte) (*Descriptor, []SkipReport, error) {
	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, nil, fmt.Errorf("decode level script: %w", err)
	}
	if desc.ID == "" {
		return nil, nil, errMissingID
	}
	skipped := desc.normalize()
	return &desc, skipped, nil
}

// LoadFile reads and parses a level script from disk.
func LoadFile(path string) (*Descriptor, []SkipReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read level script %s: %w", path, err)
	}
	desc, skipped, err := Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("level script %s: %w", path, err)
	}
	return desc, skipped, nil
}

// normalize applies defaults in place and prunes entries that cannot run.
func (d *Descriptor) normalize() []SkipReport {
	var skipped []SkipReport

	waves := d.Waves[:0]
	for i, wave := range d.Waves {
		if wave.ID == "" {
			wave.ID = fmt.Sprintf("wave-%d", i+1)
		}
		if reason := wave.invalidReason(); reason != "" {
			skipped = append(skipped, SkipReport{WaveID: wave.ID, DefIndex: -1, Reason: reason})
			continue
		}
		if !wave.SpawnPattern.Known() {
			if wave.SpawnPattern != "" {
				skipped = append(skipped, SkipReport{
					WaveID:   wave.ID,
					DefIndex: -1,
					Reason:   fmt.Sprintf("unknown spawn pattern %q, using %q", wave.SpawnPattern, PatternTwoPoint),
				})
			}
			wave.SpawnPattern = PatternTwoPoint
		}

		defs := wave.Spawns[:0]
		for j, def := range wave.Spawns {
			if reason := def.invalidReason(); reason != "" {
				skipped = append(skipped, SkipReport{WaveID: wave.ID, DefIndex: j, Reason: reason})
				continue
			}
			if def.MovementSpeedMultiplier <= 0 {
				def.MovementSpeedMultiplier = 1
			}
			if def.Split != nil {
				normalized := def.Split.withDefaults()
				def.Split = &normalized
			}
			defs = append(defs, def)
		}
		wave.Spawns = defs
		if len(wave.Spawns) == 0 {
			skipped = append(skipped, SkipReport{WaveID: wave.ID, DefIndex: -1, Reason: "no usable spawn definitions"})
			continue
		}
		waves = append(waves, wave)
	}
	d.Waves = waves

	mysteries := d.Mysteries[:0]
	for _, mystery := range d.Mysteries {
		if mystery.AppearAtSeconds < 0 || mystery.XFraction < 0 || mystery.XFraction > 1 ||
			mystery.YFraction < 0 || mystery.YFraction > 1 {
			skipped = append(skipped, SkipReport{WaveID: "mystery", DefIndex: -1, Reason: "mystery target out of range"})
			continue
		}
		if mystery.LifetimeSeconds <= 0 {
			mystery.LifetimeSeconds = defaultMysteryLifetimeSeconds
		}
		mysteries = append(mysteries, mystery)
	}
	d.Mysteries = mysteries

	return skipped
}

func (w Wave) invalidReason() string {
	if w.StartOffsetSeconds < 0 {
		return "negative start offset"
	}
	if w.DurationSeconds <= 0 {
		return "missing or non-positive duration"
	}
	if len(w.Spawns) == 0 {
		return "no spawn definitions"
	}
	return ""
}

func (d SpawnDef) invalidReason() string {
	if !d.Type.Known() {
		return fmt.Sprintf("unknown enemy type %q", string(d.Type))
	}
	if d.SizeLevel < 1 || d.SizeLevel > 3 {
		return fmt.Sprintf("size level %d out of range", d.SizeLevel)
	}
	if d.Count <= 0 {
		return "missing or non-positive count"
	}
	if d.SpawnIntervalSeconds <= 0 {
		return "missing or non-positive spawn interval"
	}
	return ""
}
