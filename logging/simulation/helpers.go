// Package simulation defines the anomaly warnings the core surfaces to the
// telemetry collaborator. None of these are user-facing errors; the worst
// outcome they describe is a skipped tick or an ignored wave.
package simulation

import (
	"context"

	"bounce-and-burst/sim/logging"
)

const (
	// EventTickPanicRecovered is emitted when a tick's resolution panicked and
	// the tick was voided.
	EventTickPanicRecovered logging.EventType = "simulation.tick_panic_recovered"
	// EventWaveSkipped is emitted when a malformed wave or spawn definition is
	// dropped during level validation.
	EventWaveSkipped logging.EventType = "simulation.wave_skipped"
	// EventTickDeltaClamped is emitted when an oversized frame delta was capped
	// before integration.
	EventTickDeltaClamped logging.EventType = "simulation.tick_delta_clamped"
	// EventCommandDropped is emitted when the intent queue rejects a command.
	EventCommandDropped logging.EventType = "simulation.command_dropped"
)

// TickPanicPayload captures the recovered panic value as text.
type TickPanicPayload struct {
	Recovered string `json:"recovered"`
}

func TickPanicRecovered(ctx context.Context, pub logging.Publisher, tick uint64, payload TickPanicPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickPanicRecovered,
		Tick:     tick,
		Severity: logging.SeverityError,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

// WaveSkippedPayload names the offending wave and the validation failure.
type WaveSkippedPayload struct {
	LevelID string `json:"levelId"`
	WaveID  string `json:"waveId"`
	Reason  string `json:"reason"`
}

func WaveSkipped(ctx context.Context, pub logging.Publisher, payload WaveSkippedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventWaveSkipped,
		Subject:  logging.EntityRef{ID: payload.LevelID, Kind: logging.EntityKindSession},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

// TickDeltaClampedPayload records the raw and applied deltas in seconds.
type TickDeltaClampedPayload struct {
	RawDelta     float64 `json:"rawDelta"`
	AppliedDelta float64 `json:"appliedDelta"`
}

func TickDeltaClamped(ctx context.Context, pub logging.Publisher, tick uint64, payload TickDeltaClampedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickDeltaClamped,
		Tick:     tick,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}

// CommandDroppedPayload records a rejected intent and the rejection reason.
type CommandDroppedPayload struct {
	CommandType string `json:"commandType"`
	Reason      string `json:"reason"`
}

func CommandDropped(ctx context.Context, pub logging.Publisher, tick uint64, payload CommandDroppedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCommandDropped,
		Tick:     tick,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
	})
}
