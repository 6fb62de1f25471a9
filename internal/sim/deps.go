package sim

import (
	"math/rand"

	"bounce-and-burst/sim/internal/telemetry"
	"bounce-and-burst/sim/logging"
)

// Deps carries the shared infrastructure the driver needs. Zero-value fields
// are replaced with safe defaults so tests can construct a driver from
// nothing but a level script.
type Deps struct {
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Publisher logging.Publisher
	RNG       *rand.Rand
}

func (d Deps) normalized() Deps {
	if d.Logger == nil {
		d.Logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	if d.Metrics == nil {
		d.Metrics = telemetry.WrapMetrics(nil)
	}
	if d.Publisher == nil {
		d.Publisher = logging.NopPublisher()
	}
	if d.RNG == nil {
		d.RNG = rand.New(rand.NewSource(1))
	}
	return d
}
