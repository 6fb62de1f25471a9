package logging

import "time"

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock. Simulation code never uses it directly;
// it exists so the router and the host harness share one time source.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
