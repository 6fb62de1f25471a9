package logging_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"bounce-and-burst/sim/logging"
	"bounce-and-burst/sim/logging/sinks"
)

func newTestRouter(t *testing.T, cfg logging.Config, sink logging.Sink) *logging.Router {
	t.Helper()
	clock := logging.ClockFunc(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	fallback := log.New(io.Discard, "", 0)
	router, err := logging.NewRouter(cfg, clock, fallback, map[string]logging.Sink{"memory": sink})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return router
}

func TestRouterDeliversToEnabledSinks(t *testing.T) {
	memory := sinks.NewMemory()
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = []string{"memory"}

	router := newTestRouter(t, cfg, memory)

	router.Publish(context.Background(), logging.Event{
		Type:     "gameplay.enemy_eliminated",
		Tick:     7,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("%d events delivered, want 1", len(events))
	}
	if events[0].Tick != 7 || events[0].Time.IsZero() {
		t.Fatalf("event = %+v", events[0])
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	memory := sinks.NewMemory()
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = []string{"memory"}
	cfg.MinimumSeverity = logging.SeverityWarn

	router := newTestRouter(t, cfg, memory)

	router.Publish(context.Background(), logging.Event{Type: "a", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "b", Severity: logging.SeverityWarn})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events := memory.Events()
	if len(events) != 1 || events[0].Type != "b" {
		t.Fatalf("events = %+v, want only the warning", events)
	}
}

func TestRouterIgnoresUntypedEvents(t *testing.T) {
	memory := sinks.NewMemory()
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = []string{"memory"}

	router := newTestRouter(t, cfg, memory)
	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityInfo})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if events := memory.Events(); len(events) != 0 {
		t.Fatalf("untyped event delivered: %+v", events)
	}
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Write(logging.Event) error {
	<-s.release
	return nil
}

func (s *blockingSink) Close(context.Context) error { return nil }

func TestRouterDropsWhenSaturated(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = []string{"memory"}
	cfg.BufferSize = 1

	router := newTestRouter(t, cfg, sink)

	for i := 0; i < 5; i++ {
		router.Publish(context.Background(), logging.Event{Type: "flood", Severity: logging.SeverityInfo})
	}
	if router.Stats().DroppedTotal == 0 {
		t.Fatal("saturated router dropped nothing")
	}

	close(sink.release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := router.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
