package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bounce-and-burst/sim/internal/level"
	"bounce-and-burst/sim/internal/net/ws"
	"bounce-and-burst/sim/internal/sim"
	"bounce-and-burst/sim/internal/telemetry"
	"bounce-and-burst/sim/logging"
	loggingSinks "bounce-and-burst/sim/logging/sinks"
	"bounce-and-burst/sim/logging/simulation"
)

// Run wires the full host process: logging router, telemetry, level catalog,
// simulation driver, tick loop, and the HTTP/websocket surface. It blocks
// until ctx is cancelled or the listener fails.
func Run(ctx context.Context) error {
	logger := telemetry.WrapLogger(log.Default())
	cfg := ConfigFromEnv(logger)

	fallbackLogger := log.Default()
	if provider, ok := logger.(interface{ StandardLogger() *log.Logger }); ok {
		if candidate := provider.StandardLogger(); candidate != nil {
			fallbackLogger = candidate
		}
	}

	logConfig := logging.DefaultConfig()
	logConfig.EnabledSinks = cfg.LogSinks
	logConfig.JSON.FilePath = cfg.LogPath

	sinks := map[string]logging.Sink{
		"console": loggingSinks.NewConsole(os.Stdout),
	}
	if logConfig.HasSink("json") {
		path := logConfig.JSON.FilePath
		if path == "" {
			path = "bounce-and-burst.ndjson"
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open json log %s: %w", path, err)
		}
		defer file.Close()
		sinks["json"] = loggingSinks.NewJSON(file, logConfig.JSON.FlushInterval)
	}

	router, err := logging.NewRouter(logConfig, logging.SystemClock{}, fallbackLogger, sinks)
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(context.Background()); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	metrics := logging.NewMetrics()

	levels, err := loadLevels(ctx, cfg.LevelDir, logger, router)
	if err != nil {
		return err
	}

	driver := sim.NewDriver(level.DefaultBaseConfig(), sim.Deps{
		Logger:    logger,
		Metrics:   telemetry.WrapMetrics(metrics),
		Publisher: router,
	})

	hub := NewHub(driver, levels, logger, cfg.TickRate)
	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	handler := newHTTPHandler(hub, driver, metrics, router, logger)
	srv := &nethttp.Server{Addr: cfg.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	logger.Printf("server listening on %s (tick rate %d Hz, %d levels)", cfg.Addr, cfg.TickRate, len(levels))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadLevels reads every YAML script in dir. Malformed waves inside a script
// are surfaced as telemetry warnings; an unreadable script fails startup.
func loadLevels(ctx context.Context, dir string, logger telemetry.Logger, publisher logging.Publisher) (map[string]*level.Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read level dir %s: %w", dir, err)
	}

	levels := make(map[string]*level.Descriptor)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		descriptor, skipped, err := level.LoadFile(path)
		if err != nil {
			return nil, err
		}
		for _, report := range skipped {
			simulation.WaveSkipped(ctx, publisher, simulation.WaveSkippedPayload{
				LevelID: descriptor.ID,
				WaveID:  report.WaveID,
				Reason:  report.Reason,
			})
		}
		if _, exists := levels[descriptor.ID]; exists {
			return nil, fmt.Errorf("duplicate level id %q in %s", descriptor.ID, path)
		}
		levels[descriptor.ID] = descriptor
		logger.Printf("loaded level %s (%d waves, %d scripted spawns)", descriptor.ID, len(descriptor.Waves), descriptor.TotalSpawnCount())
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("no level scripts in %s", dir)
	}
	return levels, nil
}

func newHTTPHandler(hub *Hub, driver *sim.Driver, metrics *logging.Metrics, router *logging.Router, logger telemetry.Logger) nethttp.Handler {
	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/levels", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, struct {
			Levels []string `json:"levels"`
		}{Levels: hub.LevelIDs()})
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		snapshot := driver.Snapshot()
		stats := router.Stats()
		writeJSON(w, struct {
			Status     string            `json:"status"`
			ServerTime int64             `json:"serverTime"`
			State      sim.State         `json:"state"`
			Tick       uint64            `json:"tick"`
			LevelID    string            `json:"levelId,omitempty"`
			Score      int               `json:"score"`
			Metrics    map[string]uint64 `json:"metrics"`
			LogsQueued uint64            `json:"logsQueued"`
			LogsDropped uint64           `json:"logsDropped"`
		}{
			Status:      "ok",
			ServerTime:  time.Now().UnixMilli(),
			State:       snapshot.State,
			Tick:        snapshot.Tick,
			LevelID:     snapshot.LevelID,
			Score:       snapshot.Score,
			Metrics:     metrics.Snapshot(),
			LogsQueued:  stats.EventsTotal,
			LogsDropped: stats.DroppedTotal,
		})
	})

	wsHandler := ws.NewHandler(hub, ws.HandlerConfig{Logger: logger})
	mux.HandleFunc("/ws", wsHandler.Handle)

	return mux
}

func writeJSON(w nethttp.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		nethttp.Error(w, "failed to encode", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
