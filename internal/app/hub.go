package app

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bounce-and-burst/sim/internal/level"
	"bounce-and-burst/sim/internal/net/ws"
	"bounce-and-burst/sim/internal/sim"
	"bounce-and-burst/sim/internal/telemetry"
)

// stateMessage is the per-tick frame broadcast to every subscriber.
type stateMessage struct {
	Type         string       `json:"type"`
	Snapshot     sim.Snapshot `json:"snapshot"`
	Events       []sim.Event  `json:"events,omitempty"`
	ScoreDelta   int          `json:"scoreDelta,omitempty"`
	LevelCleared bool         `json:"levelCleared,omitempty"`
	AvatarHit    bool         `json:"avatarHit,omitempty"`
	ServerTime   int64        `json:"serverTime"`
}

type levelListMessage struct {
	Type   string   `json:"type"`
	Levels []string `json:"levels"`
}

// Hub binds one driver to its websocket subscribers and runs the tick loop.
// Intents arrive from any read goroutine; the driver's command buffer stages
// them until tick start.
type Hub struct {
	driver   *sim.Driver
	logger   telemetry.Logger
	tickRate int

	mu       sync.Mutex
	levels   map[string]*level.Descriptor
	sessions map[string]*ws.Session
}

func NewHub(driver *sim.Driver, levels map[string]*level.Descriptor, logger telemetry.Logger, tickRate int) *Hub {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return &Hub{
		driver:   driver,
		logger:   logger,
		tickRate: tickRate,
		levels:   levels,
		sessions: make(map[string]*ws.Session),
	}
}

// Subscribe registers a session and greets it with the level catalog and the
// current state.
func (h *Hub) Subscribe(session *ws.Session) {
	h.mu.Lock()
	h.sessions[session.ID()] = session
	h.mu.Unlock()

	if err := session.WriteJSON(levelListMessage{Type: "levels", Levels: h.LevelIDs()}); err != nil {
		h.logger.Printf("failed to greet subscriber %s: %v", session.ID(), err)
		h.Unsubscribe(session.ID())
		return
	}
	h.logger.Printf("subscriber %s connected", session.ID())
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	session, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()
	if ok {
		session.Close()
		h.logger.Printf("subscriber %s disconnected", id)
	}
}

// LevelIDs lists the loaded level scripts in stable order.
func (h *Hub) LevelIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]string, 0, len(h.levels))
	for id := range h.levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply routes one client intent to the driver.
func (h *Hub) Apply(cmd ws.Command) error {
	switch cmd.Type {
	case ws.CommandSetAvatarX:
		h.driver.SetAvatarX(cmd.X)
		return nil
	case ws.CommandFire:
		h.driver.FireProjectile()
		return nil
	case ws.CommandStart:
		return h.startLevel(cmd.LevelID)
	case ws.CommandReset:
		h.driver.Reset()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd.Type)
	}
}

func (h *Hub) startLevel(levelID string) error {
	h.mu.Lock()
	descriptor, ok := h.levels[levelID]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown level %q", levelID)
	}

	h.driver.Reset()
	if err := h.driver.LoadLevel(descriptor); err != nil {
		return err
	}
	return h.driver.Start()
}

// RunSimulation drives ticks at the configured rate until stop closes. Frame
// deltas are measured, not assumed, so a slow broadcast shows up as a larger
// dt instead of silently stretching game time.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	interval := time.Second / time.Duration(h.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			result := h.driver.Tick(dt)
			h.broadcast(result)
		}
	}
}

func (h *Hub) broadcast(result sim.TickResult) {
	message := stateMessage{
		Type:         "state",
		Snapshot:     h.driver.Snapshot(),
		Events:       result.Events,
		ScoreDelta:   result.ScoreDelta,
		LevelCleared: result.LevelCleared,
		AvatarHit:    result.AvatarHit,
		ServerTime:   time.Now().UnixMilli(),
	}

	h.mu.Lock()
	recipients := make(map[string]*ws.Session, len(h.sessions))
	for id, session := range h.sessions {
		recipients[id] = session
	}
	h.mu.Unlock()

	for id, session := range recipients {
		if err := session.WriteJSON(message); err != nil {
			h.logger.Printf("dropping subscriber %s: %v", id, err)
			h.Unsubscribe(id)
		}
	}
}
