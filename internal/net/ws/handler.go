package ws

import (
	"encoding/json"
	"log"
	nethttp "net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"bounce-and-burst/sim/internal/telemetry"
)

// Command is a decoded client intent frame.
type Command struct {
	Type    string  `json:"type"`
	X       float64 `json:"x,omitempty"`
	LevelID string  `json:"levelId,omitempty"`
}

const (
	CommandSetAvatarX = "setAvatarX"
	CommandFire       = "fire"
	CommandStart      = "start"
	CommandReset      = "reset"
)

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Controller is the surface the transport needs from the session hub.
type Controller interface {
	Subscribe(session *Session)
	Unsubscribe(id string)
	Apply(cmd Command) error
}

type HandlerConfig struct {
	Logger telemetry.Logger
}

type Handler struct {
	controller Controller
	logger     telemetry.Logger
	upgrader   websocket.Upgrader
}

func NewHandler(controller Controller, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.WrapLogger(log.Default())
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	return &Handler{
		controller: controller,
		logger:     logger,
		upgrader:   upgrader,
	}
}

// Handle upgrades the request and pumps client intents into the controller
// until the connection drops.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed: %v", err)
		return
	}

	session := NewSession(uuid.NewString(), conn)
	h.controller.Subscribe(session)
	defer func() {
		h.controller.Unsubscribe(session.ID())
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", session.ID(), err)
			continue
		}

		if err := h.controller.Apply(cmd); err != nil {
			if writeErr := session.WriteJSON(errorMessage{Type: "error", Message: err.Error()}); writeErr != nil {
				return
			}
		}
	}
}
