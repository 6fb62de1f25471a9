package sim

import "time"

// CommandType enumerates the intents external collaborators may stage.
type CommandType string

const (
	CommandSetAvatarX CommandType = "SetAvatarX"
	CommandFire       CommandType = "Fire"
)

// Command represents an intent captured for processing at the start of the
// next tick. Intents are validated and clamped when applied, never rejected
// for out-of-range values.
type Command struct {
	Type     CommandType `json:"type"`
	X        float64     `json:"x,omitempty"`
	IssuedAt time.Time   `json:"issuedAt,omitempty"`
}
