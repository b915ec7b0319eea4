package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	actionConnect = "connect"
	actionState   = "game:state"
	actionMove    = "game:move"
	actionReset   = "game:reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is sent in both directions; requests use SessionID and Cell,
// replies fill Game, Accepted or Error.
type Payload struct {
	SessionID string           `json:"session_id,omitempty"`
	Cell      *int             `json:"cell,omitempty"`
	Game      *entity.Snapshot `json:"game,omitempty"`
	Accepted  *bool            `json:"accepted,omitempty"`
	Error     string           `json:"error,omitempty"`
}
