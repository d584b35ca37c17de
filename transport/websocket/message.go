package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionGameNew    = "game:new"
	actionGameTurn   = "game:turn"
	actionGameReset  = "game:reset"
	actionGameMode   = "game:mode"
	actionGameState  = "game:state"
	actionGameUpdate = "game:update"
	actionCellFocus  = "cell:focus"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload - request and response body of every action.
type Payload struct {
	GameID string       `json:"game_id,omitempty"`
	Mode   string       `json:"mode,omitempty"`
	Cell   *int         `json:"cell,omitempty"`
	Key    string       `json:"key,omitempty"`
	Game   *entity.Game `json:"game,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return message, nil
}
