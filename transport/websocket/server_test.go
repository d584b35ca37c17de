package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

const readTimeout = 2 * time.Second

func newTestServer(t *testing.T) string {
	t.Helper()

	logger := suite.NewLogger(t)

	engine, err := tictactoe.NewEngine(entity.PlayerO, nil)
	require.NoError(t, err)

	manager := usecase.NewGameManager(logger, repository.NewGameRepository(), engine, entity.PlayerO, time.Millisecond)
	server := httptest.NewServer(New(logger, manager).Router())
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func connect(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	return connect(t, newTestServer(t))
}

func send(t *testing.T, conn *websocket.Conn, action string, payload Payload) {
	t.Helper()

	message, err := encodeMessage(action, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, message))
}

func receive(t *testing.T, conn *websocket.Conn) (string, Payload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))

	var payload Payload
	require.NoError(t, json.Unmarshal(message.Payload, &payload))

	return message.Action, payload
}

func cellPtr(cell int) *int {
	return &cell
}

func TestServer_HumanGame(t *testing.T) {
	conn := dial(t)

	// Given: a new human-vs-human game
	send(t, conn, actionGameNew, Payload{Mode: entity.HumanMode})
	action, payload := receive(t, conn)
	require.Equal(t, actionGameNew, action)
	require.NotNil(t, payload.Game)
	gameID := payload.Game.ID

	// When: X takes the center
	send(t, conn, actionGameTurn, Payload{GameID: gameID, Cell: cellPtr(4)})
	action, payload = receive(t, conn)

	// Then: O is to move
	require.Equal(t, actionGameTurn, action)
	require.Empty(t, payload.Error)
	assert.Equal(t, entity.PlayerX, payload.Game.Board[4])
	assert.Equal(t, entity.PlayerO, payload.Game.Turn)

	// And: the same cell cannot be taken twice
	send(t, conn, actionGameTurn, Payload{GameID: gameID, Cell: cellPtr(4)})
	action, payload = receive(t, conn)
	assert.Equal(t, actionGameTurn, action)
	assert.Contains(t, payload.Error, "occupied")

	// And: state reflects the first move only
	send(t, conn, actionGameState, Payload{GameID: gameID})
	_, payload = receive(t, conn)
	assert.Equal(t, "____X____", payload.Game.Board.String())

	// And: reset clears the board
	send(t, conn, actionGameReset, Payload{GameID: gameID})
	_, payload = receive(t, conn)
	assert.True(t, payload.Game.Board.IsEmpty())
}

func TestServer_BotGame(t *testing.T) {
	conn := dial(t)

	send(t, conn, actionGameNew, Payload{Mode: entity.BotMode})
	_, payload := receive(t, conn)
	require.NotNil(t, payload.Game)
	gameID := payload.Game.ID

	// When: X takes the center
	send(t, conn, actionGameTurn, Payload{GameID: gameID, Cell: cellPtr(4)})

	// Then: the turn answer and the bot update both arrive
	messages := make(map[string]Payload)
	for i := 0; i < 2; i++ {
		action, payload := receive(t, conn)
		messages[action] = payload
	}

	require.Contains(t, messages, actionGameTurn)
	require.Contains(t, messages, actionGameUpdate)

	update := messages[actionGameUpdate].Game
	require.NotNil(t, update)
	assert.Equal(t, entity.PlayerO, update.Board[0])
	assert.Equal(t, entity.PlayerX, update.Turn)
}

func TestServer_ModeSwitch(t *testing.T) {
	conn := dial(t)

	send(t, conn, actionGameNew, Payload{Mode: entity.HumanMode})
	_, payload := receive(t, conn)
	gameID := payload.Game.ID

	send(t, conn, actionGameMode, Payload{GameID: gameID, Mode: entity.BotMode})
	action, payload := receive(t, conn)

	assert.Equal(t, actionGameMode, action)
	assert.Equal(t, entity.BotMode, payload.Game.Mode)
	assert.Equal(t, entity.PlayerO, payload.Game.BotMark)
}

func TestServer_CellFocus(t *testing.T) {
	conn := dial(t)

	cases := []struct {
		cell     int
		key      string
		expected int
	}{
		{cell: 4, key: tictactoe.KeyLeft, expected: 3},
		{cell: 0, key: tictactoe.KeyUp, expected: 0},
		{cell: 8, key: tictactoe.KeyRight, expected: 8},
		{cell: 1, key: tictactoe.KeyDown, expected: 4},
		{cell: 5, key: "Enter", expected: 5},
	}

	for _, tc := range cases {
		send(t, conn, actionCellFocus, Payload{Cell: cellPtr(tc.cell), Key: tc.key})
		action, payload := receive(t, conn)

		assert.Equal(t, actionCellFocus, action)
		require.NotNil(t, payload.Cell)
		assert.Equal(t, tc.expected, *payload.Cell, "%d %s", tc.cell, tc.key)
	}
}

func TestServer_Errors(t *testing.T) {
	conn := dial(t)

	t.Run("Unknown action", func(t *testing.T) {
		send(t, conn, "game:join", Payload{})
		action, payload := receive(t, conn)

		assert.Equal(t, "game:join", action)
		assert.Equal(t, "unknown action", payload.Error)
	})

	t.Run("Unknown game", func(t *testing.T) {
		send(t, conn, actionGameState, Payload{GameID: "missing"})
		_, payload := receive(t, conn)

		assert.Contains(t, payload.Error, "not found")
	})

	t.Run("Unknown mode", func(t *testing.T) {
		send(t, conn, actionGameNew, Payload{Mode: "online"})
		_, payload := receive(t, conn)

		assert.Contains(t, payload.Error, "unknown game mode")
	})

	t.Run("Turn without a cell", func(t *testing.T) {
		send(t, conn, actionGameTurn, Payload{GameID: "missing"})
		_, payload := receive(t, conn)

		assert.Contains(t, payload.Error, "game_id and cell")
	})
}

func TestServer_ForeignGame(t *testing.T) {
	url := newTestServer(t)
	owner := connect(t, url)
	stranger := connect(t, url)

	// Given: a game created by the owner
	send(t, owner, actionGameNew, Payload{Mode: entity.HumanMode})
	_, payload := receive(t, owner)
	require.NotNil(t, payload.Game)
	gameID := payload.Game.ID

	// When: another connection acts on it
	requests := []struct {
		action  string
		payload Payload
	}{
		{action: actionGameTurn, payload: Payload{GameID: gameID, Cell: cellPtr(0)}},
		{action: actionGameReset, payload: Payload{GameID: gameID}},
		{action: actionGameMode, payload: Payload{GameID: gameID, Mode: entity.BotMode}},
		{action: actionGameState, payload: Payload{GameID: gameID}},
	}

	// Then: every action is refused as if the game did not exist
	for _, req := range requests {
		send(t, stranger, req.action, req.payload)
		action, payload := receive(t, stranger)

		assert.Equal(t, req.action, action)
		assert.Contains(t, payload.Error, "not found", req.action)
		assert.Nil(t, payload.Game, req.action)
	}

	// And: the owner's game is untouched
	send(t, owner, actionGameState, Payload{GameID: gameID})
	_, payload = receive(t, owner)
	require.NotNil(t, payload.Game)
	assert.True(t, payload.Game.Board.IsEmpty())
	assert.Equal(t, entity.HumanMode, payload.Game.Mode)
}
