package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	sendBufferSize  = 16
	pingInterval    = 30 * time.Second
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

var errClientGone = errors.New("client disconnected")

type gameManager interface {
	CreateGame(ctx context.Context, mode string) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	Reset(ctx context.Context, id string) (*entity.Game, error)
	SetMode(ctx context.Context, id, mode string) (*entity.Game, error)
	EndGame(ctx context.Context, id string) error

	Subscribe(id string, fn func(game *entity.Game))
}

type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	upgrader    websocket.Upgrader

	handlers map[string]func(ctx context.Context, message *Message, client *client) error
}

// client - one browser tab. Games it created end when it disconnects.
type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu    sync.Mutex
	games map[string]struct{}
}

// owns - only the connection that created a game may act on it.
func (that *client) owns(id string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.games[id]

	return ok
}

func New(logger *slog.Logger, gameManager gameManager) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameManager: gameManager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]func(context.Context, *Message, *client) error),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionGameMode] = server.handleGameMode
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionCellFocus] = server.handleCellFocus

	return server
}

func (that *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", that.serveWS)

	return r
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	client := &client{
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		done:  make(chan struct{}),
		games: make(map[string]struct{}),
	}

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	go func() {
		select {
		case <-req.Context().Done():
			_ = conn.Close()
		case <-client.done:
		}
	}()

	go func() {
		if err := that.writeMessages(client); err != nil {
			log.Debug("writer stopped", "error", err)
		}
	}()

	if err = that.handleMessages(req.Context(), client); err != nil {
		log.Debug("reader stopped", "error", err)
	}

	close(client.done)
	that.endGames(client)

	log.Info("WebSocket connection closed", "remote", req.RemoteAddr)
}

// handleMessages - processes messages from the client until the connection drops.
func (that *Server) handleMessages(ctx context.Context, client *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := client.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(client, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, client); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// writeMessages - the only writer of the connection. Idle connections get a ping.
func (that *Server) writeMessages(client *client) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-client.done:
			return nil
		case message := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
		}
	}
}

// endGames - games live as long as the connection that created them.
func (that *Server) endGames(client *client) {
	log := that.logger.With("method", "endGames")

	client.mu.Lock()
	defer client.mu.Unlock()

	for id := range client.games {
		if err := that.gameManager.EndGame(context.Background(), id); err != nil {
			log.Warn("failed to end game", "gameID", id, "error", err)
		}
	}
}

func (that *Server) sendMessage(client *client, action string, payload Payload) error {
	message, err := encodeMessage(action, payload)
	if err != nil {
		return err
	}

	select {
	case client.send <- message:
		return nil
	case <-client.done:
		return errClientGone
	}
}

func (that *Server) sendErrorResponse(client *client, action, errorMsg string) error {
	if err := that.sendMessage(client, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
