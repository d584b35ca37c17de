package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errInvalidPayload = errors.New("invalid payload")

type Handlers interface {
	Evaluate(w http.ResponseWriter, r *http.Request)
	BestMove(w http.ResponseWriter, r *http.Request)
	CacheStatus(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger
	engine engine
}

type boardRequest struct {
	Board *entity.Board `json:"board"`
	Mark  entity.Mark   `json:"mark"`
}

type evaluateResponse struct {
	Outcome entity.Outcome `json:"outcome"`
}

type bestMoveResponse struct {
	Cell int `json:"cell"`
}

type cacheResponse struct {
	Entries int `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHandlers(logger *slog.Logger, engine engine) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		engine: engine,
	}
}

func (that *handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBoardRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if !req.Board.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: tictactoe.ErrInvalidBoard.Error()})
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{Outcome: tictactoe.Evaluate(*req.Board)})
}

func (that *handlers) BestMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "BestMove")

	req, err := decodeBoardRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cell, err := that.engine.BestMove(*req.Board, req.Mark)
	switch {
	case errors.Is(err, tictactoe.ErrInvalidMark),
		errors.Is(err, tictactoe.ErrInvalidBoard),
		errors.Is(err, tictactoe.ErrBoardTerminal):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		log.Error("failed to find best move", "board", req.Board.String(), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	log.Debug("best move found", "board", req.Board.String(), "mark", req.Mark.String(), "cell", cell)

	writeJSON(w, http.StatusOK, bestMoveResponse{Cell: cell})
}

func (that *handlers) CacheStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, cacheResponse{Entries: that.engine.Cache().Len()})
}

// decodeBoardRequest - the board is required and must hold exactly nine cells.
func decodeBoardRequest(r *http.Request) (*boardRequest, error) {
	var req boardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, entity.ErrMalformedBoard) || errors.Is(err, entity.ErrUnknownMark) {
			return nil, err
		}
		return nil, errInvalidPayload
	}

	if req.Board == nil {
		return nil, fmt.Errorf("%w: board is required", entity.ErrMalformedBoard)
	}

	return &req, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(payload)
}
