package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errPayloadRequired = errors.New("required payload field is missing")

func (that *Server) handleNewGame(ctx context.Context, msg *Message, client *client) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	if payloadReq.Mode == "" {
		payloadReq.Mode = entity.BotMode
	}

	game, err := that.gameManager.CreateGame(ctx, payloadReq.Mode)
	if err != nil {
		log.Error("failed to create game", "mode", payloadReq.Mode, "error", err)
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	client.mu.Lock()
	client.games[game.ID] = struct{}{}
	client.mu.Unlock()

	that.gameManager.Subscribe(game.ID, func(game *entity.Game) {
		if err := that.sendMessage(client, actionGameUpdate, Payload{Game: game}); err != nil {
			log.Debug("failed to push game update", "gameID", game.ID, "error", err)
		}
	})

	log.Info("new game", "gameID", game.ID, "mode", game.Mode)

	return that.sendMessage(client, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, client *client) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" || payloadReq.Cell == nil {
		return that.sendErrorResponse(client, msg.Action, fmt.Sprintf("%v: game_id and cell", errPayloadRequired))
	}

	if !client.owns(payloadReq.GameID) {
		return that.sendErrorResponse(client, msg.Action, apperror.ErrGameNotFound.Error())
	}

	game, err := that.gameManager.MakeTurn(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil {
		if !isGameError(err) {
			log.Error("failed to make turn", "gameID", payloadReq.GameID, "error", err)
		}
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	return that.sendMessage(client, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameReset(ctx context.Context, msg *Message, client *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	if !client.owns(payloadReq.GameID) {
		return that.sendErrorResponse(client, msg.Action, apperror.ErrGameNotFound.Error())
	}

	game, err := that.gameManager.Reset(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	return that.sendMessage(client, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameMode(ctx context.Context, msg *Message, client *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	if !client.owns(payloadReq.GameID) {
		return that.sendErrorResponse(client, msg.Action, apperror.ErrGameNotFound.Error())
	}

	game, err := that.gameManager.SetMode(ctx, payloadReq.GameID, payloadReq.Mode)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	return that.sendMessage(client, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, client *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	if !client.owns(payloadReq.GameID) {
		return that.sendErrorResponse(client, msg.Action, apperror.ErrGameNotFound.Error())
	}

	game, err := that.gameManager.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	return that.sendMessage(client, msg.Action, Payload{Game: game})
}

// handleCellFocus - keyboard navigation over the grid.
func (that *Server) handleCellFocus(_ context.Context, msg *Message, client *client) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(client, msg.Action, fmt.Sprintf("%v: cell", errPayloadRequired))
	}

	cell, err := tictactoe.Neighbor(*payloadReq.Cell, payloadReq.Key)
	if err != nil {
		return that.sendErrorResponse(client, msg.Action, err.Error())
	}

	return that.sendMessage(client, msg.Action, Payload{Cell: &cell})
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

// isGameError - rule violations the player caused, not worth an error log.
func isGameError(err error) bool {
	return errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrGameNotFound)
}
