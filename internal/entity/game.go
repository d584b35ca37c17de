package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	HumanMode = "human"
	BotMode   = "bot"
)

// FirstMark always opens a game.
const FirstMark = PlayerX

type Game struct {
	ID      string  `json:"id"`
	Board   Board   `json:"board"`
	Turn    Mark    `json:"player_turn"`
	Outcome Outcome `json:"outcome"`
	Status  string  `json:"status"`
	Mode    string  `json:"mode"`
	BotMark Mark    `json:"bot_mark,omitempty"`
}

func NewGame(id, mode string, botMark Mark) *Game {
	game := &Game{
		ID:     id,
		Turn:   FirstMark,
		Status: StatusOngoing,
		Mode:   mode,
	}

	if game.IsWithBot() {
		game.BotMark = botMark
	}

	return game
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWithBot() bool {
	return that.Mode == BotMode
}

// IsBotTurn - the computer is due to move.
func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsOngoing() && that.Turn == that.BotMark
}

// HumanMark - the mark a human places next. In bot mode it is always the mark opposite to the bot.
func (that *Game) HumanMark() Mark {
	if that.IsWithBot() {
		return that.BotMark.Opponent()
	}

	return that.Turn
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}

func ValidMode(mode string) bool {
	return mode == HumanMode || mode == BotMode
}
