package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

type OutcomeKind uint8

const (
	InProgress OutcomeKind = iota
	Win
	Draw
)

const (
	resultInProgress = "in_progress"
	resultWin        = "win"
	resultDraw       = "draw"
)

var ErrUnknownOutcome = errors.New("unknown outcome")

// Outcome is the evaluator verdict. Winner is set only for Win.
type Outcome struct {
	Kind   OutcomeKind
	Winner Mark
}

func WinFor(mark Mark) Outcome {
	return Outcome{Kind: Win, Winner: mark}
}

func DrawOutcome() Outcome {
	return Outcome{Kind: Draw}
}

func InProgressOutcome() Outcome {
	return Outcome{Kind: InProgress}
}

func (that Outcome) IsTerminal() bool {
	return that.Kind != InProgress
}

func (that Outcome) String() string {
	switch that.Kind {
	case Win:
		return that.Winner.String() + " wins"
	case Draw:
		return resultDraw
	default:
		return resultInProgress
	}
}

type outcomeJSON struct {
	Result string `json:"result"`
	Winner Mark   `json:"winner,omitempty"`
}

func (that Outcome) MarshalJSON() ([]byte, error) {
	out := outcomeJSON{Winner: that.Winner}

	switch that.Kind {
	case Win:
		out.Result = resultWin
	case Draw:
		out.Result = resultDraw
	default:
		out.Result = resultInProgress
	}

	return json.Marshal(out)
}

func (that *Outcome) UnmarshalJSON(data []byte) error {
	var in outcomeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to unmarshal outcome: %w", err)
	}

	switch in.Result {
	case resultWin:
		*that = WinFor(in.Winner)
	case resultDraw:
		*that = DrawOutcome()
	case resultInProgress, "":
		*that = InProgressOutcome()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutcome, in.Result)
	}

	return nil
}
