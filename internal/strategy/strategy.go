// Package strategy turns game state into seat decisions. A Strategy
// proposes a move from its View of the table; the scheduler clamps the
// proposal to legality before applying it, so strategies are free to
// be sloppy and never have to be trusted.
package strategy

import (
	"context"
	"errors"

	"holdem-arena/internal/engine"
)

// Proposal is a strategy's desired move. Amount is the raise-to total
// and is only meaningful for raises.
type Proposal struct {
	Kind       engine.ActionKind
	Amount     *int
	Rationale  string
	Confidence float64
}

// View is everything a strategy may see for one decision. Opponents'
// hole cards are deliberately absent.
type View struct {
	Seat      int
	SeatCount int
	// HandNumber identifies the hand this decision belongs to, so
	// per-hand state survives turns but never crosses hands.
	HandNumber int
	Phase      engine.Phase
	Hole       []engine.Card
	Board      []engine.Card

	Chips   int
	ToCall  int
	PotSize int

	Legal    []engine.ActionKind
	Raise    engine.RaiseBounds
	CanRaise bool

	// Strength is estimated equity in [0,1].
	Strength float64
	// ButtonDistance is 0 on the button, growing counterclockwise.
	ButtonDistance int
}

// PotOdds is ToCall relative to the pot after calling. Zero when
// nothing is owed.
func (v View) PotOdds() float64 {
	if v.ToCall <= 0 {
		return 0
	}
	return float64(v.ToCall) / float64(v.PotSize+v.ToCall)
}

func (v View) allows(kind engine.ActionKind) bool {
	for _, k := range v.Legal {
		if k == kind {
			return true
		}
	}
	return false
}

type Strategy interface {
	Decide(ctx context.Context, view View) (Proposal, error)
}

// ErrHumanInput marks a seat that decides out of band. The scheduler
// suspends the turn loop when it sees this error.
var ErrHumanInput = errors.New("awaiting_human_input")
