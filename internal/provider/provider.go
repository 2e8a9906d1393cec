// Package provider calls a remote chat-completions API to make poker
// decisions. It asks for a schema-constrained JSON reply first and
// falls back to a line-oriented text protocol for models that cannot
// do structured output; only when both round trips fail does the
// caller see an error.
package provider

import (
	"fmt"
)

// Decision is a parsed model reply. Amount is a raise-to total and is
// nil unless the action is a raise.
type Decision struct {
	Action     string  `json:"action"`
	Amount     *int    `json:"amount,omitempty"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// TableState is the seat's view rendered for prompting. Cards use the
// two-character form ("As", "Td").
type TableState struct {
	Phase          string
	Hole           []string
	Board          []string
	Chips          int
	ToCall         int
	Pot            int
	Strength       float64
	PotOdds        float64
	LegalActions   []string
	CanRaise       bool
	RaiseMin       int
	RaiseMax       int
	Seat           int
	SeatCount      int
	ButtonDistance int
}

// MemoryEntry is one prior decision this hand, fed back so the model
// stays consistent with its own line.
type MemoryEntry struct {
	Phase     string
	Action    string
	Amount    *int
	Reasoning string
}

// Turn bundles everything one decision request needs.
type Turn struct {
	State       TableState
	Personality string
	Memory      []MemoryEntry
}

// Error wraps a failed decision round trip, after both reply formats
// have been tried.
type Error struct {
	Model string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider: model %s: %v", e.Model, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
