package match

import (
	"time"

	"holdem-arena/internal/engine"
	"holdem-arena/internal/strategy"
)

// Snapshot is the public state of a session, safe to hand to any
// observer: it never includes hole cards.
type Snapshot struct {
	SessionID  string       `json:"session_id"`
	Status     Status       `json:"status"`
	HandNumber int          `json:"hand_number"`
	Phase      engine.Phase `json:"phase"`
	Board      []string     `json:"board"`

	Seats  []SeatSnapshot `json:"seats"`
	Pots   []PotSnapshot  `json:"pots"`
	Button int            `json:"button"`

	// ToAct and the fields after it are nil between hands.
	ToAct      *int                `json:"to_act,omitempty"`
	Legal      []engine.ActionKind `json:"legal,omitempty"`
	Raise      *engine.RaiseBounds `json:"raise,omitempty"`
	LastAction *ActionEntry        `json:"last_action,omitempty"`
}

type SeatSnapshot struct {
	Seat     int               `json:"seat"`
	Name     string            `json:"name"`
	Strategy string            `json:"strategy"`
	Kind     strategy.Kind     `json:"kind"`
	Chips    int               `json:"chips"`
	State    engine.SeatStatus `json:"state"`
	ToCall   int               `json:"to_call"`
}

type PotSnapshot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
}

// ActionEntry is one applied action in a session's log.
type ActionEntry struct {
	Hand      int               `json:"hand"`
	Seat      int               `json:"seat"`
	Kind      engine.ActionKind `json:"kind"`
	Amount    *int              `json:"amount,omitempty"`
	Rationale string            `json:"rationale,omitempty"`
	Auto      bool              `json:"auto"`
	At        time.Time         `json:"at"`
}
