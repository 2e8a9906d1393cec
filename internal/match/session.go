// Package match runs poker sessions: it owns the turn scheduler that
// pulls decisions out of seat strategies, the session status machine
// and the observer broadcast. One mutex per session serializes every
// entry point, so strategies and the engine never see concurrent calls.
package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"holdem-arena/internal/engine"
	"holdem-arena/internal/strategy"
)

type Status string

const (
	StatusWaiting   Status = "WAITING"
	StatusRunning   Status = "RUNNING"
	StatusPaused    Status = "PAUSED"
	StatusCompleted Status = "COMPLETED"
	StatusError     Status = "ERROR"
)

// Engine is the table contract the scheduler drives. engine.Table is
// the real implementation; tests substitute stubs.
type Engine interface {
	StartHand() error
	IsHandRunning() bool
	IsGameRunning() bool
	CurrentSeat() (int, error)
	LegalActionKinds() []engine.ActionKind
	LegalRaiseBounds() (engine.RaiseBounds, bool)
	ApplyAction(kind engine.ActionKind, amount *int) error
	HandPhase() engine.Phase
	Board() []engine.Card
	SeatState(int) (engine.SeatStatus, error)
	SeatChips(int) (int, error)
	ChipsToCall(int) (int, error)
	HoleCards(int) ([]engine.Card, error)
	Pots() []engine.Pot
	Button() int
	Seats() int
	ClearResidualPot() int
	HandStrength(int) (float64, error)
}

// SeatSpec binds a display name to a strategy name for one seat.
type SeatSpec struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

type SessionConfig struct {
	Seats      []SeatSpec
	Buyin      int
	SmallBlind int
	BigBlind   int
	MaxHands   int
	// MaxActionsPerHand is the scheduler's per-hand iteration ceiling.
	// Exceeding it marks the session ERROR instead of spinning.
	MaxActionsPerHand int
	// Seed fixes the session's random source; zero picks one.
	Seed int64
}

type Session struct {
	ID string

	mu         sync.Mutex
	cfg        SessionConfig
	status     Status
	handNumber int
	actions    int // applied this hand
	eng        Engine
	strategies []strategy.NamedStrategy
	bc         *Broadcaster
	logEntries []ActionEntry
	lastAction *ActionEntry
	failure    error
}

// NewSession builds a session on a real table. The registry's random
// strategies and the deck share one seeded source, so a fixed Seed
// replays the whole match.
func NewSession(id string, cfg SessionConfig, reg *strategy.Registry, eng Engine) *Session {
	s := &Session{
		ID:     id,
		cfg:    cfg,
		status: StatusWaiting,
		eng:    eng,
		bc:     NewBroadcaster(),
	}
	s.strategies = make([]strategy.NamedStrategy, len(cfg.Seats))
	for i, spec := range cfg.Seats {
		s.strategies[i] = reg.Resolve(spec.Strategy)
	}
	return s
}

func SessionRng(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Broadcaster() *Broadcaster { return s.bc }

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ActionLog copies the applied-action log.
func (s *Session) ActionLog() []ActionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ActionEntry{}, s.logEntries...)
}

// Advance runs the turn loop until the session completes, pauses for a
// human seat, or fails. Autonomous decisions are clamped before they
// reach the table, so a misbehaving strategy degrades instead of
// crashing the match.
func (s *Session) Advance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(ctx)
}

func (s *Session) advanceLocked(ctx context.Context) error {
	switch s.status {
	case StatusCompleted:
		return ErrSessionFinished
	case StatusError:
		return s.failure
	case StatusPaused:
		// Still waiting on the human seat. Re-running the loop would
		// only re-publish the same paused snapshot to every observer.
		return nil
	}
	s.status = StatusRunning

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.eng.IsHandRunning() {
			if done := s.maybeFinishLocked(); done {
				return nil
			}
			if err := s.startHandLocked(); err != nil {
				return s.failLocked(err)
			}
			continue
		}
		if s.actions >= s.cfg.MaxActionsPerHand {
			return s.failLocked(fmt.Errorf("%w: hand %d exceeded %d actions",
				ErrSchedulerExhausted, s.handNumber, s.cfg.MaxActionsPerHand))
		}

		seat, err := s.eng.CurrentSeat()
		if err != nil {
			return s.failLocked(err)
		}
		view := s.viewLocked(seat)
		proposal, err := s.strategies[seat].Decide(ctx, view)
		if errors.Is(err, strategy.ErrHumanInput) {
			s.status = StatusPaused
			s.bc.Publish(s.snapshotLocked())
			return nil
		}
		if err != nil {
			// Strategies are expected to absorb their own failures;
			// anything that leaks becomes the safest legal action.
			log.Warn().Err(err).Str("session", s.ID).Int("seat", seat).
				Msg("strategy error, substituting fallback")
			proposal = strategy.Proposal{Kind: engine.ActionCall, Rationale: "strategy error"}
		}
		proposal = strategy.Clamp(view, proposal)
		if err := s.applyLocked(seat, proposal, true); err != nil {
			return s.failLocked(err)
		}
	}
}

// SubmitAction is the human seat's entry point. Unlike autonomous
// proposals the submitted action is validated, not clamped: an illegal
// move is rejected so the caller can correct it. On success the
// scheduler resumes.
func (s *Session) SubmitAction(ctx context.Context, seat int, kind engine.ActionKind, amount *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPaused {
		return ErrNotPaused
	}
	current, err := s.eng.CurrentSeat()
	if err != nil {
		return err
	}
	if seat != current {
		return ErrOutOfTurn
	}
	p := strategy.Proposal{Kind: kind, Amount: amount, Rationale: "human"}
	if err := s.applyLocked(seat, p, false); err != nil {
		return err
	}
	s.status = StatusRunning
	return s.advanceLocked(ctx)
}

func (s *Session) startHandLocked() error {
	if err := s.eng.StartHand(); err != nil {
		return err
	}
	s.handNumber++
	s.actions = 0
	s.lastAction = nil
	log.Info().Str("session", s.ID).Int("hand", s.handNumber).Msg("hand started")
	s.bc.Publish(s.snapshotLocked())
	return nil
}

func (s *Session) maybeFinishLocked() bool {
	if s.handNumber >= s.cfg.MaxHands || !s.eng.IsGameRunning() {
		s.status = StatusCompleted
		log.Info().Str("session", s.ID).Int("hands", s.handNumber).Msg("session completed")
		s.bc.Publish(s.snapshotLocked())
		return true
	}
	return false
}

func (s *Session) applyLocked(seat int, p strategy.Proposal, auto bool) error {
	if err := s.eng.ApplyAction(p.Kind, p.Amount); err != nil {
		return err
	}
	s.actions++
	entry := ActionEntry{
		Hand:      s.handNumber,
		Seat:      seat,
		Kind:      p.Kind,
		Amount:    p.Amount,
		Rationale: p.Rationale,
		Auto:      auto,
		At:        time.Now().UTC(),
	}
	s.logEntries = append(s.logEntries, entry)
	s.lastAction = &entry

	if !s.eng.IsHandRunning() {
		if residual := s.eng.ClearResidualPot(); residual != 0 {
			log.Error().Str("session", s.ID).Int("hand", s.handNumber).
				Int("residual", residual).Msg("settlement left chips in the pot")
		}
	}
	s.bc.Publish(s.snapshotLocked())
	return nil
}

func (s *Session) failLocked(err error) error {
	s.status = StatusError
	s.failure = err
	log.Error().Err(err).Str("session", s.ID).Msg("session failed")
	s.bc.Publish(s.snapshotLocked())
	return err
}

func (s *Session) viewLocked(seat int) strategy.View {
	hole, _ := s.eng.HoleCards(seat)
	chips, _ := s.eng.SeatChips(seat)
	toCall, _ := s.eng.ChipsToCall(seat)
	strength, _ := s.eng.HandStrength(seat)
	bounds, canRaise := s.eng.LegalRaiseBounds()

	pot := 0
	for _, p := range s.eng.Pots() {
		pot += p.Amount
	}
	n := s.eng.Seats()
	return strategy.View{
		Seat:           seat,
		SeatCount:      n,
		HandNumber:     s.handNumber,
		Phase:          s.eng.HandPhase(),
		Hole:           hole,
		Board:          s.eng.Board(),
		Chips:          chips,
		ToCall:         toCall,
		PotSize:        pot,
		Legal:          s.eng.LegalActionKinds(),
		Raise:          bounds,
		CanRaise:       canRaise,
		Strength:       strength,
		ButtonDistance: (s.eng.Button() - seat + n) % n,
	}
}

func (s *Session) snapshotLocked() Snapshot {
	board := s.eng.Board()
	boardStrs := make([]string, len(board))
	for i, c := range board {
		boardStrs[i] = c.String()
	}

	seats := make([]SeatSnapshot, len(s.cfg.Seats))
	for i, spec := range s.cfg.Seats {
		chips, _ := s.eng.SeatChips(i)
		state, _ := s.eng.SeatState(i)
		toCall, _ := s.eng.ChipsToCall(i)
		seats[i] = SeatSnapshot{
			Seat:     i,
			Name:     spec.Name,
			Strategy: s.strategies[i].Name,
			Kind:     s.strategies[i].Kind,
			Chips:    chips,
			State:    state,
			ToCall:   toCall,
		}
	}

	pots := []PotSnapshot{}
	for _, p := range s.eng.Pots() {
		pots = append(pots, PotSnapshot{Amount: p.Amount, Eligible: p.Eligible})
	}

	snap := Snapshot{
		SessionID:  s.ID,
		Status:     s.status,
		HandNumber: s.handNumber,
		Phase:      s.eng.HandPhase(),
		Board:      boardStrs,
		Seats:      seats,
		Pots:       pots,
		Button:     s.eng.Button(),
		LastAction: s.lastAction,
	}
	if s.eng.IsHandRunning() {
		if seat, err := s.eng.CurrentSeat(); err == nil {
			toAct := seat
			snap.ToAct = &toAct
			snap.Legal = s.eng.LegalActionKinds()
			if bounds, ok := s.eng.LegalRaiseBounds(); ok {
				b := bounds
				snap.Raise = &b
			}
		}
	}
	return snap
}
