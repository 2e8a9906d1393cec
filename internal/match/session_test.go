package match

import (
	"context"
	"errors"
	"testing"

	"holdem-arena/internal/engine"
	"holdem-arena/internal/strategy"
)

func autoConfig(strategies ...string) SessionConfig {
	seats := make([]SeatSpec, len(strategies))
	for i, name := range strategies {
		seats[i] = SeatSpec{Name: name, Strategy: name}
	}
	return SessionConfig{
		Seats:             seats,
		Buyin:             500,
		SmallBlind:        10,
		BigBlind:          20,
		MaxHands:          5,
		MaxActionsPerHand: 200,
		Seed:              77,
	}
}

func TestAutonomousSessionCompletes(t *testing.T) {
	m := NewManager(6)
	s, err := m.Create(autoConfig("tight", "loose", "bluff", "passive"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Status() != StatusWaiting {
		t.Fatalf("status = %s, want WAITING", s.Status())
	}
	if err := s.Advance(context.Background()); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if s.Status() != StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", s.Status())
	}

	snap := s.Snapshot()
	total := 0
	for _, seat := range snap.Seats {
		total += seat.Chips
	}
	if total != 4*500 {
		t.Fatalf("chips after session = %d, want 2000", total)
	}
	if snap.HandNumber == 0 {
		t.Fatal("no hands were played")
	}
	if len(s.ActionLog()) == 0 {
		t.Fatal("action log empty")
	}
	// Advancing a finished session is rejected.
	if err := s.Advance(context.Background()); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("re-advance err = %v, want ErrSessionFinished", err)
	}
}

func TestSessionDeterministicWithSeed(t *testing.T) {
	run := func() []ActionEntry {
		m := NewManager(6)
		s, err := m.Create(autoConfig("tight", "aggressive"), nil)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := s.Advance(context.Background()); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		return s.ActionLog()
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Seat != b[i].Seat {
			t.Fatalf("runs diverge at action %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestHumanPauseAndResume(t *testing.T) {
	m := NewManager(6)
	cfg := autoConfig("human", "call")
	cfg.MaxHands = 1
	s, err := m.Create(cfg, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ctx := context.Background()

	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if s.Status() != StatusPaused {
		t.Fatalf("status = %s, want PAUSED", s.Status())
	}
	snap := s.Snapshot()
	if snap.ToAct == nil || *snap.ToAct != 0 {
		t.Fatalf("ToAct = %v, want seat 0", snap.ToAct)
	}
	if snap.Seats[0].Kind != strategy.KindHuman || snap.Seats[1].Kind != strategy.KindHeuristic {
		t.Fatalf("seat kinds = %s/%s, want human/heuristic", snap.Seats[0].Kind, snap.Seats[1].Kind)
	}

	// Advancing while paused is a no-op: no duplicate snapshot fan-out.
	obs := &recordingObserver{}
	s.Broadcaster().Attach(obs)
	if err := s.Advance(ctx); err != nil {
		t.Fatalf("Advance while paused: %v", err)
	}
	if len(obs.got) != 0 {
		t.Fatalf("paused re-advance published %d snapshots, want 0", len(obs.got))
	}
	if s.Status() != StatusPaused {
		t.Fatalf("status = %s after paused re-advance, want PAUSED", s.Status())
	}

	// Out-of-turn and illegal submissions leave the session paused.
	if err := s.SubmitAction(ctx, 1, engine.ActionFold, nil); !errors.Is(err, ErrOutOfTurn) {
		t.Fatalf("out-of-turn err = %v, want ErrOutOfTurn", err)
	}
	if err := s.SubmitAction(ctx, 0, engine.ActionCheck, nil); !errors.Is(err, engine.ErrIllegalAction) {
		t.Fatalf("illegal submit err = %v, want ErrIllegalAction", err)
	}
	if s.Status() != StatusPaused {
		t.Fatalf("status = %s after rejected submit, want PAUSED", s.Status())
	}

	// A legal fold ends the only hand and completes the session.
	if err := s.SubmitAction(ctx, 0, engine.ActionFold, nil); err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if s.Status() != StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", s.Status())
	}
}

func TestSubmitRequiresPause(t *testing.T) {
	m := NewManager(6)
	s, err := m.Create(autoConfig("call", "call"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.SubmitAction(context.Background(), 0, engine.ActionCall, nil); !errors.Is(err, ErrNotPaused) {
		t.Fatalf("err = %v, want ErrNotPaused", err)
	}
}

func TestManagerBounds(t *testing.T) {
	m := NewManager(4)
	if _, err := m.Create(autoConfig("call"), nil); !errors.Is(err, ErrBadSeatCount) {
		t.Fatalf("one seat: err = %v, want ErrBadSeatCount", err)
	}
	if _, err := m.Create(autoConfig("call", "call", "call", "call", "call"), nil); !errors.Is(err, ErrBadSeatCount) {
		t.Fatalf("five seats: err = %v, want ErrBadSeatCount", err)
	}
	s, err := m.Create(autoConfig("call", "call"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("missing session err = %v, want ErrSessionNotFound", err)
	}
	if n := len(m.List()); n != 1 {
		t.Fatalf("List has %d sessions, want 1", n)
	}
}

// stubEngine runs a hand that never ends, to exercise the iteration
// ceiling without a real table.
type stubEngine struct {
	running bool
	applied int
}

func (e *stubEngine) StartHand() error { e.running = true; return nil }
func (e *stubEngine) IsHandRunning() bool { return e.running }
func (e *stubEngine) IsGameRunning() bool { return true }
func (e *stubEngine) CurrentSeat() (int, error) { return 0, nil }
func (e *stubEngine) LegalActionKinds() []engine.ActionKind {
	return []engine.ActionKind{engine.ActionFold, engine.ActionCheck}
}
func (e *stubEngine) LegalRaiseBounds() (engine.RaiseBounds, bool) {
	return engine.RaiseBounds{}, false
}
func (e *stubEngine) ApplyAction(engine.ActionKind, *int) error { e.applied++; return nil }
func (e *stubEngine) HandPhase() engine.Phase { return engine.PhaseFlop }
func (e *stubEngine) Board() []engine.Card { return nil }
func (e *stubEngine) SeatState(int) (engine.SeatStatus, error) { return engine.SeatIn, nil }
func (e *stubEngine) SeatChips(int) (int, error) { return 1000, nil }
func (e *stubEngine) ChipsToCall(int) (int, error) { return 0, nil }
func (e *stubEngine) HoleCards(int) ([]engine.Card, error) { return nil, nil }
func (e *stubEngine) Pots() []engine.Pot { return nil }
func (e *stubEngine) Button() int { return 0 }
func (e *stubEngine) Seats() int { return 2 }
func (e *stubEngine) ClearResidualPot() int { return 0 }
func (e *stubEngine) HandStrength(int) (float64, error) { return 0.5, nil }

func TestSchedulerExhaustionMarksError(t *testing.T) {
	cfg := autoConfig("call", "call")
	cfg.MaxActionsPerHand = 10
	reg := strategy.NewRegistry(SessionRng(cfg.Seed))
	eng := &stubEngine{}
	s := NewSession("test-session", cfg, reg, eng)

	err := s.Advance(context.Background())
	if !errors.Is(err, ErrSchedulerExhausted) {
		t.Fatalf("err = %v, want ErrSchedulerExhausted", err)
	}
	if s.Status() != StatusError {
		t.Fatalf("status = %s, want ERROR", s.Status())
	}
	if eng.applied != 10 {
		t.Fatalf("applied %d actions before exhaustion, want 10", eng.applied)
	}
	// The failure is sticky.
	if err := s.Advance(context.Background()); !errors.Is(err, ErrSchedulerExhausted) {
		t.Fatalf("re-advance err = %v, want sticky ErrSchedulerExhausted", err)
	}
}

// recordingObserver fails every publish from failOn onward (1-based);
// zero never fails.
type recordingObserver struct {
	got    []Snapshot
	failOn int
	sends  int
}

func (o *recordingObserver) Send(s Snapshot) error {
	o.sends++
	if o.failOn > 0 && o.sends >= o.failOn {
		return errors.New("connection gone")
	}
	o.got = append(o.got, s)
	return nil
}

func TestBroadcasterDropsFailedObserverOnly(t *testing.T) {
	bc := NewBroadcaster()
	healthy := &recordingObserver{}
	flaky := &recordingObserver{failOn: 3}
	bc.Attach(healthy)
	bc.Attach(flaky)

	for hand := 1; hand <= 5; hand++ {
		bc.Publish(Snapshot{HandNumber: hand})
	}
	// The flaky observer survives two publishes and is dropped on the
	// third failure; nobody else is affected.
	if bc.Count() != 1 {
		t.Fatalf("observer count = %d after failure, want 1", bc.Count())
	}
	if len(flaky.got) != 2 {
		t.Fatalf("flaky observer got %d snapshots before dropping, want 2", len(flaky.got))
	}
	if len(healthy.got) != 5 {
		t.Fatalf("healthy observer got %d snapshots, want 5", len(healthy.got))
	}
	if flaky.sends != 3 {
		t.Fatalf("flaky observer was sent to %d times, want 3", flaky.sends)
	}
}

// viewRecorder folds immediately and keeps the hand number of every
// view it was shown.
type viewRecorder struct {
	hands []int
}

func (r *viewRecorder) Decide(_ context.Context, v strategy.View) (strategy.Proposal, error) {
	r.hands = append(r.hands, v.HandNumber)
	return strategy.Proposal{Kind: engine.ActionFold}, nil
}

func TestViewsCarryHandNumberAcrossPreflopFolds(t *testing.T) {
	// Every hand ends on the recorder's preflop fold, so consecutive
	// decisions land on the same phase. The hand number in the view is
	// what lets a strategy tell the hands apart.
	m := NewManager(6)
	cfg := autoConfig("recorder", "call")
	cfg.MaxHands = 3
	rec := &viewRecorder{}
	s, err := m.Create(cfg, func(reg *strategy.Registry) {
		reg.Register("recorder", strategy.KindHeuristic, func() strategy.Strategy { return rec })
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Advance(context.Background()); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if len(rec.hands) != 3 {
		t.Fatalf("recorder decided %d times, want 3", len(rec.hands))
	}
	for i, hand := range rec.hands {
		if hand != i+1 {
			t.Fatalf("decision %d saw hand %d, want %d", i, hand, i+1)
		}
	}
}

func TestHeadsUpCallMatchConservesChips(t *testing.T) {
	m := NewManager(6)
	cfg := autoConfig("call", "call")
	cfg.Buyin = 1000
	cfg.MaxHands = 1
	s, err := m.Create(cfg, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Advance(context.Background()); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	snap := s.Snapshot()
	if snap.Status != StatusCompleted || snap.HandNumber != 1 {
		t.Fatalf("snapshot = %s hand %d, want COMPLETED hand 1", snap.Status, snap.HandNumber)
	}
	total := 0
	for _, seat := range snap.Seats {
		total += seat.Chips
	}
	if total != 2000 {
		t.Fatalf("total chips = %d, want 2000", total)
	}
}

func TestObserversSeeSessionProgress(t *testing.T) {
	m := NewManager(6)
	s, err := m.Create(autoConfig("call", "call"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	obs := &recordingObserver{}
	s.Broadcaster().Attach(obs)
	if err := s.Advance(context.Background()); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if len(obs.got) == 0 {
		t.Fatal("observer saw no snapshots")
	}
	last := obs.got[len(obs.got)-1]
	if last.Status != StatusCompleted {
		t.Fatalf("final snapshot status = %s, want COMPLETED", last.Status)
	}
	for _, snap := range obs.got {
		if snap.SessionID != s.ID {
			t.Fatalf("snapshot session = %q, want %q", snap.SessionID, s.ID)
		}
	}
}
