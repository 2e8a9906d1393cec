package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestTable(t *testing.T, seats int, seed int64) *Table {
	t.Helper()
	return New(Config{
		Seats:      seats,
		Buyin:      1000,
		SmallBlind: 10,
		BigBlind:   20,
		Rng:        rand.New(rand.NewSource(seed)),
	})
}

func TestStartHandBlindsHeadsUp(t *testing.T) {
	tbl := newTestTable(t, 2, 1)
	if err := tbl.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	if tbl.Button() != 0 {
		t.Fatalf("button = %d, want 0", tbl.Button())
	}
	// Heads-up the button posts the small blind and acts first.
	actor, err := tbl.CurrentSeat()
	if err != nil || actor != 0 {
		t.Fatalf("CurrentSeat = %d, %v; want 0", actor, err)
	}
	owed, _ := tbl.ChipsToCall(0)
	if owed != 10 {
		t.Fatalf("ChipsToCall(0) = %d, want 10", owed)
	}
	c0, _ := tbl.SeatChips(0)
	c1, _ := tbl.SeatChips(1)
	if c0 != 990 || c1 != 980 {
		t.Fatalf("chips = %d, %d; want 990, 980", c0, c1)
	}
}

func TestFoldEndsHand(t *testing.T) {
	tbl := newTestTable(t, 2, 2)
	if err := tbl.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	if err := tbl.ApplyAction(ActionFold, nil); err != nil {
		t.Fatalf("fold: %v", err)
	}
	if tbl.IsHandRunning() {
		t.Fatal("hand still running after fold")
	}
	// Big blind collects both blinds uncontested.
	c1, _ := tbl.SeatChips(1)
	if c1 != 1010 {
		t.Fatalf("winner chips = %d, want 1010", c1)
	}
	if res := tbl.ClearResidualPot(); res != 0 {
		t.Fatalf("residual pot = %d after settle, want 0", res)
	}
}

func TestIllegalActions(t *testing.T) {
	tbl := newTestTable(t, 2, 3)
	if err := tbl.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	// Facing the big blind, check is not available.
	if err := tbl.ApplyAction(ActionCheck, nil); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("check facing bet: err = %v, want ErrIllegalAction", err)
	}
	// Raise below the minimum.
	low := 25
	if err := tbl.ApplyAction(ActionRaise, &low); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("undersized raise: err = %v, want ErrIllegalAction", err)
	}
	// Raise above the stack.
	high := 5000
	if err := tbl.ApplyAction(ActionRaise, &high); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("oversized raise: err = %v, want ErrIllegalAction", err)
	}
	// Amount on a non-raise.
	amt := 20
	if err := tbl.ApplyAction(ActionCall, &amt); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("call with amount: err = %v, want ErrIllegalAction", err)
	}
}

func TestRaiseBounds(t *testing.T) {
	tbl := newTestTable(t, 2, 4)
	if err := tbl.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	bounds, ok := tbl.LegalRaiseBounds()
	if !ok {
		t.Fatal("no raise bounds preflop")
	}
	// Min raise-to is big blind plus one increment; max is all-in total.
	if bounds.Min != 40 {
		t.Fatalf("bounds.Min = %d, want 40", bounds.Min)
	}
	if bounds.Max != 1000 {
		t.Fatalf("bounds.Max = %d, want 1000", bounds.Max)
	}
	to := 60
	if err := tbl.ApplyAction(ActionRaise, &to); err != nil {
		t.Fatalf("raise to 60: %v", err)
	}
	// The re-raise minimum tracks the last increment (40 on top of 60).
	bounds, ok = tbl.LegalRaiseBounds()
	if !ok {
		t.Fatal("no re-raise bounds")
	}
	if bounds.Min != 100 {
		t.Fatalf("re-raise bounds.Min = %d, want 100", bounds.Min)
	}
}

func TestCheckdownReachesSettle(t *testing.T) {
	tbl := newTestTable(t, 2, 5)
	if err := tbl.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	steps := 0
	for tbl.IsHandRunning() {
		steps++
		if steps > 50 {
			t.Fatal("hand did not terminate")
		}
		kinds := tbl.LegalActionKinds()
		var did bool
		for _, k := range kinds {
			if k == ActionCheck {
				if err := tbl.ApplyAction(ActionCheck, nil); err != nil {
					t.Fatalf("check: %v", err)
				}
				did = true
				break
			}
		}
		if !did {
			if err := tbl.ApplyAction(ActionCall, nil); err != nil {
				t.Fatalf("call: %v", err)
			}
		}
	}
	if tbl.HandPhase() != PhaseSettle {
		t.Fatalf("phase = %s, want settle", tbl.HandPhase())
	}
	if got := len(tbl.Board()); got != 5 {
		t.Fatalf("board has %d cards, want 5", got)
	}
	if total := tbl.TotalChips(); total != 2000 {
		t.Fatalf("total chips = %d, want 2000", total)
	}
}

func TestChipConservationRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tbl := New(Config{Seats: 4, Buyin: 500, SmallBlind: 10, BigBlind: 20, Rng: rng})
	want := 4 * 500

	for hand := 0; hand < 30 && tbl.IsGameRunning(); hand++ {
		if err := tbl.StartHand(); err != nil {
			t.Fatalf("hand %d: StartHand: %v", hand, err)
		}
		for steps := 0; tbl.IsHandRunning(); steps++ {
			if steps > 200 {
				t.Fatalf("hand %d did not terminate", hand)
			}
			kinds := tbl.LegalActionKinds()
			kind := kinds[rng.Intn(len(kinds))]
			if kind == ActionRaise {
				bounds, ok := tbl.LegalRaiseBounds()
				if !ok {
					t.Fatalf("hand %d: raise legal but no bounds", hand)
				}
				to := bounds.Min + rng.Intn(bounds.Max-bounds.Min+1)
				if err := tbl.ApplyAction(kind, &to); err != nil {
					t.Fatalf("hand %d: raise to %d: %v", hand, to, err)
				}
			} else if err := tbl.ApplyAction(kind, nil); err != nil {
				t.Fatalf("hand %d: %s: %v", hand, kind, err)
			}
		}
		if res := tbl.ClearResidualPot(); res != 0 {
			t.Fatalf("hand %d: residual pot = %d", hand, res)
		}
		if total := tbl.TotalChips(); total != want {
			t.Fatalf("hand %d: total chips = %d, want %d", hand, total, want)
		}
	}
}

func TestSidePotLayering(t *testing.T) {
	tbl := newTestTable(t, 3, 6)
	// Short stack all-in for 100, two bigger stacks for 300 each, one
	// of them folded. Main pot: 3x100 with two eligible; side pot:
	// 2x200 with one eligible (the fold keeps its chips in).
	tbl.seats[0] = seat{chips: 0, contrib: 100, status: SeatAllIn, hole: []Card{{Ace, Spades}, {Ace, Hearts}}}
	tbl.seats[1] = seat{chips: 700, contrib: 300, status: SeatIn, hole: []Card{{King, Spades}, {King, Hearts}}}
	tbl.seats[2] = seat{chips: 700, contrib: 300, status: SeatOut}

	pots := tbl.Pots()
	if len(pots) != 2 {
		t.Fatalf("got %d pots, want 2: %+v", len(pots), pots)
	}
	if pots[0].Amount != 300 || len(pots[0].Eligible) != 2 {
		t.Fatalf("main pot = %+v, want 300 with 2 eligible", pots[0])
	}
	if pots[1].Amount != 400 || len(pots[1].Eligible) != 1 || pots[1].Eligible[0] != 1 {
		t.Fatalf("side pot = %+v, want 400 for seat 1", pots[1])
	}
}

func TestZeroChipSeatSkipsHand(t *testing.T) {
	tbl := newTestTable(t, 3, 7)
	tbl.seats[1].chips = 0
	if err := tbl.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	st, _ := tbl.SeatState(1)
	if st != SeatSkip {
		t.Fatalf("seat 1 state = %s, want SKIP", st)
	}
	hole, _ := tbl.HoleCards(1)
	if len(hole) != 0 {
		t.Fatalf("skipped seat dealt %d cards", len(hole))
	}
}

func TestStartHandErrors(t *testing.T) {
	tbl := newTestTable(t, 2, 8)
	tbl.seats[1].chips = 0
	if err := tbl.StartHand(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("err = %v, want ErrNotEnoughPlayers", err)
	}
	tbl.seats[1].chips = 1000
	if err := tbl.StartHand(); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	if err := tbl.StartHand(); !errors.Is(err, ErrHandRunning) {
		t.Fatalf("err = %v, want ErrHandRunning", err)
	}
}

func TestStrengthBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	aces := []Card{{Ace, Spades}, {Ace, Hearts}}
	deuces := []Card{{Two, Clubs}, {Seven, Diamonds}}
	sa := Strength(rng, aces, nil)
	sb := Strength(rng, deuces, nil)
	if sa <= sb {
		t.Fatalf("aces strength %.3f not above 72o %.3f", sa, sb)
	}
	if sa < 0 || sa > 1 || sb < 0 || sb > 1 {
		t.Fatalf("strengths out of [0,1]: %.3f, %.3f", sa, sb)
	}
	// River estimates are exact and deterministic.
	board := []Card{{Ace, Diamonds}, {King, Clubs}, {Queen, Hearts}, {Jack, Clubs}, {Three, Spades}}
	r1 := Strength(rng, aces, board)
	r2 := Strength(rng, aces, board)
	if r1 != r2 {
		t.Fatalf("river strength not deterministic: %.5f vs %.5f", r1, r2)
	}
}
