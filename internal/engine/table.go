package engine

import (
	"math/rand"
	"sort"
	"time"
)

type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionRaise ActionKind = "raise"
)

type SeatStatus string

const (
	SeatIn     SeatStatus = "IN"
	SeatToCall SeatStatus = "TO_CALL"
	SeatAllIn  SeatStatus = "ALL_IN"
	SeatOut    SeatStatus = "OUT"
	SeatSkip   SeatStatus = "SKIP"
)

type Phase string

const (
	PhasePrehand Phase = "prehand"
	PhasePreflop Phase = "preflop"
	PhaseFlop    Phase = "flop"
	PhaseTurn    Phase = "turn"
	PhaseRiver   Phase = "river"
	PhaseSettle  Phase = "settle"
)

// RaiseBounds are raise-to totals for the current street, inclusive.
type RaiseBounds struct {
	Min int
	Max int
}

type Pot struct {
	Amount   int
	Eligible []int
}

type Config struct {
	Seats      int
	Buyin      int
	SmallBlind int
	BigBlind   int
	Rng        *rand.Rand
}

type seat struct {
	chips    int
	hole     []Card
	status   SeatStatus
	roundBet int
	contrib  int
	acted    bool
}

// Table is an N-seat no-limit hold'em table. It trusts its caller to
// validate actions first: ApplyAction returns ErrIllegalAction for
// anything outside the reported legal set or raise bounds.
type Table struct {
	cfg    Config
	rng    *rand.Rand
	seats  []seat
	button int

	deck        *Deck
	board       []Card
	phase       Phase
	handRunning bool
	currentBet  int
	minRaise    int
	actor       int
}

func New(cfg Config) *Table {
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	seats := make([]seat, cfg.Seats)
	for i := range seats {
		seats[i] = seat{chips: cfg.Buyin, status: SeatOut}
	}
	return &Table{
		cfg:    cfg,
		rng:    rng,
		seats:  seats,
		button: cfg.Seats - 1, // first StartHand rotates to seat 0
		phase:  PhasePrehand,
	}
}

func (t *Table) Seats() int  { return len(t.seats) }
func (t *Table) Button() int { return t.button }

func (t *Table) IsHandRunning() bool { return t.handRunning }

func (t *Table) IsGameRunning() bool {
	if t.handRunning {
		return true
	}
	funded := 0
	for i := range t.seats {
		if t.seats[i].chips > 0 {
			funded++
		}
	}
	return funded >= 2
}

func (t *Table) HandPhase() Phase { return t.phase }

func (t *Table) Board() []Card {
	return append([]Card{}, t.board...)
}

func (t *Table) SeatState(i int) (SeatStatus, error) {
	if i < 0 || i >= len(t.seats) {
		return "", ErrBadSeat
	}
	return t.seats[i].status, nil
}

func (t *Table) SeatChips(i int) (int, error) {
	if i < 0 || i >= len(t.seats) {
		return 0, ErrBadSeat
	}
	return t.seats[i].chips, nil
}

func (t *Table) HoleCards(i int) ([]Card, error) {
	if i < 0 || i >= len(t.seats) {
		return nil, ErrBadSeat
	}
	return append([]Card{}, t.seats[i].hole...), nil
}

func (t *Table) ChipsToCall(i int) (int, error) {
	if i < 0 || i >= len(t.seats) {
		return 0, ErrBadSeat
	}
	owed := t.currentBet - t.seats[i].roundBet
	if owed < 0 {
		owed = 0
	}
	return owed, nil
}

func (t *Table) CurrentSeat() (int, error) {
	if !t.handRunning {
		return 0, ErrNoHand
	}
	return t.actor, nil
}

// StartHand rotates the button, deals hole cards and posts blinds.
// Short stacks post all-in; seats with no chips sit the hand out.
func (t *Table) StartHand() error {
	if t.handRunning {
		return ErrHandRunning
	}
	funded := 0
	for i := range t.seats {
		if t.seats[i].chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return ErrNotEnoughPlayers
	}

	t.board = nil
	t.deck = NewDeck()
	t.deck.Shuffle(t.rng)
	for i := range t.seats {
		s := &t.seats[i]
		s.roundBet = 0
		s.contrib = 0
		s.acted = false
		s.hole = nil
		if s.chips > 0 {
			s.status = SeatIn
		} else {
			s.status = SeatSkip
		}
	}
	t.button = t.nextFunded(t.button)
	for i := range t.seats {
		if t.seats[i].status != SeatSkip {
			t.seats[i].hole = []Card{t.deck.Deal(), t.deck.Deal()}
		}
	}

	// Heads-up: the button is the small blind and acts first preflop.
	sbSeat := t.nextFunded(t.button)
	if funded == 2 {
		sbSeat = t.button
	}
	bbSeat := t.nextFunded(sbSeat)
	t.post(sbSeat, t.cfg.SmallBlind)
	t.post(bbSeat, t.cfg.BigBlind)
	t.currentBet = t.cfg.BigBlind
	t.minRaise = t.cfg.BigBlind
	t.refreshOwed()

	t.phase = PhasePreflop
	t.handRunning = true
	next := t.nextActor(bbSeat)
	if next < 0 {
		// Blinds put everyone all-in already.
		t.runOut()
		t.settle()
		return nil
	}
	t.actor = next
	return nil
}

func (t *Table) post(i, amount int) {
	s := &t.seats[i]
	pay := amount
	if pay > s.chips {
		pay = s.chips
	}
	s.chips -= pay
	s.roundBet += pay
	s.contrib += pay
	if s.chips == 0 {
		s.status = SeatAllIn
	}
}

func (t *Table) nextFunded(from int) int {
	for off := 1; off <= len(t.seats); off++ {
		i := (from + off) % len(t.seats)
		if t.seats[i].chips > 0 || (t.handRunning && t.seats[i].status == SeatAllIn) {
			return i
		}
	}
	return from
}

// canAct reports whether a seat still owes a decision this street.
func (t *Table) canAct(i int) bool {
	s := &t.seats[i]
	switch s.status {
	case SeatToCall:
		return true
	case SeatIn:
		return !s.acted
	default:
		return false
	}
}

func (t *Table) nextActor(from int) int {
	for off := 1; off <= len(t.seats); off++ {
		i := (from + off) % len(t.seats)
		if t.canAct(i) {
			return i
		}
	}
	return -1
}

func (t *Table) refreshOwed() {
	for i := range t.seats {
		s := &t.seats[i]
		if s.status != SeatIn && s.status != SeatToCall {
			continue
		}
		if s.roundBet < t.currentBet {
			s.status = SeatToCall
		} else {
			s.status = SeatIn
		}
	}
}

func (t *Table) LegalActionKinds() []ActionKind {
	if !t.handRunning {
		return nil
	}
	s := &t.seats[t.actor]
	owed := t.currentBet - s.roundBet
	kinds := []ActionKind{ActionFold}
	if owed <= 0 {
		kinds = append(kinds, ActionCheck)
	} else {
		kinds = append(kinds, ActionCall)
	}
	if _, ok := t.LegalRaiseBounds(); ok {
		kinds = append(kinds, ActionRaise)
	}
	return kinds
}

func (t *Table) LegalRaiseBounds() (RaiseBounds, bool) {
	if !t.handRunning {
		return RaiseBounds{}, false
	}
	s := &t.seats[t.actor]
	owed := t.currentBet - s.roundBet
	if owed < 0 {
		owed = 0
	}
	if s.chips <= owed {
		return RaiseBounds{}, false
	}
	max := s.roundBet + s.chips
	if max <= t.currentBet {
		return RaiseBounds{}, false
	}
	min := t.currentBet + t.minRaise
	if min > max {
		min = max
	}
	return RaiseBounds{Min: min, Max: max}, true
}

// ApplyAction applies the current actor's action. The amount is the
// raise-to total and must be nil for every other kind.
func (t *Table) ApplyAction(kind ActionKind, amount *int) error {
	if !t.handRunning {
		return ErrNoHand
	}
	legal := false
	for _, k := range t.LegalActionKinds() {
		if k == kind {
			legal = true
			break
		}
	}
	if !legal {
		return ErrIllegalAction
	}
	if kind != ActionRaise && amount != nil {
		return ErrIllegalAction
	}

	s := &t.seats[t.actor]
	switch kind {
	case ActionFold:
		s.status = SeatOut
	case ActionCheck:
		s.acted = true
	case ActionCall:
		owed := t.currentBet - s.roundBet
		pay := owed
		if pay > s.chips {
			pay = s.chips
		}
		s.chips -= pay
		s.roundBet += pay
		s.contrib += pay
		s.acted = true
		if s.chips == 0 {
			s.status = SeatAllIn
		}
	case ActionRaise:
		if amount == nil {
			return ErrIllegalAction
		}
		bounds, ok := t.LegalRaiseBounds()
		if !ok || *amount < bounds.Min || *amount > bounds.Max {
			return ErrIllegalAction
		}
		prevBet := t.currentBet
		need := *amount - s.roundBet
		s.chips -= need
		s.roundBet = *amount
		s.contrib += need
		s.acted = true
		if s.chips == 0 {
			s.status = SeatAllIn
		}
		t.currentBet = *amount
		if inc := *amount - prevBet; inc > t.minRaise {
			t.minRaise = inc
		}
		// Everyone else gets to respond to the raise.
		for i := range t.seats {
			if i == t.actor {
				continue
			}
			if t.seats[i].status == SeatIn || t.seats[i].status == SeatToCall {
				t.seats[i].acted = false
			}
		}
	}
	t.refreshOwed()
	t.progress()
	return nil
}

func (t *Table) progress() {
	if t.countUnfolded() == 1 {
		t.settle()
		return
	}
	if next := t.nextActor(t.actor); next >= 0 {
		t.actor = next
		return
	}
	// Street closed.
	if t.phase == PhaseRiver {
		t.settle()
		return
	}
	if t.countCanBet() <= 1 {
		t.runOut()
		t.settle()
		return
	}
	t.nextStreet()
}

func (t *Table) countUnfolded() int {
	n := 0
	for i := range t.seats {
		switch t.seats[i].status {
		case SeatOut, SeatSkip:
		default:
			n++
		}
	}
	return n
}

func (t *Table) countCanBet() int {
	n := 0
	for i := range t.seats {
		switch t.seats[i].status {
		case SeatIn, SeatToCall:
			n++
		}
	}
	return n
}

func (t *Table) nextStreet() {
	for i := range t.seats {
		s := &t.seats[i]
		s.roundBet = 0
		s.acted = false
	}
	t.currentBet = 0
	t.minRaise = t.cfg.BigBlind
	t.dealStreet()
	next := t.nextActor(t.button)
	if next < 0 {
		t.runOut()
		t.settle()
		return
	}
	t.actor = next
}

func (t *Table) dealStreet() {
	switch t.phase {
	case PhasePreflop:
		t.board = append(t.board, t.deck.Deal(), t.deck.Deal(), t.deck.Deal())
		t.phase = PhaseFlop
	case PhaseFlop:
		t.board = append(t.board, t.deck.Deal())
		t.phase = PhaseTurn
	case PhaseTurn:
		t.board = append(t.board, t.deck.Deal())
		t.phase = PhaseRiver
	}
}

func (t *Table) runOut() {
	for t.phase != PhaseRiver {
		t.dealStreet()
	}
}

// Pots layers total contributions into a main pot and side pots.
// Folded seats leave their chips in but drop out of eligibility; an
// uncalled top layer forms a pot whose sole eligible seat gets it back.
func (t *Table) Pots() []Pot {
	levels := make([]int, 0, len(t.seats))
	for i := range t.seats {
		if c := t.seats[i].contrib; c > 0 {
			levels = append(levels, c)
		}
	}
	if len(levels) == 0 {
		return nil
	}
	sort.Ints(levels)
	uniq := levels[:1]
	for _, l := range levels[1:] {
		if l != uniq[len(uniq)-1] {
			uniq = append(uniq, l)
		}
	}

	pots := []Pot{}
	prev := 0
	for _, level := range uniq {
		amount := 0
		for i := range t.seats {
			c := t.seats[i].contrib
			if c > prev {
				slice := c
				if slice > level {
					slice = level
				}
				amount += slice - prev
			}
		}
		eligible := []int{}
		for i := range t.seats {
			s := &t.seats[i]
			if s.contrib >= level && s.status != SeatOut && s.status != SeatSkip {
				eligible = append(eligible, i)
			}
		}
		if amount == 0 {
			prev = level
			continue
		}
		if n := len(pots); n > 0 && equalSeats(pots[n-1].Eligible, eligible) {
			pots[n-1].Amount += amount
		} else {
			pots = append(pots, Pot{Amount: amount, Eligible: eligible})
		}
		prev = level
	}
	return pots
}

func equalSeats(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (t *Table) settle() {
	pots := t.Pots()
	for _, pot := range pots {
		winners := t.potWinners(pot)
		if len(winners) == 0 {
			continue
		}
		share := pot.Amount / len(winners)
		rem := pot.Amount % len(winners)
		// Odd chips go to the earliest winners after the button.
		ordered := t.orderFromButton(winners)
		for n, i := range ordered {
			t.seats[i].chips += share
			if n < rem {
				t.seats[i].chips++
			}
		}
	}
	for i := range t.seats {
		t.seats[i].contrib = 0
		t.seats[i].roundBet = 0
	}
	t.phase = PhaseSettle
	t.handRunning = false
}

func (t *Table) potWinners(pot Pot) []int {
	if len(pot.Eligible) == 1 {
		return pot.Eligible
	}
	var winners []int
	var best HandScore
	for _, i := range pot.Eligible {
		score := Evaluate(append(append([]Card{}, t.seats[i].hole...), t.board...))
		switch {
		case len(winners) == 0 || score.BetterThan(best):
			winners = []int{i}
			best = score
		case score == best:
			winners = append(winners, i)
		}
	}
	return winners
}

func (t *Table) orderFromButton(seats []int) []int {
	out := make([]int, 0, len(seats))
	for off := 1; off <= len(t.seats); off++ {
		i := (t.button + off) % len(t.seats)
		for _, s := range seats {
			if s == i {
				out = append(out, i)
			}
		}
	}
	return out
}

// ClearResidualPot zeroes any contribution chips left after settlement
// and returns how many there were. Settlement is expected to leave
// zero; the scheduler checks this as a post-condition after each hand.
func (t *Table) ClearResidualPot() int {
	if t.handRunning {
		return 0
	}
	residual := 0
	for i := range t.seats {
		residual += t.seats[i].contrib
		t.seats[i].contrib = 0
		t.seats[i].roundBet = 0
	}
	return residual
}

// TotalChips is a test and diagnostics helper: chips behind plus chips
// committed to the current hand.
func (t *Table) TotalChips() int {
	total := 0
	for i := range t.seats {
		total += t.seats[i].chips + t.seats[i].contrib
	}
	return total
}

// HandStrength scores the seat's current holding with the shared
// estimator, using the table's own random source.
func (t *Table) HandStrength(i int) (float64, error) {
	if i < 0 || i >= len(t.seats) {
		return 0, ErrBadSeat
	}
	if len(t.seats[i].hole) != 2 {
		return 0, ErrNoHand
	}
	return Strength(t.rng, t.seats[i].hole, t.board), nil
}
