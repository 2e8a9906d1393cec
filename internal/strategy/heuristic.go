package strategy

import (
	"context"
	"fmt"
	"math/rand"

	"holdem-arena/internal/engine"
)

// Heuristic strategies decide from hand strength, pot odds and a
// random source. They never return an error and never inspect more
// than their View. All randomness flows through the injected rng so
// seeded runs replay identically.

// CallStrategy calls anything and checks when free. It is the registry
// fallback for unknown names, so it has to be unconditionally safe.
type CallStrategy struct{}

func (CallStrategy) Decide(_ context.Context, v View) (Proposal, error) {
	kind := engine.ActionCheck
	if v.ToCall > 0 {
		kind = engine.ActionCall
	}
	return Proposal{Kind: kind, Rationale: "always call", Confidence: 0.5}, nil
}

// PassiveStrategy checks and calls, never raises. CheckCallBias is the
// chance it pays off a bet instead of folding.
type PassiveStrategy struct {
	Rng           *rand.Rand
	CheckCallBias float64 // default 0.8
}

func (s *PassiveStrategy) Decide(_ context.Context, v View) (Proposal, error) {
	bias := s.CheckCallBias
	if bias == 0 {
		bias = 0.8
	}
	if v.ToCall == 0 {
		return Proposal{Kind: engine.ActionCheck, Rationale: "passive: free card", Confidence: 0.9}, nil
	}
	if s.Rng.Float64() < bias || v.Strength > 0.7 {
		return Proposal{Kind: engine.ActionCall, Rationale: "passive: paying to see", Confidence: 0.6}, nil
	}
	return Proposal{Kind: engine.ActionFold, Rationale: "passive: too expensive", Confidence: 0.6}, nil
}

// TightStrategy folds weak hands to any bet and raises strong ones.
type TightStrategy struct {
	Rng           *rand.Rand
	FoldThreshold float64 // default 0.4
}

func (s *TightStrategy) Decide(_ context.Context, v View) (Proposal, error) {
	threshold := s.FoldThreshold
	if threshold == 0 {
		threshold = 0.4
	}
	switch {
	case v.Strength >= threshold+0.3 && v.CanRaise:
		amt := raiseBy(v, 0.75)
		return Proposal{
			Kind:       engine.ActionRaise,
			Amount:     &amt,
			Rationale:  fmt.Sprintf("tight: strong hand (%.2f)", v.Strength),
			Confidence: v.Strength,
		}, nil
	case v.ToCall == 0:
		return Proposal{Kind: engine.ActionCheck, Rationale: "tight: checking behind", Confidence: 0.7}, nil
	case v.Strength >= threshold:
		return Proposal{Kind: engine.ActionCall, Rationale: "tight: hand is worth a call", Confidence: v.Strength}, nil
	default:
		return Proposal{
			Kind:       engine.ActionFold,
			Rationale:  fmt.Sprintf("tight: below threshold (%.2f < %.2f)", v.Strength, threshold),
			Confidence: 0.8,
		}, nil
	}
}

// LooseStrategy plays most hands and mixes in bluff raises.
type LooseStrategy struct {
	Rng       *rand.Rand
	PlayRate  float64 // default 0.8
	BluffRate float64 // default 0.2
}

func (s *LooseStrategy) Decide(_ context.Context, v View) (Proposal, error) {
	playRate := s.PlayRate
	if playRate == 0 {
		playRate = 0.8
	}
	bluffRate := s.BluffRate
	if bluffRate == 0 {
		bluffRate = 0.2
	}
	if v.CanRaise && (s.Rng.Float64() < bluffRate || v.Strength > 0.6) {
		amt := raiseBy(v, 0.5)
		return Proposal{Kind: engine.ActionRaise, Amount: &amt, Rationale: "loose: applying pressure", Confidence: 0.5}, nil
	}
	if v.ToCall == 0 {
		return Proposal{Kind: engine.ActionCheck, Rationale: "loose: checking", Confidence: 0.5}, nil
	}
	if s.Rng.Float64() < playRate || v.Strength > 0.3 {
		return Proposal{Kind: engine.ActionCall, Rationale: "loose: staying in", Confidence: 0.5}, nil
	}
	return Proposal{Kind: engine.ActionFold, Rationale: "loose: giving up this one", Confidence: 0.4}, nil
}

// BluffStrategy raises a fixed fraction of its turns regardless of its
// cards, and otherwise plays along passively.
type BluffStrategy struct {
	Rng       *rand.Rand
	BluffRate float64 // default 0.3
}

func (s *BluffStrategy) Decide(_ context.Context, v View) (Proposal, error) {
	rate := s.BluffRate
	if rate == 0 {
		rate = 0.3
	}
	if v.CanRaise && s.Rng.Float64() < rate {
		amt := raiseBy(v, 1.0)
		return Proposal{Kind: engine.ActionRaise, Amount: &amt, Rationale: "representing strength", Confidence: 0.3}, nil
	}
	if v.ToCall == 0 {
		return Proposal{Kind: engine.ActionCheck, Rationale: "taking the free card", Confidence: 0.5}, nil
	}
	if v.Strength > v.PotOdds() {
		return Proposal{Kind: engine.ActionCall, Rationale: "priced in", Confidence: 0.5}, nil
	}
	return Proposal{Kind: engine.ActionFold, Rationale: "bluff not worth continuing", Confidence: 0.5}, nil
}

// PositionStrategy is a tight player whose threshold loosens on and
// near the button and tightens in early position.
type PositionStrategy struct {
	Rng           *rand.Rand
	BaseThreshold float64 // default 0.4
	Shift         float64 // default 0.1
}

func (s *PositionStrategy) Decide(ctx context.Context, v View) (Proposal, error) {
	base := s.BaseThreshold
	if base == 0 {
		base = 0.4
	}
	shift := s.Shift
	if shift == 0 {
		shift = 0.1
	}
	threshold := base
	if v.SeatCount > 1 {
		// Late position: distance 0 is the button itself.
		late := v.ButtonDistance <= (v.SeatCount-1)/3
		early := v.ButtonDistance >= v.SeatCount-1-(v.SeatCount-1)/3
		switch {
		case late:
			threshold = base - shift
		case early:
			threshold = base + shift
		}
	}
	inner := TightStrategy{Rng: s.Rng, FoldThreshold: threshold}
	p, err := inner.Decide(ctx, v)
	p.Rationale = fmt.Sprintf("position-adjusted (threshold %.2f): %s", threshold, p.Rationale)
	return p, err
}

// AggressiveStrategy raises whenever it can and calls otherwise.
type AggressiveStrategy struct {
	Rng *rand.Rand
}

func (s *AggressiveStrategy) Decide(_ context.Context, v View) (Proposal, error) {
	if v.CanRaise && (v.Strength > 0.35 || s.Rng.Float64() < 0.4) {
		amt := raiseBy(v, 1.0)
		return Proposal{Kind: engine.ActionRaise, Amount: &amt, Rationale: "aggressive: betting for value", Confidence: 0.6}, nil
	}
	if v.ToCall > 0 {
		return Proposal{Kind: engine.ActionCall, Rationale: "aggressive: not folding", Confidence: 0.6}, nil
	}
	return Proposal{Kind: engine.ActionCheck, Rationale: "aggressive: nothing to attack", Confidence: 0.5}, nil
}

// RandomStrategy picks uniformly from the legal kinds, with a random
// in-bounds amount for raises. Useful as a fuzzing opponent.
type RandomStrategy struct {
	Rng *rand.Rand
}

func (s *RandomStrategy) Decide(_ context.Context, v View) (Proposal, error) {
	if len(v.Legal) == 0 {
		return Proposal{Kind: engine.ActionFold, Rationale: "no legal moves"}, nil
	}
	kind := v.Legal[s.Rng.Intn(len(v.Legal))]
	p := Proposal{Kind: kind, Rationale: "random", Confidence: 0.25}
	if kind == engine.ActionRaise {
		amt := v.Raise.Min
		if v.Raise.Max > v.Raise.Min {
			amt += s.Rng.Intn(v.Raise.Max - v.Raise.Min + 1)
		}
		p.Amount = &amt
	}
	return p, nil
}

// raiseBy sizes a raise at potFrac of the pot on top of the current
// call price, clamped into the view's bounds.
func raiseBy(v View, potFrac float64) int {
	amt := v.ToCall + int(potFrac*float64(v.PotSize+v.ToCall))
	if amt < v.Raise.Min {
		amt = v.Raise.Min
	}
	if amt > v.Raise.Max {
		amt = v.Raise.Max
	}
	return amt
}
