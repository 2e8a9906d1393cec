package strategy

import (
	"context"

	"github.com/rs/zerolog/log"

	"holdem-arena/internal/engine"
	"holdem-arena/internal/provider"
)

// RemoteStrategy delegates decisions to the inference provider. It
// keeps a per-hand memory of its own applied actions, replayed into
// every prompt; the memory is cleared when the hand number changes.
// Phase alone cannot tell a new hand's opening preflop turn from a
// second preflop turn in the same hand.
//
// The proposal it returns is already clamped: what goes into memory is
// the action the table will actually see, not the model's raw intent.
// A failed round trip decides by the call-check-fold fallback and
// leaves no memory entry.
type RemoteStrategy struct {
	client      *provider.Client
	model       string
	personality string

	memory   []provider.MemoryEntry
	lastHand int
}

func NewRemoteStrategy(client *provider.Client, model, personality string) *RemoteStrategy {
	return &RemoteStrategy{client: client, model: model, personality: personality}
}

// RegisterRemote adds one registry entry per personality, named
// "llm:<personality>". Call only with an enabled client: disabled
// providers should leave the names unregistered so seats degrade to
// the default strategy.
func RegisterRemote(reg *Registry, client *provider.Client, model string) {
	for _, p := range provider.PersonalityNames() {
		personality := p
		reg.Register("llm:"+personality, KindRemote, func() Strategy {
			return NewRemoteStrategy(client, model, personality)
		})
	}
}

func (s *RemoteStrategy) Decide(ctx context.Context, v View) (Proposal, error) {
	if v.HandNumber != s.lastHand {
		s.memory = nil
		s.lastHand = v.HandNumber
	}

	d, err := s.client.Decide(ctx, s.model, s.buildTurn(v))
	if err != nil {
		log.Warn().Err(err).Int("seat", v.Seat).Msg("remote decision failed, falling back")
		return Clamp(v, Proposal{
			Kind:       engine.ActionCall,
			Rationale:  "provider unavailable",
			Confidence: 0.0,
		}), nil
	}

	p := Clamp(v, Proposal{
		Kind:       decisionKind(d.Action),
		Amount:     d.Amount,
		Rationale:  d.Reasoning,
		Confidence: d.Confidence,
	})
	s.memory = append(s.memory, provider.MemoryEntry{
		Phase:     string(v.Phase),
		Action:    string(p.Kind),
		Amount:    p.Amount,
		Reasoning: d.Reasoning,
	})
	return p, nil
}

func decisionKind(action string) engine.ActionKind {
	switch action {
	case "fold":
		return engine.ActionFold
	case "check":
		return engine.ActionCheck
	case "raise":
		return engine.ActionRaise
	default:
		return engine.ActionCall
	}
}

func (s *RemoteStrategy) buildTurn(v View) provider.Turn {
	return provider.Turn{
		State: provider.TableState{
			Phase:          string(v.Phase),
			Hole:           cardStrings(v.Hole),
			Board:          cardStrings(v.Board),
			Chips:          v.Chips,
			ToCall:         v.ToCall,
			Pot:            v.PotSize,
			Strength:       v.Strength,
			PotOdds:        v.PotOdds(),
			LegalActions:   actionStrings(v.Legal),
			CanRaise:       v.CanRaise,
			RaiseMin:       v.Raise.Min,
			RaiseMax:       v.Raise.Max,
			Seat:           v.Seat,
			SeatCount:      v.SeatCount,
			ButtonDistance: v.ButtonDistance,
		},
		Personality: s.personality,
		Memory:      s.memory,
	}
}

func cardStrings(cards []engine.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func actionStrings(kinds []engine.ActionKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
