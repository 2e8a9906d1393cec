package strategy

import "holdem-arena/internal/engine"

// Clamp maps any proposal onto a legal one for the view. It is total:
// whatever a strategy asks for, the result can be applied as-is.
//
// Raises keep their kind with the amount forced into bounds when
// raising is legal at all; otherwise the request degrades along
// CALL, CHECK, FOLD, taking the first kind the view allows. Clamp is
// the identity on proposals that are already legal.
func Clamp(v View, p Proposal) Proposal {
	if p.Kind == engine.ActionRaise && v.CanRaise {
		amt := v.Raise.Min
		if p.Amount != nil {
			amt = *p.Amount
			if amt < v.Raise.Min {
				amt = v.Raise.Min
			}
			if amt > v.Raise.Max {
				amt = v.Raise.Max
			}
		}
		p.Amount = &amt
		return p
	}

	order := []engine.ActionKind{p.Kind, engine.ActionCall, engine.ActionCheck, engine.ActionFold}
	for _, kind := range order {
		if kind == engine.ActionRaise {
			continue
		}
		if v.allows(kind) {
			p.Kind = kind
			p.Amount = nil
			return p
		}
	}
	// Fold is always in the legal set during a hand; this is only
	// reachable with an empty view.
	p.Kind = engine.ActionFold
	p.Amount = nil
	return p
}
