package strategy

import "context"

// HumanStrategy never decides on its own. Every Decide returns
// ErrHumanInput, which makes the scheduler park the turn until the
// seat's owner submits an action through the API.
type HumanStrategy struct{}

func (HumanStrategy) Decide(context.Context, View) (Proposal, error) {
	return Proposal{}, ErrHumanInput
}
