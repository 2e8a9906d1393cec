package provider

import (
	"fmt"
	"strings"
)

// personalities are the playing-style notes injected into the system
// prompt. Unknown names get the balanced note.
var personalities = map[string]string{
	"balanced": "Play a balanced, solid game. Mix value bets with the " +
		"occasional well-timed bluff and respect strong opposition.",
	"aggressive": "Play aggressively. Prefer raising to calling, attack " +
		"weakness, and fight for every pot you enter.",
	"conservative": "Play conservatively. Only commit chips with strong " +
		"holdings, fold marginal hands to pressure, and avoid thin bluffs.",
	"bluffer": "Bluff frequently. Represent hands you do not have, apply " +
		"maximum pressure on scary boards, and keep opponents guessing.",
	"mathematical": "Decide strictly by the numbers. Compare your hand " +
		"strength with the pot odds on every call and size raises around " +
		"the pot.",
}

// PersonalityNames lists the known personality styles.
func PersonalityNames() []string {
	return []string{"aggressive", "balanced", "bluffer", "conservative", "mathematical"}
}

func systemPrompt(personality string) string {
	note, ok := personalities[personality]
	if !ok {
		note = personalities["balanced"]
	}
	return "You are a no-limit Texas hold'em player making a single decision. " +
		note + " Pick only from the legal actions you are given. Raise amounts " +
		"are the total you raise to, within the given bounds."
}

func statePrompt(s TableState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Street: %s\n", s.Phase)
	fmt.Fprintf(&b, "Your hole cards: %s\n", strings.Join(s.Hole, " "))
	if len(s.Board) > 0 {
		fmt.Fprintf(&b, "Board: %s\n", strings.Join(s.Board, " "))
	} else {
		b.WriteString("Board: (none yet)\n")
	}
	fmt.Fprintf(&b, "Estimated hand strength: %.2f\n", s.Strength)
	fmt.Fprintf(&b, "Pot: %d chips, your stack: %d chips\n", s.Pot, s.Chips)
	if s.ToCall > 0 {
		fmt.Fprintf(&b, "To call: %d chips (pot odds %.2f)\n", s.ToCall, s.PotOdds)
	} else {
		b.WriteString("Nothing to call.\n")
	}
	fmt.Fprintf(&b, "Position: seat %d of %d, %d seats off the button\n",
		s.Seat, s.SeatCount, s.ButtonDistance)
	fmt.Fprintf(&b, "Legal actions: %s\n", strings.Join(s.LegalActions, ", "))
	if s.CanRaise {
		fmt.Fprintf(&b, "Raise-to bounds: %d to %d\n", s.RaiseMin, s.RaiseMax)
	}
	return b.String()
}

func memoryPrompt(entries []MemoryEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Your earlier decisions this hand:\n")
	for _, e := range entries {
		if e.Amount != nil {
			fmt.Fprintf(&b, "- %s: %s to %d (%s)\n", e.Phase, e.Action, *e.Amount, e.Reasoning)
		} else {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", e.Phase, e.Action, e.Reasoning)
		}
	}
	return b.String()
}

const textFormatInstruction = "Reply with exactly these lines and nothing else:\n" +
	"ACTION: one of FOLD, CHECK, CALL, RAISE\n" +
	"AMOUNT: the raise-to total in chips, only when raising\n" +
	"REASONING: one short sentence\n" +
	"CONFIDENCE: a number between 0 and 1"

func userPrompt(turn Turn, structured bool) string {
	parts := []string{statePrompt(turn.State)}
	if mem := memoryPrompt(turn.Memory); mem != "" {
		parts = append(parts, mem)
	}
	if structured {
		parts = append(parts, "Decide now and answer with the JSON object only.")
	} else {
		parts = append(parts, textFormatInstruction)
	}
	return strings.Join(parts, "\n")
}
