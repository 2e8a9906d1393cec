package engine

import (
	poker "github.com/paulhankin/poker"
)

// HandScore is comparable across hands: a higher score wins.
type HandScore int16

func (h HandScore) BetterThan(o HandScore) bool { return h > o }

func toPH(c Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case Clubs:
		s = poker.Club
	case Diamonds:
		s = poker.Diamond
	case Hearts:
		s = poker.Heart
	default:
		s = poker.Spade
	}
	// Library ranks run 1..13 with Ace = 1.
	var r poker.Rank
	if c.Rank == Ace {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(c.Rank)
	}
	card, _ := poker.MakeCard(s, r)
	return card
}

// Evaluate scores the best 5-card hand from 5, 6 or 7 cards.
func Evaluate(cards []Card) HandScore {
	pcs := make([]poker.Card, len(cards))
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	switch len(cards) {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		return HandScore(poker.Eval7(&a7))
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		return HandScore(poker.Eval5(&a5))
	default:
		// 6 cards: best of the five-card subsets.
		var best HandScore
		var a5 [5]poker.Card
		for skip := 0; skip < len(pcs); skip++ {
			k := 0
			for i, pc := range pcs {
				if i == skip {
					continue
				}
				a5[k] = pc
				k++
			}
			if s := HandScore(poker.Eval5(&a5)); skip == 0 || s.BetterThan(best) {
				best = s
			}
		}
		return best
	}
}
