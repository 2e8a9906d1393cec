package engine

import "math/rand"

// strengthSamples is the Monte Carlo budget per estimate. River
// estimates enumerate every opponent holding exactly instead.
const strengthSamples = 200

// Strength estimates equity of hole+board against one random opponent
// holding, normalized to [0,1]. On the river the villain range is
// enumerated exactly; earlier streets are sampled with rng, so a seeded
// source gives reproducible scores.
func Strength(rng *rand.Rand, hole []Card, board []Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	deck := NewDeck()
	deck.Remove(hole...)
	deck.Remove(board...)
	avail := deck.cards

	if len(board) == 5 {
		return enumerateRiver(hole, board, avail)
	}

	need := 5 - len(board)
	wins, ties := 0, 0
	for n := 0; n < strengthSamples; n++ {
		idx := rng.Perm(len(avail))
		villain := []Card{avail[idx[0]], avail[idx[1]]}
		full := make([]Card, 0, 5)
		full = append(full, board...)
		for i := 0; i < need; i++ {
			full = append(full, avail[idx[2+i]])
		}
		hero := Evaluate(append(append([]Card{}, hole...), full...))
		vill := Evaluate(append(append([]Card{}, villain...), full...))
		switch {
		case hero.BetterThan(vill):
			wins++
		case !vill.BetterThan(hero):
			ties++
		}
	}
	return (float64(wins) + 0.5*float64(ties)) / float64(strengthSamples)
}

func enumerateRiver(hole, board, avail []Card) float64 {
	hero := Evaluate(append(append([]Card{}, hole...), board...))
	total, wins, ties := 0, 0, 0
	for i := 0; i < len(avail); i++ {
		for j := i + 1; j < len(avail); j++ {
			total++
			vill := Evaluate(append([]Card{avail[i], avail[j]}, board...))
			switch {
			case hero.BetterThan(vill):
				wins++
			case !vill.BetterThan(hero):
				ties++
			}
		}
	}
	if total == 0 {
		return 0.5
	}
	return (float64(wins) + 0.5*float64(ties)) / float64(total)
}
