// Command autoplay runs one fully autonomous match from the
// environment and prints per-hand standings. It drives the same
// session machinery as the server, without HTTP in the way.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"holdem-arena/internal/config"
	"holdem-arena/internal/logging"
	"holdem-arena/internal/match"
	"holdem-arena/internal/provider"
	"holdem-arena/internal/strategy"
)

func main() {
	_ = godotenv.Load()

	lineup := flag.String("seats", "tight,loose,bluff,passive",
		"comma-separated strategy names, one per seat")
	seed := flag.Int64("seed", 0, "random seed, 0 picks one")
	flag.Parse()

	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	var seats []match.SeatSpec
	for i, name := range strings.Split(*lineup, ",") {
		name = strings.TrimSpace(name)
		seats = append(seats, match.SeatSpec{
			Name:     fmt.Sprintf("seat-%d (%s)", i, name),
			Strategy: name,
		})
	}

	llm := provider.NewClient(cfg.Provider)
	mgr := match.NewManager(len(seats))
	sess, err := mgr.Create(match.SessionConfig{
		Seats:             seats,
		Buyin:             cfg.Game.Buyin,
		SmallBlind:        cfg.Game.SmallBlind,
		BigBlind:          cfg.Game.BigBlind,
		MaxHands:          cfg.Game.MaxHands,
		MaxActionsPerHand: cfg.Game.MaxActionsPerHand,
		Seed:              *seed,
	}, func(reg *strategy.Registry) {
		if llm.Enabled() {
			strategy.RegisterRemote(reg, llm, "")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create session failed")
	}

	sess.Broadcaster().Attach(printObserver{})
	if err := sess.Advance(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("session failed")
	}

	final := sess.Snapshot()
	fmt.Printf("\nfinal standings after %d hands:\n", final.HandNumber)
	for _, seat := range final.Seats {
		fmt.Printf("  %-24s %6d chips\n", seat.Name, seat.Chips)
	}
}

// printObserver reports hand boundaries on stdout.
type printObserver struct{}

func (printObserver) Send(snap match.Snapshot) error {
	if snap.Phase != "settle" {
		return nil
	}
	chips := make([]string, len(snap.Seats))
	for i, seat := range snap.Seats {
		chips[i] = fmt.Sprintf("%s=%d", seat.Name, seat.Chips)
	}
	fmt.Printf("hand %2d settled: %s\n", snap.HandNumber, strings.Join(chips, "  "))
	return nil
}
