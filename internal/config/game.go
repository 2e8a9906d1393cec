package config

import "github.com/caarlos0/env/v11"

// GameConfig carries table defaults plus the scheduler safety ceiling.
// MaxActionsPerHand bounds a single hand's autonomous turn loop; hitting
// it marks the session errored rather than looping forever.
type GameConfig struct {
	Buyin             int `env:"GAME_BUYIN" envDefault:"1000"`
	SmallBlind        int `env:"GAME_SMALL_BLIND" envDefault:"10"`
	BigBlind          int `env:"GAME_BIG_BLIND" envDefault:"20"`
	MaxHands          int `env:"GAME_MAX_HANDS" envDefault:"15"`
	MaxSeats          int `env:"GAME_MAX_SEATS" envDefault:"6"`
	MaxActionsPerHand int `env:"GAME_MAX_ACTIONS_PER_HAND" envDefault:"100"`
}

func LoadGame() (GameConfig, error) {
	var cfg GameConfig
	err := env.Parse(&cfg)
	return cfg, err
}
