package config

import "testing"

func TestLoadGameDefaults(t *testing.T) {
	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.Buyin != 1000 {
		t.Fatalf("Buyin = %d, want 1000", cfg.Buyin)
	}
	if cfg.SmallBlind != 10 || cfg.BigBlind != 20 {
		t.Fatalf("blinds = %d/%d, want 10/20", cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.MaxActionsPerHand != 100 {
		t.Fatalf("MaxActionsPerHand = %d, want 100", cfg.MaxActionsPerHand)
	}
}

func TestLoadGameParseTypes(t *testing.T) {
	t.Setenv("GAME_BUYIN", "500")
	t.Setenv("GAME_MAX_ACTIONS_PER_HAND", "50")

	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame() error = %v", err)
	}
	if cfg.Buyin != 500 {
		t.Fatalf("Buyin = %d, want 500", cfg.Buyin)
	}
	if cfg.MaxActionsPerHand != 50 {
		t.Fatalf("MaxActionsPerHand = %d, want 50", cfg.MaxActionsPerHand)
	}
}

func TestLoadProviderDisabledWithoutKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, err := LoadProvider()
	if err != nil {
		t.Fatalf("LoadProvider() error = %v", err)
	}
	if cfg.Enabled() {
		t.Fatal("Enabled() = true without an API key")
	}
	if cfg.BaseURL == "" || cfg.DefaultModel == "" {
		t.Fatalf("missing defaults: base=%q model=%q", cfg.BaseURL, cfg.DefaultModel)
	}
}
