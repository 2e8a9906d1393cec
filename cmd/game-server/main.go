package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"holdem-arena/internal/config"
	"holdem-arena/internal/logging"
	"holdem-arena/internal/match"
	"holdem-arena/internal/provider"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	srv := &server{
		cfg: cfg,
		mgr: match.NewManager(cfg.Game.MaxSeats),
		llm: provider.NewClient(cfg.Provider),
	}
	if srv.llm.Enabled() {
		log.Info().Str("model", cfg.Provider.DefaultModel).Msg("remote strategies enabled")
	} else {
		log.Info().Msg("no provider key, remote strategies disabled")
	}

	r := newRouter(srv)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(httpServer.ListenAndServe()).Msg("server stopped")
}
