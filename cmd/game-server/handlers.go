package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"holdem-arena/internal/engine"
	"holdem-arena/internal/match"
	"holdem-arena/internal/provider"
	"holdem-arena/internal/strategy"
)

type createGameRequest struct {
	Seats      []match.SeatSpec `json:"seats"`
	MaxHands   int              `json:"max_hands"`
	Buyin      int              `json:"buyin"`
	SmallBlind int              `json:"small_blind"`
	BigBlind   int              `json:"big_blind"`
	Seed       int64            `json:"seed"`
}

func (s *server) sessionConfig(req createGameRequest) match.SessionConfig {
	game := s.cfg.Game
	cfg := match.SessionConfig{
		Seats:             req.Seats,
		Buyin:             game.Buyin,
		SmallBlind:        game.SmallBlind,
		BigBlind:          game.BigBlind,
		MaxHands:          game.MaxHands,
		MaxActionsPerHand: game.MaxActionsPerHand,
		Seed:              req.Seed,
	}
	if req.Buyin > 0 {
		cfg.Buyin = req.Buyin
	}
	if req.SmallBlind > 0 {
		cfg.SmallBlind = req.SmallBlind
	}
	if req.BigBlind > 0 {
		cfg.BigBlind = req.BigBlind
	}
	if req.MaxHands > 0 {
		cfg.MaxHands = req.MaxHands
	}
	return cfg
}

func (s *server) attachRemote(reg *strategy.Registry) {
	if s.llm.Enabled() {
		strategy.RegisterRemote(reg, s.llm, "")
	}
}

func (s *server) createGameHandler(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeHTTPError(w, http.StatusBadRequest, "bad_request")
		return
	}
	sess, err := s.mgr.Create(s.sessionConfig(req), s.attachRemote)
	if err != nil {
		writeHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}
	go func() {
		if err := sess.Advance(context.Background()); err != nil {
			log.Warn().Err(err).Str("session", sess.ID).Msg("session stopped with error")
		}
	}()
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *server) listGamesHandler(w http.ResponseWriter, _ *http.Request) {
	type item struct {
		ID     string       `json:"id"`
		Status match.Status `json:"status"`
		Hand   int          `json:"hand_number"`
	}
	out := []item{}
	for _, sess := range s.mgr.List() {
		snap := sess.Snapshot()
		out = append(out, item{ID: sess.ID, Status: snap.Status, Hand: snap.HandNumber})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) getGameHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.mgr.Get(chi.URLParam(r, "game_id"))
	if err != nil {
		writeHTTPError(w, http.StatusNotFound, "session_not_found")
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *server) gameLogHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.mgr.Get(chi.URLParam(r, "game_id"))
	if err != nil {
		writeHTTPError(w, http.StatusNotFound, "session_not_found")
		return
	}
	writeJSON(w, http.StatusOK, sess.ActionLog())
}

type submitActionRequest struct {
	Seat   int               `json:"seat"`
	Kind   engine.ActionKind `json:"kind"`
	Amount *int              `json:"amount,omitempty"`
}

func (s *server) submitActionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.mgr.Get(chi.URLParam(r, "game_id"))
	if err != nil {
		writeHTTPError(w, http.StatusNotFound, "session_not_found")
		return
	}
	var req submitActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeHTTPError(w, http.StatusBadRequest, "bad_request")
		return
	}
	err = sess.SubmitAction(r.Context(), req.Seat, req.Kind, req.Amount)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, sess.Snapshot())
	case errors.Is(err, match.ErrNotPaused), errors.Is(err, match.ErrOutOfTurn):
		writeHTTPError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrIllegalAction):
		writeHTTPError(w, http.StatusBadRequest, err.Error())
	default:
		writeHTTPError(w, http.StatusInternalServerError, err.Error())
	}
}

// agentDescriptions documents the built-in strategies for the catalog.
var agentDescriptions = map[string]string{
	"call":       "calls any bet and checks when free",
	"passive":    "checks and calls, never raises",
	"tight":      "folds weak hands, raises strong ones",
	"loose":      "plays most hands with occasional bluff raises",
	"bluff":      "raises a fixed share of turns regardless of cards",
	"position":   "tight play loosened in late position",
	"aggressive": "raises whenever it can justify it",
	"random":     "uniform over the legal actions",
	"human":      "decides through the actions endpoint",
}

func (s *server) agentsHandler(w http.ResponseWriter, _ *http.Request) {
	type agent struct {
		Name        string        `json:"name"`
		Kind        strategy.Kind `json:"kind"`
		Description string        `json:"description"`
	}
	reg := strategy.NewRegistry(match.SessionRng(0))
	s.attachRemote(reg)
	out := []agent{}
	for _, name := range reg.Names() {
		desc, ok := agentDescriptions[name]
		if !ok {
			desc = "model-backed " + name + " player"
		}
		out = append(out, agent{Name: name, Kind: reg.KindOf(name), Description: desc})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents":        out,
		"remote":        s.llm.Enabled(),
		"personalities": provider.PersonalityNames(),
	})
}
