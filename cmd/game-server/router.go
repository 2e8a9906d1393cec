package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"holdem-arena/internal/config"
	"holdem-arena/internal/match"
	"holdem-arena/internal/provider"
)

type server struct {
	cfg config.AppConfig
	mgr *match.Manager
	llm *provider.Client
}

func newRouter(s *server) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())

		r.Get("/agents", s.agentsHandler)

		r.Post("/games", s.createGameHandler)
		r.Get("/games", s.listGamesHandler)
		r.Get("/games/{game_id}", s.getGameHandler)
		r.Get("/games/{game_id}/log", s.gameLogHandler)
		r.Post("/games/{game_id}/actions", s.submitActionHandler)
	})

	// The websocket route skips the request logger: it holds the
	// connection open for the session's lifetime.
	r.Get("/api/games/{game_id}/ws", s.watchGameHandler)
	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
