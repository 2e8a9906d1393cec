package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"holdem-arena/internal/match"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// wsObserver adapts one websocket connection to the broadcaster. A
// write error surfaces through Send, which is how the broadcaster
// knows to drop the connection.
type wsObserver struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (o *wsObserver) Send(snap match.Snapshot) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_ = o.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return o.conn.WriteJSON(snap)
}

func (s *server) watchGameHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.mgr.Get(chi.URLParam(r, "game_id"))
	if err != nil {
		writeHTTPError(w, http.StatusNotFound, "session_not_found")
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("ws upgrade failed")
		return
	}

	obs := &wsObserver{conn: conn}
	// Late joiners get the current state once, then live publishes.
	if err := obs.Send(sess.Snapshot()); err != nil {
		_ = conn.Close()
		return
	}
	sess.Broadcaster().Attach(obs)
	defer func() {
		sess.Broadcaster().Detach(obs)
		_ = conn.Close()
	}()

	// Drain client frames so pings and closes are processed; the
	// observer never expects input.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
