package match

import (
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"holdem-arena/internal/engine"
	"holdem-arena/internal/strategy"
)

// Manager holds the live sessions. Sessions are purely in-memory: a
// restart forgets them, which is the intended lifecycle for a match.
type Manager struct {
	maxSeats int

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(maxSeats int) *Manager {
	return &Manager{
		maxSeats: maxSeats,
		sessions: map[string]*Session{},
	}
}

// Create builds a session with its own table, registry and random
// source, registers it and returns it. attach is called with the
// session's registry before seats resolve, so callers can add remote
// strategies when a provider is configured.
func (m *Manager) Create(cfg SessionConfig, attach func(*strategy.Registry)) (*Session, error) {
	if len(cfg.Seats) < 2 || len(cfg.Seats) > m.maxSeats {
		return nil, ErrBadSeatCount
	}
	rng := SessionRng(cfg.Seed)
	reg := strategy.NewRegistry(rng)
	if attach != nil {
		attach(reg)
	}
	tbl := engine.New(engine.Config{
		Seats:      len(cfg.Seats),
		Buyin:      cfg.Buyin,
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Rng:        rng,
	})
	s := NewSession(ulid.Make().String(), cfg, reg, tbl)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// List returns the sessions sorted by ID; ULIDs sort by creation time.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
