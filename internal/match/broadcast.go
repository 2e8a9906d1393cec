package match

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Observer receives session snapshots. Send must not block forever:
// a slow or dead observer is dropped on its first error and the rest
// keep receiving.
type Observer interface {
	Send(Snapshot) error
}

// Broadcaster fans snapshots out to attached observers. Observers are
// keyed by identity; attaching mid-session only yields snapshots
// published after the attach.
type Broadcaster struct {
	mu        sync.Mutex
	observers map[Observer]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{observers: map[Observer]struct{}{}}
}

func (b *Broadcaster) Attach(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers[o] = struct{}{}
}

func (b *Broadcaster) Detach(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.observers, o)
}

func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.observers)
}

// Publish sends snap to every observer, dropping the ones that fail.
func (b *Broadcaster) Publish(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for o := range b.observers {
		if err := o.Send(snap); err != nil {
			log.Debug().Err(err).Str("session", snap.SessionID).
				Msg("dropping observer after send failure")
			delete(b.observers, o)
		}
	}
}
