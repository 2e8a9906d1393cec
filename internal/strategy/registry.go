package strategy

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
)

// DefaultName is what unknown strategy names resolve to.
const DefaultName = "call"

// Kind categorizes a decision source.
type Kind string

const (
	KindHeuristic Kind = "heuristic"
	KindRemote    Kind = "remote"
	KindHuman     Kind = "human"
)

// NamedStrategy is a strategy carrying the name and kind it resolved
// to. Both are attributes of the instance, so reporting "which agent
// is this seat" never has to map back from behavior to a name.
type NamedStrategy struct {
	Name string
	Kind Kind
	Strategy
}

type factoryEntry struct {
	kind Kind
	make func() Strategy
}

// Registry maps strategy names to constructors. Resolving an unknown
// name never fails: it logs and hands back the call strategy, so a
// bad config yields a boring seat instead of a dead session.
type Registry struct {
	factories map[string]factoryEntry
}

// NewRegistry returns a registry with every built-in heuristic
// registered, all sharing rng.
func NewRegistry(rng *rand.Rand) *Registry {
	r := &Registry{factories: map[string]factoryEntry{}}
	r.Register(DefaultName, KindHeuristic, func() Strategy { return CallStrategy{} })
	r.Register("passive", KindHeuristic, func() Strategy { return &PassiveStrategy{Rng: rng} })
	r.Register("tight", KindHeuristic, func() Strategy { return &TightStrategy{Rng: rng} })
	r.Register("loose", KindHeuristic, func() Strategy { return &LooseStrategy{Rng: rng} })
	r.Register("bluff", KindHeuristic, func() Strategy { return &BluffStrategy{Rng: rng} })
	r.Register("position", KindHeuristic, func() Strategy { return &PositionStrategy{Rng: rng} })
	r.Register("aggressive", KindHeuristic, func() Strategy { return &AggressiveStrategy{Rng: rng} })
	r.Register("random", KindHeuristic, func() Strategy { return &RandomStrategy{Rng: rng} })
	r.Register("human", KindHuman, func() Strategy { return HumanStrategy{} })
	return r
}

func (r *Registry) Register(name string, kind Kind, factory func() Strategy) {
	r.factories[name] = factoryEntry{kind: kind, make: factory}
}

// Names lists registered strategy names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// KindOf reports the kind a name would resolve to.
func (r *Registry) KindOf(name string) Kind {
	if entry, ok := r.factories[name]; ok {
		return entry.kind
	}
	return r.factories[DefaultName].kind
}

// Resolve builds the named strategy, falling back to the default on an
// unknown name. The returned Name is what the seat actually runs, not
// what was asked for.
func (r *Registry) Resolve(name string) NamedStrategy {
	entry, ok := r.factories[name]
	if !ok {
		log.Warn().Str("strategy", name).Str("fallback", DefaultName).
			Msg("unknown strategy name")
		name = DefaultName
		entry = r.factories[name]
	}
	return NamedStrategy{Name: name, Kind: entry.kind, Strategy: entry.make()}
}
