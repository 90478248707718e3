// Package store persists a user's theme preference across sessions. A
// Store writes through two redundant channels (typically a durable local
// record plus the client-readable cookie pair) and reads them back with
// fallback, validating everything against the application's scheme
// registry. Nothing in this package returns an error for bad data: corrupt
// or missing records silently yield defaults, and channel write failures
// are logged and swallowed so a storage problem can never break a render.
package store

import (
	"go.uber.org/zap"

	"github.com/duskmode/duskmode"
	"github.com/duskmode/duskmode/schemes"
)

// StorageKey is the versioned record key for the durable channel, the
// localStorage analog.
const StorageKey = "duskmode_theme_v1"

// Channel is one persistence backend. Load reports ok=false when the
// record is absent or unreadable; it must not invent defaults, that is the
// Store's job.
type Channel interface {
	Load() (state duskmode.State, ok bool)
	Save(state duskmode.State) error
	Clear() error
}

// Store reads and writes the preference through a primary and an optional
// secondary channel.
type Store struct {
	primary   Channel
	secondary Channel
	registry  *schemes.Registry
	log       *zap.Logger
}

// New builds a Store. secondary may be nil for single-channel setups;
// registry may be nil, in which case any safe scheme id is accepted.
func New(primary, secondary Channel, registry *schemes.Registry, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{primary: primary, secondary: secondary, registry: registry, log: log}
}

func (s *Store) known() []string {
	if s.registry == nil {
		return nil
	}
	return s.registry.IDs()
}

// Load returns the persisted preference: primary channel first, then
// secondary, then built-in defaults. Whatever comes back is normalized, so
// the result is always fully populated and safe.
func (s *Store) Load() duskmode.State {
	if s.primary != nil {
		if st, ok := s.primary.Load(); ok {
			return duskmode.Normalize(st, s.known())
		}
	}
	if s.secondary != nil {
		if st, ok := s.secondary.Load(); ok {
			return duskmode.Normalize(st, s.known())
		}
	}
	return duskmode.DefaultState(s.known())
}

// Save writes state to both channels. Failures (quota, disabled storage,
// policy errors) are logged at warn and otherwise ignored; the in-memory
// resolution pipeline keeps going regardless.
func (s *Store) Save(state duskmode.State) {
	state = duskmode.Normalize(state, s.known())
	if s.primary != nil {
		if err := s.primary.Save(state); err != nil {
			s.log.Warn("primary preference channel save failed", zap.Error(err))
		}
	}
	if s.secondary != nil {
		if err := s.secondary.Save(state); err != nil {
			s.log.Warn("secondary preference channel save failed", zap.Error(err))
		}
	}
}

// Clear removes the primary-channel record only; the secondary channel
// (cookies) is left to expire naturally.
func (s *Store) Clear() {
	if s.primary == nil {
		return
	}
	if err := s.primary.Clear(); err != nil {
		s.log.Warn("primary preference channel clear failed", zap.Error(err))
	}
}
