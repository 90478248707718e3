package duskmode

import "sync"

// ThemeStore is a plain observable holding the currently applied theme
// preference for one application session. It replaces module-global
// "current theme" state: construct one per session and pass it to whatever
// needs it. UI framework bindings belong in thin adapters outside this
// package.
type ThemeStore struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

// NewThemeStore returns a store initialized to initial.
func NewThemeStore(initial State) *ThemeStore {
	return &ThemeStore{state: initial, subs: make(map[int]func(State))}
}

// Get returns the current state.
func (s *ThemeStore) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set stores state and then notifies subscribers, in that order, so a
// subscriber reading back through Get always observes the new value.
func (s *ThemeStore) Set(state State) {
	s.mu.Lock()
	s.state = state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Subscribe registers fn for change notifications and returns an
// unsubscribe function that is safe to call more than once.
func (s *ThemeStore) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
