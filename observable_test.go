package duskmode

import "testing"

func TestThemeStoreGetSet(t *testing.T) {
	s := NewThemeStore(State{ModeSystem, "default"})
	if got := s.Get(); got != (State{ModeSystem, "default"}) {
		t.Fatalf("initial Get = %+v", got)
	}
	s.Set(State{ModeDark, "nord"})
	if got := s.Get(); got != (State{ModeDark, "nord"}) {
		t.Fatalf("Get after Set = %+v", got)
	}
}

func TestThemeStoreNotifiesAfterStore(t *testing.T) {
	s := NewThemeStore(State{ModeSystem, "default"})

	// The subscriber must observe the new value through Get: the store
	// update happens-before notification.
	var seen State
	s.Subscribe(func(st State) {
		seen = s.Get()
	})
	s.Set(State{ModeLight, "paper"})
	if seen != (State{ModeLight, "paper"}) {
		t.Errorf("subscriber observed %+v via Get, want the new state", seen)
	}
}

func TestThemeStoreUnsubscribe(t *testing.T) {
	s := NewThemeStore(State{ModeSystem, "default"})
	calls := 0
	unsub := s.Subscribe(func(State) { calls++ })

	s.Set(State{ModeDark, "default"})
	unsub()
	unsub() // safe to call again
	s.Set(State{ModeLight, "default"})

	if calls != 1 {
		t.Errorf("subscriber called %d times, want 1", calls)
	}
}
