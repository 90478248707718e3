// Package detect supplies the OS/browser dark-mode signal to the
// resolution engine. Sources range from a live media-query bridge on a
// client to request-header heuristics on a server; environments with no
// signal at all read as light, the universally safe default.
package detect

import (
	"sync"

	"github.com/duskmode/duskmode"
)

// Static returns a detector that always reports the given value. Useful
// for tests and for environments known to have no live signal.
func Static(dark bool) duskmode.Detector {
	return duskmode.DetectorFunc(func() bool { return dark })
}

// Source is the minimal capability a signal source must offer: a one-shot
// read of the current dark preference.
type Source interface {
	Dark() bool
}

// ModernSource is the event-target-style subscription capability: the
// source hands back its own removal function.
type ModernSource interface {
	Source
	AddChangeListener(fn func(dark bool)) (remove func())
}

// LegacySource is the older listener-list capability: registration returns
// a handle that must be passed back to remove the listener.
type LegacySource interface {
	Source
	AddListener(fn func(dark bool)) (handle int)
	RemoveListener(handle int)
}

// subscriber is selected once at Monitor construction; per-call capability
// branching is what this replaces.
type subscriber func(fn func(bool)) (remove func())

// Monitor wraps a Source as a duskmode.Detector with change subscription.
// The source's subscription capability is probed exactly once, preferring
// the modern variant when a source implements both.
type Monitor struct {
	src       Source
	subscribe subscriber
}

// NewMonitor probes src's capabilities and returns a ready Monitor. A nil
// src yields a monitor that always reports light and never notifies.
func NewMonitor(src Source) *Monitor {
	m := &Monitor{src: src}
	switch s := src.(type) {
	case ModernSource:
		m.subscribe = s.AddChangeListener
	case LegacySource:
		m.subscribe = func(fn func(bool)) func() {
			handle := s.AddListener(fn)
			return func() { s.RemoveListener(handle) }
		}
	}
	return m
}

// DarkPreferred reads the current signal once.
func (m *Monitor) DarkPreferred() bool {
	return m.src != nil && m.src.Dark()
}

// Subscribe registers fn for change notifications where the source supports
// them; otherwise it is a no-op. The returned unsubscribe function is
// always non-nil, never panics, and is safe to call repeatedly, even
// after the underlying source has already torn down.
func (m *Monitor) Subscribe(fn func(dark bool)) (unsubscribe func()) {
	if m.subscribe == nil {
		return func() {}
	}
	remove := m.subscribe(fn)
	var once sync.Once
	return func() {
		once.Do(func() {
			if remove != nil {
				remove()
			}
		})
	}
}
