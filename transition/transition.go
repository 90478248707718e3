// Package transition suppresses CSS transitions for a short window around
// a theme switch, so property animations don't produce a visible flash
// while classes change.
package transition

import (
	"sync"
	"time"

	"github.com/duskmode/duskmode/render"
)

// SuppressClass is the marker class stylesheets key off to disable
// transitions.
const SuppressClass = "theme-switching"

// DefaultWindow is how long transitions stay suppressed after the last
// switch in a burst.
const DefaultWindow = 100 * time.Millisecond

// Coordinator owns at most one pending removal timer for one root node.
// Construct one per root; there is no package-level shared state.
type Coordinator struct {
	root   render.Root
	window time.Duration

	mu      sync.Mutex
	pending *time.Timer
	gen     uint64
}

// NewCoordinator returns a coordinator for root. A non-positive window
// falls back to DefaultWindow.
func NewCoordinator(root render.Root, window time.Duration) *Coordinator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Coordinator{root: root, window: window}
}

// BeginSwitch marks the start of a theme switch: the suppression class is
// added immediately and scheduled for removal one window later. Any timer
// from an earlier switch is cancelled and replaced, never left
// unscheduled, so a burst of rapid switches ends with exactly one removal,
// no earlier than one window after the last switch. The class can never
// get stuck.
func (c *Coordinator) BeginSwitch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.root.AddClass(SuppressClass)
	if c.pending != nil {
		c.pending.Stop()
	}
	// A stopped timer may already have fired and be waiting on c.mu. The
	// generation counter lets that stale callback recognize it has been
	// superseded and leave the class and the new timer alone.
	c.gen++
	gen := c.gen
	c.pending = time.AfterFunc(c.window, func() { c.endSwitch(gen) })
}

func (c *Coordinator) endSwitch(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.root.RemoveClass(SuppressClass)
	c.pending = nil
}

// Pending reports whether a removal is currently scheduled.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}
