package transition

import (
	"testing"
	"time"

	"github.com/duskmode/duskmode/render"
)

func waitForRemoval(t *testing.T, c *Coordinator) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !c.Pending() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("suppression removal never ran")
}

func hasClass(n *render.Node, name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

func TestBeginSwitchAddsAndRemoves(t *testing.T) {
	n := render.NewNode()
	c := NewCoordinator(n, 20*time.Millisecond)

	c.BeginSwitch()
	if !hasClass(n, SuppressClass) {
		t.Fatal("suppression class not added")
	}
	waitForRemoval(t, c)
	if hasClass(n, SuppressClass) {
		t.Error("suppression class not removed after window")
	}
}

func TestRapidSwitchesSingleRemoval(t *testing.T) {
	n := render.NewNode()
	c := NewCoordinator(n, 50*time.Millisecond)

	// Three switches inside the window: the class must stay on for the
	// whole burst and come off exactly once, relative to the last switch.
	c.BeginSwitch()
	time.Sleep(10 * time.Millisecond)
	c.BeginSwitch()
	time.Sleep(10 * time.Millisecond)
	start := time.Now()
	c.BeginSwitch()

	if !hasClass(n, SuppressClass) {
		t.Fatal("suppression class dropped mid-burst")
	}
	waitForRemoval(t, c)
	elapsed := time.Since(start)
	if elapsed < 50*time.Millisecond {
		t.Errorf("removal ran %v after last switch, want >= window", elapsed)
	}
	if hasClass(n, SuppressClass) {
		t.Error("suppression class stuck after burst")
	}
}

func TestSwitchRacingExpiredTimerKeepsFullWindow(t *testing.T) {
	// A switch arriving just as the previous timer fires must still hold
	// the class for a full window. The fired callback can be blocked on
	// the mutex when BeginSwitch replaces it; it must not strip the class
	// scheduled by the newer switch.
	const window = 5 * time.Millisecond
	n := render.NewNode()
	c := NewCoordinator(n, window)

	for i := 0; i < 200; i++ {
		c.BeginSwitch()
		time.Sleep(window)
		start := time.Now()
		c.BeginSwitch()

		for c.Pending() {
			time.Sleep(200 * time.Microsecond)
		}
		if elapsed := time.Since(start); elapsed < window {
			t.Fatalf("iteration %d: removal ran %v after last switch, want >= %v", i, elapsed, window)
		}
		if hasClass(n, SuppressClass) {
			t.Fatalf("iteration %d: suppression class stuck after removal", i)
		}
	}
}

func TestSwitchAfterRemovalSchedulesAgain(t *testing.T) {
	n := render.NewNode()
	c := NewCoordinator(n, 10*time.Millisecond)

	c.BeginSwitch()
	waitForRemoval(t, c)

	c.BeginSwitch()
	if !hasClass(n, SuppressClass) {
		t.Fatal("second switch did not re-add class")
	}
	waitForRemoval(t, c)
	if hasClass(n, SuppressClass) {
		t.Error("second removal did not run")
	}
}

func TestDefaultWindow(t *testing.T) {
	c := NewCoordinator(render.NewNode(), 0)
	if c.window != DefaultWindow {
		t.Errorf("window = %v, want %v", c.window, DefaultWindow)
	}
}
