package duskmode

// Detector answers a single question: does the surrounding environment
// currently prefer a dark presentation? Implementations live in the detect
// subpackage (media-query monitors, request-header heuristics); anything
// with no signal should answer false, since light is the safe default.
type Detector interface {
	DarkPreferred() bool
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func() bool

func (f DetectorFunc) DarkPreferred() bool { return f() }

// Resolved is the ephemeral result of collapsing a State against the live
// system signal. Visual is always light or dark, never system. Resolved
// values are computed fresh on every resolution and never stored.
type Resolved struct {
	// Visual is the concrete light/dark value to render with.
	Visual Mode
	// State is the preference the resolution was computed from.
	State State
	// SystemDerived is true when Visual came from the detector rather
	// than directly from State.Mode.
	SystemDerived bool
}

// Resolve collapses state against the detector. When state.Mode is light or
// dark the detector is not consulted at all.
func Resolve(state State, det Detector) Resolved {
	if state.Mode == ModeLight || state.Mode == ModeDark {
		return Resolved{Visual: state.Mode, State: state}
	}
	visual := ModeLight
	if det != nil && det.DarkPreferred() {
		visual = ModeDark
	}
	return Resolved{Visual: visual, State: state, SystemDerived: true}
}
