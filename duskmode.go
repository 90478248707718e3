// Package duskmode resolves a user's light/dark/system theme preference,
// combined with per-route policy and OS-level signals, into the concrete
// mode and color scheme a page should render with. Persistence channels,
// HTTP integration, and DOM/HTML application live in subpackages.
package duskmode

import "regexp"

// Mode is the light/dark/system axis of a theme.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// DefaultScheme is the scheme id used when no registry is available at all.
const DefaultScheme = "default"

// schemePattern is the conservative allow-list for scheme ids arriving from
// untrusted sources (cookies, headers).
var schemePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ParseMode returns the Mode for s, reporting whether s was recognized.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLight, ModeDark, ModeSystem:
		return Mode(s), true
	}
	return "", false
}

// ValidMode reports whether m is one of light, dark, or system.
func ValidMode(m Mode) bool {
	_, ok := ParseMode(string(m))
	return ok
}

// SafeSchemeID reports whether id passes the untrusted-input character
// check. It says nothing about whether the scheme is actually registered.
func SafeSchemeID(id string) bool {
	return schemePattern.MatchString(id)
}

// CycleMode rotates light -> dark -> system -> light. Unrecognized values
// restart the cycle at light.
func CycleMode(m Mode) Mode {
	switch m {
	case ModeLight:
		return ModeDark
	case ModeDark:
		return ModeSystem
	default:
		return ModeLight
	}
}

// State is a user's full theme preference: a mode plus a named color scheme.
// A State is always fully populated; use Normalize to fill gaps.
type State struct {
	Mode   Mode   `json:"theme" yaml:"theme"`
	Scheme string `json:"themeScheme" yaml:"themeScheme"`
}

// DefaultState returns the built-in fallback preference: follow the system,
// first known scheme (or the literal default when no schemes are known).
func DefaultState(knownSchemes []string) State {
	scheme := DefaultScheme
	if len(knownSchemes) > 0 {
		scheme = knownSchemes[0]
	}
	return State{Mode: ModeSystem, Scheme: scheme}
}

// Normalize replaces invalid or missing fields of s with the documented
// defaults: an unrecognized mode becomes system; a scheme that fails the
// safe-character check or is not in knownSchemes becomes the first known
// scheme. knownSchemes may be nil, in which case any safe scheme id is kept.
func Normalize(s State, knownSchemes []string) State {
	if !ValidMode(s.Mode) {
		s.Mode = ModeSystem
	}
	if !SafeSchemeID(s.Scheme) || !schemeKnown(s.Scheme, knownSchemes) {
		s.Scheme = DefaultState(knownSchemes).Scheme
	}
	return s
}

func schemeKnown(id string, known []string) bool {
	if known == nil {
		return true
	}
	for _, k := range known {
		if k == id {
			return true
		}
	}
	return false
}
