package render

import (
	"strings"

	"github.com/duskmode/duskmode"
)

// CSS class vocabulary emitted by Apply and ClassString.
const (
	ClassLight       = "theme-light"
	ClassDark        = "theme-dark"
	ClassSystem      = "theme-system"
	ClassSystemLight = "theme-system-light"
	ClassSystemDark  = "theme-system-dark"

	// SchemePrefix prefixes the active scheme's class, e.g. scheme-nord.
	SchemePrefix = "scheme-"

	// DataThemeAttr carries the concrete visual value, always light or
	// dark, never system.
	DataThemeAttr = "data-theme"
)

var modeClasses = []string{ClassLight, ClassDark, ClassSystem, ClassSystemLight, ClassSystemDark}

// desiredClasses returns the classes res calls for, in emission order:
// mode class, scheme class, then the system sub-state class when the mode
// is system.
func desiredClasses(res duskmode.Resolved) []string {
	out := make([]string, 0, 3)
	switch res.State.Mode {
	case duskmode.ModeDark:
		out = append(out, ClassDark)
	case duskmode.ModeLight:
		out = append(out, ClassLight)
	default:
		out = append(out, ClassSystem)
	}
	if res.State.Scheme != "" {
		out = append(out, SchemePrefix+res.State.Scheme)
	}
	if out[0] == ClassSystem {
		if res.Visual == duskmode.ModeDark {
			out = append(out, ClassSystemDark)
		} else {
			out = append(out, ClassSystemLight)
		}
	}
	return out
}

// ClassString returns the full class string for res, e.g.
// "theme-system scheme-default theme-system-dark".
func ClassString(res duskmode.Resolved) string {
	return strings.Join(desiredClasses(res), " ")
}

// Apply synchronizes root with res. Stale mode classes and every prior
// scheme-prefixed class (enumerated from the live class list, not a closed
// set) are removed before any new class is added, so no observer sees the
// old and new mode class together. Applying the same res twice changes
// nothing the second time.
func Apply(root Root, res duskmode.Resolved) {
	desired := desiredClasses(res)
	keep := make(map[string]bool, len(desired))
	for _, c := range desired {
		keep[c] = true
	}

	// Removal first.
	for _, c := range root.Classes() {
		if keep[c] {
			continue
		}
		if strings.HasPrefix(c, SchemePrefix) || isModeClass(c) {
			root.RemoveClass(c)
		}
	}

	for _, c := range desired {
		root.AddClass(c)
	}

	visual := string(res.Visual)
	if root.Attr(DataThemeAttr) != visual {
		root.SetAttr(DataThemeAttr, visual)
	}
}

func isModeClass(c string) bool {
	for _, m := range modeClasses {
		if c == m {
			return true
		}
	}
	return false
}
