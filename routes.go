package duskmode

import (
	"regexp"
	"strings"
)

// Policy is one route rule: a path pattern and the theme it asks for.
// Override rules replace the user's entire preference for matching paths;
// non-override ("suggestion") rules force only the scheme and leave the
// user's light/dark/system choice alone.
type Policy struct {
	Pattern     string `yaml:"pattern"`
	Theme       State  `yaml:"theme"`
	Override    bool   `yaml:"override"`
	Description string `yaml:"description,omitempty"`
}

// PolicyTable is an ordered list of route rules. Order matters only as the
// final tie-break between equally specific wildcard patterns.
type PolicyTable []Policy

// ResolvePolicy finds the rule governing pathname, or nil if none matches.
// Exact patterns always win over wildcards. Among matching wildcard
// patterns the one with the longest literal prefix (text before the first
// '*') wins; remaining ties go to the earliest declared rule.
func (t PolicyTable) ResolvePolicy(pathname string) *Policy {
	for i := range t {
		if !strings.Contains(t[i].Pattern, "*") && t[i].Pattern == pathname {
			return &t[i]
		}
	}

	var best *Policy
	bestPrefix := -1
	for i := range t {
		if !strings.Contains(t[i].Pattern, "*") {
			continue
		}
		if !wildcardMatch(t[i].Pattern, pathname) {
			continue
		}
		prefix := strings.Index(t[i].Pattern, "*")
		if prefix > bestPrefix {
			best = &t[i]
			bestPrefix = prefix
		}
	}
	return best
}

// Overrides reports whether the rule governing pathname, if any, is an
// override rule.
func (t PolicyTable) Overrides(pathname string) bool {
	if p := t.ResolvePolicy(pathname); p != nil {
		return p.Override
	}
	return false
}

// wildcardMatch converts pattern to an anchored regular expression where
// '*' matches any run of characters, including '/' and the empty string.
// All other metacharacters are escaped first so configuration data can
// never inject pattern syntax.
func wildcardMatch(pattern, pathname string) bool {
	quoted := regexp.QuoteMeta(pattern)
	expr := "^" + strings.ReplaceAll(quoted, `\*`, ".*") + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return re.MatchString(pathname)
}

// RouteResolved is a Resolved plus the preference state that was actually
// applied after route policy, which may differ from the user's own state.
type RouteResolved struct {
	Resolved
	// Applied is the state resolution ran with: the user's state, the
	// route's state (override), or the user's mode with the route's
	// scheme (suggestion).
	Applied State
}

// ResolveForRoute applies the rule governing pathname, if any, to the
// user's preference and then collapses the result against the detector.
//
// An override rule replaces both mode and scheme. A suggestion rule forces
// only the scheme: route-level branding should not fight a user's
// light/dark choice. Malformed rules are tolerated field by field: an
// empty route scheme forces nothing.
func ResolveForRoute(pathname string, user State, table PolicyTable, det Detector) RouteResolved {
	applied := user
	if p := table.ResolvePolicy(pathname); p != nil {
		if p.Override {
			applied = p.Theme
		} else if p.Theme.Scheme != "" {
			applied.Scheme = p.Theme.Scheme
		}
	}
	return RouteResolved{Resolved: Resolve(applied, det), Applied: applied}
}
