package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/duskmode/duskmode"
)

// Placeholder is the literal token a server HTML template may embed where
// the computed mode+scheme class string should go.
const Placeholder = "%duskmode.classes%"

var (
	rootTagRe   = regexp.MustCompile(`(?i)<html\b[^>]*>`)
	classAttrRe = regexp.MustCompile(`(?i)(class\s*=\s*")([^"]*)(")`)
	themeAttrRe = regexp.MustCompile(`(?i)(data-theme\s*=\s*")([^"]*)(")`)
)

// escape covers the five standard HTML special characters. Preference
// values can originate from attacker-controllable cookies and headers, so
// everything interpolated into markup goes through here.
func escape(s string) string { return html.EscapeString(s) }

// InjectHTML rewrites a server-rendered document so it carries the same
// classes and data-theme attribute Apply would produce on a live root.
//
// Only the first occurrence of Placeholder is substituted; a template that
// legitimately embeds the token twice will keep the second occurrence
// verbatim. This is a known limitation, kept deliberately. When the token
// is absent the class string is merged into the root <html> tag's class
// attribute instead (creating it if needed), clearing stale theme and
// scheme classes and leaving every other attribute untouched. The
// data-theme attribute is set on the root tag in either case.
func InjectHTML(doc string, res duskmode.Resolved) string {
	classes := escape(ClassString(res))
	visual := escape(string(res.Visual))

	substituted := strings.Contains(doc, Placeholder)
	if substituted {
		doc = strings.Replace(doc, Placeholder, classes, 1)
	}

	first := true
	return rootTagRe.ReplaceAllStringFunc(doc, func(tag string) string {
		if !first {
			return tag
		}
		first = false
		if !substituted {
			tag = mergeClassAttr(tag, res)
		}
		return setTagAttr(tag, themeAttrRe, DataThemeAttr, visual)
	})
}

// mergeClassAttr rewrites the class attribute of a single tag through the
// same Apply logic the client uses, so server and hydrated output agree.
// The attribute text already in the document is entity text and passes
// through untouched; only the values we interpolate get escaped, here the
// scheme (the mode classes are fixed vocabulary).
func mergeClassAttr(tag string, res duskmode.Resolved) string {
	if m := classAttrRe.FindStringSubmatchIndex(tag); m != nil {
		existing := tag[m[4]:m[5]]
		esc := res
		esc.State.Scheme = escape(res.State.Scheme)
		n := ParseNode(existing)
		Apply(n, esc)
		return tag[:m[4]] + n.ClassAttr() + tag[m[5]:]
	}
	classes := escape(ClassString(res))
	end := strings.LastIndex(tag, ">")
	return tag[:end] + ` class="` + classes + `"` + tag[end:]
}

// setTagAttr replaces the value of an existing attribute matched by re, or
// appends the attribute before the tag's closing bracket.
func setTagAttr(tag string, re *regexp.Regexp, name, value string) string {
	if m := re.FindStringSubmatchIndex(tag); m != nil {
		return tag[:m[4]] + value + tag[m[5]:]
	}
	end := strings.LastIndex(tag, ">")
	return tag[:end] + ` ` + name + `="` + value + `"` + tag[end:]
}
