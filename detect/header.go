package detect

import (
	"net/http"
	"strings"

	"github.com/duskmode/duskmode"
)

// HeaderPrefersColorScheme is the structured client-hint header carrying
// the browser's color-scheme preference.
const HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

// FromRequest derives the dark-mode signal from an incoming request. Two
// independent signals are combined with OR: the structured client-hint
// header when present, and a case-insensitive "dark" substring in the
// User-Agent as a heuristic for themed webviews. Absence of both reads as
// light.
func FromRequest(r *http.Request) duskmode.Detector {
	dark := headerSignalsDark(r)
	return duskmode.DetectorFunc(func() bool { return dark })
}

func headerSignalsDark(r *http.Request) bool {
	if strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderPrefersColorScheme)), "dark") {
		return true
	}
	return strings.Contains(strings.ToLower(r.Header.Get("User-Agent")), "dark")
}
