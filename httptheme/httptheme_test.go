package httptheme

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/duskmode/duskmode"
	"github.com/duskmode/duskmode/detect"
	"github.com/duskmode/duskmode/render"
	"github.com/duskmode/duskmode/schemes"
	"github.com/duskmode/duskmode/store"
)

func testRegistry() *schemes.Registry {
	return schemes.NewRegistry([]schemes.Config{
		{ID: "default", DisplayName: "Default"},
		{ID: "nord", DisplayName: "Nord"},
	}, nil)
}

func testRouter(opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(Middleware(opts))
	r.Get("/api/theme", GetHandler())
	r.Post("/api/theme", SetHandler())
	r.Post("/api/theme/cycle", CycleHandler())
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		doc := PrepareHTML(`<html><head></head><body></body></html>`, r, render.ScriptOptions{Nonce: "n"})
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(doc))
	})
	return r
}

func cookieByName(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestMiddlewareServerRender(t *testing.T) {
	// Cookies theme=system, themeScheme=default plus a dark header signal
	// must render the exact class string and data-theme the client would
	// compute.
	r := httptest.NewRequest("GET", "/page", nil)
	r.AddCookie(&http.Cookie{Name: CookieTheme, Value: "system"})
	r.AddCookie(&http.Cookie{Name: CookieScheme, Value: "default"})
	r.Header.Set(detect.HeaderPrefersColorScheme, "dark")

	w := httptest.NewRecorder()
	testRouter(Options{Registry: testRegistry()}).ServeHTTP(w, r)

	body := w.Body.String()
	if !strings.Contains(body, `class="theme-system scheme-default theme-system-dark"`) {
		t.Errorf("body classes wrong: %q", body)
	}
	if !strings.Contains(body, `data-theme="dark"`) {
		t.Errorf("data-theme wrong: %q", body)
	}
	if !strings.Contains(body, render.ScriptMarker) {
		t.Errorf("blocking script missing")
	}
}

func TestMiddlewareRejectsInjectedScheme(t *testing.T) {
	r := httptest.NewRequest("GET", "/page", nil)
	r.AddCookie(&http.Cookie{Name: CookieTheme, Value: "light"})
	r.AddCookie(&http.Cookie{Name: CookieScheme, Value: "x%2e%2e%2fetc"})

	w := httptest.NewRecorder()
	testRouter(Options{Registry: testRegistry()}).ServeHTTP(w, r)

	if !strings.Contains(w.Body.String(), "scheme-default") {
		t.Errorf("injected scheme not replaced by default: %q", w.Body.String())
	}
}

func TestMiddlewareRoutePolicy(t *testing.T) {
	opts := Options{
		Registry: testRegistry(),
		Routes: duskmode.PolicyTable{
			{Pattern: "/branded/*", Theme: duskmode.State{Mode: duskmode.ModeDark, Scheme: "nord"}},
		},
	}
	r := httptest.NewRequest("GET", "/branded/page", nil)
	r.AddCookie(&http.Cookie{Name: CookieTheme, Value: "light"})
	r.AddCookie(&http.Cookie{Name: CookieScheme, Value: "default"})

	w := httptest.NewRecorder()
	testRouter(opts).ServeHTTP(w, r)

	// Suggestion rule: scheme forced, user's light mode kept.
	body := w.Body.String()
	if !strings.Contains(body, "theme-light") || !strings.Contains(body, "scheme-nord") {
		t.Errorf("suggestion semantics wrong: %q", body)
	}
}

func TestSetHandlerWritesCookiePair(t *testing.T) {
	form := url.Values{"theme": {"dark"}, "themeScheme": {"nord"}}
	r := httptest.NewRequest("POST", "/api/theme", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	testRouter(Options{Registry: testRegistry()}).ServeHTTP(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	theme := cookieByName(t, resp, CookieTheme)
	scheme := cookieByName(t, resp, CookieScheme)
	if theme == nil || scheme == nil {
		t.Fatalf("cookie pair not set: %v", resp.Cookies())
	}
	if theme.Value != "dark" || scheme.Value != "nord" {
		t.Errorf("cookie values = %q/%q", theme.Value, scheme.Value)
	}
	if theme.Path != "/" || theme.MaxAge != cookieMaxAge {
		t.Errorf("cookie attributes wrong: path=%q maxage=%d", theme.Path, theme.MaxAge)
	}
	if theme.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", theme.SameSite)
	}
	if theme.HttpOnly || theme.Secure {
		t.Error("preference cookies must stay client-readable over plain HTTP")
	}
}

func TestSetHandlerJSONWithCharsetParam(t *testing.T) {
	// Clients commonly send a charset parameter; the body must still be
	// decoded as JSON rather than falling through to the form path.
	r := httptest.NewRequest("POST", "/api/theme", strings.NewReader(`{"theme":"dark","themeScheme":"nord"}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	w := httptest.NewRecorder()
	testRouter(Options{Registry: testRegistry()}).ServeHTTP(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if got := cookieByName(t, resp, CookieTheme).Value; got != "dark" {
		t.Errorf("theme cookie = %q, want dark", got)
	}
	if got := cookieByName(t, resp, CookieScheme).Value; got != "nord" {
		t.Errorf("scheme cookie = %q, want nord", got)
	}
}

func TestSetHandlerNormalizesBadValues(t *testing.T) {
	form := url.Values{"theme": {"sepia"}, "themeScheme": {"../etc"}}
	r := httptest.NewRequest("POST", "/api/theme", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	testRouter(Options{Registry: testRegistry()}).ServeHTTP(w, r)

	resp := w.Result()
	if got := cookieByName(t, resp, CookieTheme).Value; got != "system" {
		t.Errorf("theme cookie = %q, want system", got)
	}
	if got := cookieByName(t, resp, CookieScheme).Value; got != "default" {
		t.Errorf("scheme cookie = %q, want default", got)
	}
}

func TestCycleHandler(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/theme/cycle", nil)
	r.AddCookie(&http.Cookie{Name: CookieTheme, Value: "light"})
	r.AddCookie(&http.Cookie{Name: CookieScheme, Value: "default"})

	w := httptest.NewRecorder()
	testRouter(Options{Registry: testRegistry()}).ServeHTTP(w, r)

	if got := cookieByName(t, w.Result(), CookieTheme).Value; got != "dark" {
		t.Errorf("cycled theme = %q, want dark", got)
	}
	if !strings.Contains(w.Body.String(), `"theme":"dark"`) {
		t.Errorf("response body = %q", w.Body.String())
	}
}

func TestMiddlewareWithServerSideChannel(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer db.Close()
	opts := Options{Registry: testRegistry(), DB: db}
	router := testRouter(opts)

	// First request mints a client id and saves a preference.
	form := url.Values{"theme": {"dark"}, "themeScheme": {"nord"}}
	r := httptest.NewRequest("POST", "/api/theme", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	id := cookieByName(t, w.Result(), ClientIDCookie)
	if id == nil {
		t.Fatal("client id cookie not minted")
	}

	// Second request carries only the client id: the server-side record
	// alone must restore the preference.
	r = httptest.NewRequest("GET", "/page", nil)
	r.AddCookie(&http.Cookie{Name: ClientIDCookie, Value: id.Value})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	body := w.Body.String()
	if !strings.Contains(body, "theme-dark") || !strings.Contains(body, "scheme-nord") {
		t.Errorf("server-side record not restored: %q", body)
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, ok := FromContext(r.Context()); ok {
		t.Error("FromContext reported a theme on a bare request")
	}
	// PrepareHTML degrades to a pass-through.
	doc := "<html></html>"
	if got := PrepareHTML(doc, r, render.ScriptOptions{}); got != doc {
		t.Errorf("PrepareHTML mutated document without middleware: %q", got)
	}
}
