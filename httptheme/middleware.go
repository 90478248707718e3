// Package httptheme integrates the resolution engine with net/http: a
// middleware that resolves the effective theme for every request, a
// cookie-backed preference channel, and handlers for changing the
// preference.
package httptheme

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duskmode/duskmode"
	"github.com/duskmode/duskmode/detect"
	"github.com/duskmode/duskmode/render"
	"github.com/duskmode/duskmode/schemes"
	"github.com/duskmode/duskmode/store"
)

type ctxKey struct{}

// RequestTheme is what the middleware attaches to each request's context.
type RequestTheme struct {
	duskmode.RouteResolved
	// User is the preference as persisted, before route policy.
	User duskmode.State
	// Store persists preference changes through the same channels the
	// resolution was read from.
	Store *store.Store
}

// Options configures the middleware.
type Options struct {
	// Registry validates scheme ids; nil accepts any safe id.
	Registry *schemes.Registry
	// Routes is the per-route policy table; may be empty.
	Routes duskmode.PolicyTable
	// DB, when set, adds a server-side primary channel keyed by a
	// client-id cookie; cookies then act as the secondary channel.
	DB *store.DB
	// Logger receives storage warnings. Defaults to a nop logger.
	Logger *zap.Logger
}

// Middleware resolves the theme for every request and stores the result in
// the request context. It never fails a request: the worst outcome of any
// storage or data problem is the light, default-scheme fallback.
func Middleware(opts Options) func(http.Handler) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := storeFor(opts, w, r)
			user := st.Load()
			res := duskmode.ResolveForRoute(r.URL.Path, user, opts.Routes, detect.FromRequest(r))

			ctx := context.WithValue(r.Context(), ctxKey{}, RequestTheme{
				RouteResolved: res,
				User:          user,
				Store:         st,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// storeFor assembles the per-request preference store: the server-side
// record (when a DB is configured) backed by the request's cookie pair.
func storeFor(opts Options, w http.ResponseWriter, r *http.Request) *store.Store {
	cookies := NewCookieChannel(w, r)
	if opts.DB == nil {
		return store.New(cookies, nil, opts.Registry, opts.Logger)
	}
	return store.New(opts.DB.Channel(clientID(w, r)), cookies, opts.Registry, opts.Logger)
}

// clientID returns the visitor's id cookie, minting one on first contact.
func clientID(w http.ResponseWriter, r *http.Request) string {
	if ck, err := r.Cookie(ClientIDCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	id := uuid.NewString()
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     ClientIDCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   cookieMaxAge,
			SameSite: http.SameSiteLaxMode,
			HttpOnly: true,
		})
	}
	return id
}

// FromContext returns the theme the middleware resolved for this request.
func FromContext(ctx context.Context) (RequestTheme, bool) {
	rt, ok := ctx.Value(ctxKey{}).(RequestTheme)
	return rt, ok
}

// PrepareHTML runs a rendered document through the synchronizer for the
// request's resolved theme and injects the anti-flash script. Handlers
// call this just before writing the response body.
func PrepareHTML(doc string, r *http.Request, script render.ScriptOptions) string {
	rt, ok := FromContext(r.Context())
	if !ok {
		return doc
	}
	doc = render.InjectHTML(doc, rt.Resolved)
	return render.InjectScript(doc, script)
}
