package httptheme

import (
	"errors"
	"net/http"

	"github.com/duskmode/duskmode"
)

// Cookie names for the client-readable preference pair.
const (
	CookieTheme  = "theme"
	CookieScheme = "themeScheme"

	// ClientIDCookie identifies a visitor for the server-side preference
	// channel.
	ClientIDCookie = "duskmode_client"
)

// cookieMaxAge is one year.
const cookieMaxAge = 365 * 24 * 60 * 60

var errNoResponseWriter = errors.New("cookie channel has no response writer")

// CookieChannel is a store.Channel bound to one request/response cycle.
// Reads come from the request's cookies; writes set cookies on the
// response. The cookies are deliberately not HttpOnly (the blocking script
// must read them) and not Secure (development runs over plain HTTP).
type CookieChannel struct {
	r *http.Request
	w http.ResponseWriter
}

// NewCookieChannel binds a channel to w and r. w may be nil for read-only
// use; Save then fails and the surrounding Store logs and moves on.
func NewCookieChannel(w http.ResponseWriter, r *http.Request) *CookieChannel {
	return &CookieChannel{r: r, w: w}
}

// Load reads the cookie pair. Either cookie alone is enough for a record;
// normalization upstream fills whatever is missing.
func (c *CookieChannel) Load() (duskmode.State, bool) {
	var st duskmode.State
	found := false
	if ck, err := c.r.Cookie(CookieTheme); err == nil {
		st.Mode = duskmode.Mode(ck.Value)
		found = true
	}
	if ck, err := c.r.Cookie(CookieScheme); err == nil {
		st.Scheme = ck.Value
		found = true
	}
	return st, found
}

func (c *CookieChannel) Save(state duskmode.State) error {
	if c.w == nil {
		return errNoResponseWriter
	}
	setCookie(c.w, CookieTheme, string(state.Mode), cookieMaxAge)
	setCookie(c.w, CookieScheme, state.Scheme, cookieMaxAge)
	return nil
}

// Clear expires both cookies. The Store never calls this for its secondary
// channel, but explicit sign-out flows can.
func (c *CookieChannel) Clear() error {
	if c.w == nil {
		return errNoResponseWriter
	}
	setCookie(c.w, CookieTheme, "", -1)
	setCookie(c.w, CookieScheme, "", -1)
	return nil
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: false,
	})
}
