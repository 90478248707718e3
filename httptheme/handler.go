package httptheme

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/duskmode/duskmode"
)

// themePayload is the JSON shape for both reads and writes.
type themePayload struct {
	Theme       string `json:"theme"`
	ThemeScheme string `json:"themeScheme"`
}

// GetHandler reports the persisted preference and its resolution for the
// current request as JSON.
func GetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rt, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "theme middleware not installed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"theme":       rt.User.Mode,
			"themeScheme": rt.User.Scheme,
			"resolved":    rt.Visual,
			"system":      rt.SystemDerived,
		})
	}
}

// SetHandler persists a preference change. It accepts form values or a
// JSON body with theme and themeScheme fields; invalid values are
// normalized, not rejected, mirroring the load path.
func SetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rt, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "theme middleware not installed", http.StatusInternalServerError)
			return
		}

		next := rt.User
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct == "application/json" {
			var p themePayload
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			applyPayload(&next, p)
		} else {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			applyPayload(&next, themePayload{
				Theme:       r.FormValue("theme"),
				ThemeScheme: r.FormValue("themeScheme"),
			})
		}

		rt.Store.Save(next)
		w.WriteHeader(http.StatusNoContent)
	}
}

// CycleHandler rotates the persisted mode light -> dark -> system and
// reports the new state as JSON.
func CycleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rt, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "theme middleware not installed", http.StatusInternalServerError)
			return
		}
		next := rt.User
		next.Mode = duskmode.CycleMode(next.Mode)
		rt.Store.Save(next)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(themePayload{
			Theme:       string(next.Mode),
			ThemeScheme: next.Scheme,
		})
	}
}

func applyPayload(st *duskmode.State, p themePayload) {
	if p.Theme != "" {
		st.Mode = duskmode.Mode(p.Theme)
	}
	if p.ThemeScheme != "" {
		st.Scheme = p.ThemeScheme
	}
}
