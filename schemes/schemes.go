// Package schemes holds the registry of named color schemes an application
// offers. The registry is built once from configuration at startup,
// validated with non-fatal warnings, and read-only afterwards.
package schemes

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/duskmode/duskmode"
)

// hexColor matches a 6-digit hex color with leading '#'.
var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Fallback preview colors used when a configured value is missing or not
// valid 6-digit hex.
const (
	fallbackPreviewLight = "#ffffff"
	fallbackPreviewDark  = "#1a1a2a"
)

// Config describes one scheme. Preview colors are 6-digit hex and are used
// by pickers to show a swatch per mode.
type Config struct {
	ID           string `yaml:"id" koanf:"id"`
	DisplayName  string `yaml:"display_name" koanf:"display_name"`
	Description  string `yaml:"description,omitempty" koanf:"description"`
	PreviewLight string `yaml:"preview_light" koanf:"preview_light"`
	PreviewDark  string `yaml:"preview_dark" koanf:"preview_dark"`
	Icon         string `yaml:"icon,omitempty" koanf:"icon"`
	Title        string `yaml:"title,omitempty" koanf:"title"`
	Stylesheet   string `yaml:"stylesheet,omitempty" koanf:"stylesheet"`
}

// Registry is an ordered, immutable set of scheme configs. The first
// registered scheme is the application default.
type Registry struct {
	order   []string
	configs map[string]Config
}

// NewRegistry validates and registers the given schemes in order. Invalid
// entries are repaired, not rejected: a missing display name falls back to
// the id, bad preview colors fall back to library defaults, and entries
// with an unusable id are skipped. Problems are logged as warnings; a
// theming misconfiguration must never take down a page render.
func NewRegistry(configs []Config, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{configs: make(map[string]Config)}
	for _, c := range configs {
		if !duskmode.SafeSchemeID(c.ID) {
			log.Warn("skipping scheme with unusable id", zap.String("id", c.ID))
			continue
		}
		if _, dup := r.configs[c.ID]; dup {
			log.Warn("duplicate scheme id, keeping first", zap.String("id", c.ID))
			continue
		}
		if c.DisplayName == "" {
			log.Warn("scheme missing display name, using id", zap.String("id", c.ID))
			c.DisplayName = c.ID
		}
		if !hexColor.MatchString(c.PreviewLight) {
			if c.PreviewLight != "" {
				log.Warn("scheme has invalid light preview color",
					zap.String("id", c.ID), zap.String("color", c.PreviewLight))
			}
			c.PreviewLight = fallbackPreviewLight
		}
		if !hexColor.MatchString(c.PreviewDark) {
			if c.PreviewDark != "" {
				log.Warn("scheme has invalid dark preview color",
					zap.String("id", c.ID), zap.String("color", c.PreviewDark))
			}
			c.PreviewDark = fallbackPreviewDark
		}
		r.order = append(r.order, c.ID)
		r.configs[c.ID] = c
	}
	return r
}

// IDs returns the scheme ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the config for id, reporting whether it is registered.
func (r *Registry) Get(id string) (Config, bool) {
	c, ok := r.configs[id]
	return c, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.configs[id]
	return ok
}

// Default returns the id of the first registered scheme, or
// duskmode.DefaultScheme when the registry is empty.
func (r *Registry) Default() string {
	if len(r.order) > 0 {
		return r.order[0]
	}
	return duskmode.DefaultScheme
}

// Len returns the number of registered schemes.
func (r *Registry) Len() int { return len(r.order) }
