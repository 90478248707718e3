// Package config loads duskmode.yml and turns it into the registry and
// policy table the engine consumes. Configuration problems are warnings,
// never fatal: a theming misconfiguration must not take down a page
// render.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/duskmode/duskmode"
	"github.com/duskmode/duskmode/schemes"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DUSKMODE_*). A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DUSKMODE_TRANSITION_MS etc.
	if err := k.Load(env.Provider("DUSKMODE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DUSKMODE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Registry builds the scheme registry from inline scheme entries plus any
// presets found under PresetsDir. The inline entries register first, so
// they keep default-scheme priority.
func (c *Config) Registry(log *zap.Logger) *schemes.Registry {
	if log == nil {
		log = zap.NewNop()
	}
	configs := append([]schemes.Config(nil), c.Schemes...)
	if c.PresetsDir != "" {
		presets, err := schemes.LoadDir(c.PresetsDir, c.PresetsInclude, log)
		if err != nil {
			log.Warn("failed to load scheme presets", zap.String("dir", c.PresetsDir), zap.Error(err))
		}
		configs = append(configs, presets...)
	}
	return schemes.NewRegistry(configs, log)
}

// Warnings checks the configuration for problems worth surfacing at
// startup: route rules without a usable theme, a default scheme that is
// not registered, unknown modes. The config remains usable regardless;
// resolution falls back field by field.
func (c *Config) Warnings() []string {
	var warns []string

	known := make(map[string]bool, len(c.Schemes))
	for _, s := range c.Schemes {
		known[s.ID] = true
	}

	if c.Default.Theme != "" {
		if _, ok := duskmode.ParseMode(c.Default.Theme); !ok {
			warns = append(warns, fmt.Sprintf("default theme %q is not light, dark, or system", c.Default.Theme))
		}
	}
	if c.Default.ThemeScheme != "" && !known[c.Default.ThemeScheme] && c.PresetsDir == "" {
		warns = append(warns, fmt.Sprintf("default scheme %q is not registered", c.Default.ThemeScheme))
	}

	for _, r := range c.Routes {
		if r.Pattern == "" {
			warns = append(warns, "route rule with empty pattern")
			continue
		}
		if r.Theme == (ThemeRef{}) {
			warns = append(warns, fmt.Sprintf("route rule %q has no theme", r.Pattern))
		}
		if r.Theme.Theme != "" {
			if _, ok := duskmode.ParseMode(r.Theme.Theme); !ok {
				warns = append(warns, fmt.Sprintf("route rule %q has unknown mode %q", r.Pattern, r.Theme.Theme))
			}
		}
	}
	return warns
}

// LogWarnings emits Warnings through log at warn level.
func (c *Config) LogWarnings(log *zap.Logger) {
	if log == nil {
		return
	}
	for _, w := range c.Warnings() {
		log.Warn("config: " + w)
	}
}
