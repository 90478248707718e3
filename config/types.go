package config

import (
	"github.com/duskmode/duskmode"
	"github.com/duskmode/duskmode/schemes"
)

// Config is the top-level theming configuration, corresponding to
// duskmode.yml.
type Config struct {
	// Default is the preference used before a visitor has chosen
	// anything. An empty scheme means the first registered scheme.
	Default ThemeRef `yaml:"default" koanf:"default"`

	// Schemes registers the color schemes offered to users, in order;
	// the first one is the application default.
	Schemes []schemes.Config `yaml:"schemes" koanf:"schemes"`

	// PresetsDir optionally points at a directory of preset stylesheets
	// whose metadata blocks register additional schemes.
	PresetsDir     string   `yaml:"presets_dir" koanf:"presets_dir"`
	PresetsInclude []string `yaml:"presets_include" koanf:"presets_include"`

	// Routes is the per-route theme policy table, in declaration order.
	Routes []RouteRule `yaml:"routes" koanf:"routes"`

	Storage StorageConfig `yaml:"storage" koanf:"storage"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`

	// TransitionMS is the transition-suppression window in milliseconds.
	TransitionMS int `yaml:"transition_ms" koanf:"transition_ms"`
}

// ThemeRef names a mode/scheme pair in configuration.
type ThemeRef struct {
	Theme       string `yaml:"theme" koanf:"theme"`
	ThemeScheme string `yaml:"themeScheme" koanf:"themeScheme"`
}

// RouteRule is the configuration form of one route policy entry.
type RouteRule struct {
	Pattern     string   `yaml:"pattern" koanf:"pattern"`
	Theme       ThemeRef `yaml:"theme" koanf:"theme"`
	Override    bool     `yaml:"override" koanf:"override"`
	Description string   `yaml:"description,omitempty" koanf:"description"`
}

// StorageConfig locates the server-side preference stores.
type StorageConfig struct {
	// DataDir holds the SQLite database and file-channel records.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`
	// Database toggles the SQLite server-side channel.
	Database bool `yaml:"database" koanf:"database"`
}

// ServerConfig configures the demo/dev server.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// State converts a ThemeRef to an engine state. No validation happens
// here; Normalize at the point of use.
func (t ThemeRef) State() duskmode.State {
	return duskmode.State{Mode: duskmode.Mode(t.Theme), Scheme: t.ThemeScheme}
}

// PolicyTable converts the configured route rules to the engine's table
// form, preserving declaration order.
func (c *Config) PolicyTable() duskmode.PolicyTable {
	table := make(duskmode.PolicyTable, 0, len(c.Routes))
	for _, r := range c.Routes {
		table = append(table, duskmode.Policy{
			Pattern:     r.Pattern,
			Theme:       r.Theme.State(),
			Override:    r.Override,
			Description: r.Description,
		})
	}
	return table
}
