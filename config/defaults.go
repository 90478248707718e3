package config

import "github.com/duskmode/duskmode/schemes"

// DefaultConfig returns the built-in configuration: one default scheme,
// system-following mode, storage under .duskmode.
func DefaultConfig() *Config {
	return &Config{
		Default: ThemeRef{Theme: "system"},
		Schemes: []schemes.Config{
			{
				ID:           "default",
				DisplayName:  "Default",
				PreviewLight: "#ffffff",
				PreviewDark:  "#1a1a2a",
			},
		},
		Storage:      StorageConfig{DataDir: ".duskmode"},
		Server:       ServerConfig{Port: 8976},
		TransitionMS: 100,
	}
}
