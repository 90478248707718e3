package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/duskmode/duskmode"
	"github.com/duskmode/duskmode/schemes"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to duskmode! Let's configure theming for your application.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Default mode.
	modePrompt := promptui.Select{
		Label: "Default theme mode",
		Items: []string{"system", "light", "dark"},
	}
	_, mode, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}
	cfg.Default.Theme = mode

	// 2. Scheme ids.
	schemePrompt := promptui.Prompt{
		Label:   "Scheme ids (comma-separated, first is the default)",
		Default: "default",
		Validate: func(s string) error {
			for _, id := range splitList(s) {
				if !duskmode.SafeSchemeID(id) {
					return fmt.Errorf("scheme id %q may only contain letters, digits, - and _", id)
				}
			}
			return nil
		},
	}
	schemeList, err := schemePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("scheme entry: %w", err)
	}
	cfg.Schemes = nil
	for _, id := range splitList(schemeList) {
		cfg.Schemes = append(cfg.Schemes, schemes.Config{ID: id, DisplayName: titleCase(id)})
	}

	// 3. Server-side persistence.
	dbPrompt := promptui.Select{
		Label: "Persist preferences server-side (SQLite) in addition to cookies",
		Items: []string{"no", "yes"},
	}
	_, dbChoice, err := dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("storage selection: %w", err)
	}
	cfg.Storage.Database = dbChoice == "yes"

	// 4. Demo server port.
	portPrompt := promptui.Prompt{
		Label:   "Demo server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port entry: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration written to %s\n", path)
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
