// Package cli implements the duskmode command line: a demo/dev server and
// a config scaffolding wizard around the theming library.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "duskmode",
	Short: "Light/dark/system theming for web applications",
	Long: `Duskmode resolves a visitor's light/dark/system preference together
with per-route policy and OS-level signals, persists it across sessions,
and keeps server-rendered HTML and the browser DOM in agreement so the
right theme shows from the first paint.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "duskmode.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the process logger, honoring --verbose.
func newLogger() (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zapConfig.Build()
}
