package schemes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Preset metadata is declared in a leading CSS comment block:
//
//	/*
//	Scheme: nord
//	Display: Nord
//	Preview-Light: #eceff4
//	Preview-Dark: #2e3440
//	Description: Arctic, north-bluish palette.
//	*/
//
// Everything after the block is the scheme's stylesheet body.

// LoadDir scans dir for preset stylesheet files matching the given glob
// patterns (doublestar syntax; defaults to **/*.css when empty) and parses
// each into a scheme Config. Files without a usable metadata block are
// skipped with a warning. Results are ordered by file path so registry
// order is stable across runs.
func LoadDir(dir string, patterns []string, log *zap.Logger) ([]Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(patterns) == 0 {
		patterns = []string{"**/*.css"}
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if matchesAny(rel, patterns) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning preset directory %s: %w", dir, err)
	}
	sort.Strings(paths)

	var configs []Config
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("failed to read preset file", zap.String("path", path), zap.Error(err))
			continue
		}
		cfg, ok := ParsePreset(string(data))
		if !ok {
			log.Warn("preset file has no scheme metadata", zap.String("path", path))
			continue
		}
		cfg.Stylesheet = filepath.ToSlash(filepath.Base(path))
		configs = append(configs, cfg)
	}
	return configs, nil
}

// matchesAny reports whether rel matches any pattern, trying the full
// relative path first and the bare filename second.
func matchesAny(rel string, patterns []string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && matched {
			return true
		}
	}
	return false
}

// ParsePreset extracts scheme metadata from the first comment block of a
// preset stylesheet. It reports false when the block is absent or names no
// scheme id.
func ParsePreset(css string) (Config, bool) {
	start := strings.Index(css, "/*")
	if start == -1 {
		return Config{}, false
	}
	end := strings.Index(css[start:], "*/")
	if end == -1 {
		return Config{}, false
	}

	var cfg Config
	for _, line := range strings.Split(css[start+2:start+end], "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Scheme:"):
			cfg.ID = strings.TrimSpace(strings.TrimPrefix(line, "Scheme:"))
		case strings.HasPrefix(line, "Display:"):
			cfg.DisplayName = strings.TrimSpace(strings.TrimPrefix(line, "Display:"))
		case strings.HasPrefix(line, "Description:"):
			cfg.Description = strings.TrimSpace(strings.TrimPrefix(line, "Description:"))
		case strings.HasPrefix(line, "Preview-Light:"):
			cfg.PreviewLight = strings.TrimSpace(strings.TrimPrefix(line, "Preview-Light:"))
		case strings.HasPrefix(line, "Preview-Dark:"):
			cfg.PreviewDark = strings.TrimSpace(strings.TrimPrefix(line, "Preview-Dark:"))
		case strings.HasPrefix(line, "Icon:"):
			cfg.Icon = strings.TrimSpace(strings.TrimPrefix(line, "Icon:"))
		case strings.HasPrefix(line, "Title:"):
			cfg.Title = strings.TrimSpace(strings.TrimPrefix(line, "Title:"))
		}
	}
	if cfg.ID == "" {
		return Config{}, false
	}
	return cfg, true
}
