package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/duskmode/duskmode"
)

// FileChannel is the durable local channel: one small JSON record on disk,
// named after the versioned StorageKey.
type FileChannel struct {
	path string
}

// NewFileChannel stores the record inside dir.
func NewFileChannel(dir string) *FileChannel {
	return &FileChannel{path: filepath.Join(dir, StorageKey+".json")}
}

// Load reads the record. Absent or corrupt files read as not-ok, never as
// an error.
func (f *FileChannel) Load() (duskmode.State, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return duskmode.State{}, false
	}
	var st duskmode.State
	if err := json.Unmarshal(data, &st); err != nil {
		return duskmode.State{}, false
	}
	return st, true
}

func (f *FileChannel) Save(state duskmode.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding preference record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating preference directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing preference record: %w", err)
	}
	return nil
}

func (f *FileChannel) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing preference record: %w", err)
	}
	return nil
}
