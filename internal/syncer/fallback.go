package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FallbackStore persists the last-used document identifier under a single
// key. It is consulted only when no identifier is present in the address.
type FallbackStore interface {
	Load() string
	Save(id string) error
}

// FileFallback keeps the identifier in one file on disk.
type FileFallback struct {
	path string
}

// NewFileFallback creates a fallback store writing to path.
func NewFileFallback(path string) *FileFallback {
	return &FileFallback{path: path}
}

// Load returns the persisted identifier, or "" when absent or unreadable.
func (f *FileFallback) Load() string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	return cleanID(strings.TrimSpace(string(data)))
}

// Save persists the identifier.
func (f *FileFallback) Save(id string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create fallback directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(id+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to persist document identifier: %w", err)
	}
	return nil
}
