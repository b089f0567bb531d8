package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"libtest/internal/domain"
)

// PresenceChecker confirms a library's file triple exists in its target directory
type PresenceChecker struct{}

// NewPresenceChecker creates a new PresenceChecker
func NewPresenceChecker() *PresenceChecker {
	return &PresenceChecker{}
}

// Missing returns the library files that are not regular files in the target
// directory. The directory is listed once per call.
func (p *PresenceChecker) Missing(lib domain.Library) ([]string, error) {
	entries, err := os.ReadDir(lib.Dir())
	if err != nil {
		return lib.Files(), fmt.Errorf("error listing %s: %w", lib.Dir(), err)
	}

	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if isRegular(lib.Dir(), entry) {
			present[entry.Name()] = true
		}
	}

	var missing []string
	for _, file := range lib.Files() {
		if !present[file] {
			missing = append(missing, file)
		}
	}
	return missing, nil
}

// isRegular follows symlinks so a linked source file counts as present
func isRegular(dir string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}
