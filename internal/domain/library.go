package domain

import (
	"path/filepath"
	"strings"
)

const (
	// SourceExt is the extension of a library's source and test driver files
	SourceExt = ".c"
	// HeaderExt is the extension of a library's header file
	HeaderExt = ".h"
	// ArtifactExt is the extension of the executable produced by the compile step
	ArtifactExt = ".bin"
	// TesterSuffix is appended to the base name to form the test driver name
	TesterSuffix = "_test"
)

// Library identifies one unit under test: a source, header and test driver
// sharing a base name inside a target directory.
type Library struct {
	name string
	dir  string
}

// NewLibrary creates a Library for the given base name and target directory
func NewLibrary(name, dir string) Library {
	if dir == "" {
		dir = "."
	}
	return Library{name: name, dir: dir}
}

// Name returns the library base name
func (l Library) Name() string { return l.name }

// Dir returns the target directory
func (l Library) Dir() string { return l.dir }

// Source returns the source filename, e.g. hashmap.c
func (l Library) Source() string { return l.name + SourceExt }

// Header returns the header filename, e.g. hashmap.h
func (l Library) Header() string { return l.name + HeaderExt }

// Tester returns the test driver filename, e.g. hashmap_test.c
func (l Library) Tester() string { return l.name + TesterSuffix + SourceExt }

// Artifact returns the executable filename, e.g. hashmap.bin
func (l Library) Artifact() string { return l.name + ArtifactExt }

// Files returns the three filenames that must be present before compiling
func (l Library) Files() []string {
	return []string{l.Source(), l.Header(), l.Tester()}
}

// Path joins a filename with the target directory.
// The result always contains a separator so it can be executed directly
// without a PATH lookup.
func (l Library) Path(file string) string {
	p := filepath.Join(l.dir, file)
	if filepath.IsAbs(p) || strings.ContainsRune(p, filepath.Separator) {
		return p
	}
	return "." + string(filepath.Separator) + p
}
