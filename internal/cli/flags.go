package cli

import "libtest/internal/config"

// Flags holds command-line flags
type Flags struct {
	LibFile    string
	Verbose    bool
	Profile    string
	Dir        string
	NameFilter string
	Progress   bool
	Strict     bool
	Summary    bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		LibFile:    f.LibFile,
		Verbose:    f.Verbose,
		Profile:    f.Profile,
		Dir:        f.Dir,
		NameFilter: f.NameFilter,
		Progress:   f.Progress,
		Strict:     f.Strict,
		Summary:    f.Summary,
	}
}
