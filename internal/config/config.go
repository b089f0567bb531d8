package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Input settings
	LibFile   string
	Profile   string
	TargetDir string

	// Output settings
	OutputPath string

	// External tools
	Toolchain Toolchain

	// Command flags
	Flags Flags
}

// Profile is a named preset of target directory and debug logging
type Profile struct {
	Name      string
	TargetDir string
	DebugLogs bool
}

// Toolchain describes the compiler and memory checker invocations.
// Use Clone to get a copy that shares no slices with the original.
type Toolchain struct {
	Compiler            string
	CompilerVersionArgs []string
	CFlags              []string
	DebugLogs           bool

	Checker            string
	CheckerVersionArgs []string
	CheckerFlags       []string
}

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

// New creates a new Config with defaults
func New() *Config {
	profile := Profiles[DefaultProfile]
	return &Config{
		LibFile:    DefaultLibFile,
		Profile:    profile.Name,
		TargetDir:  profile.TargetDir,
		OutputPath: defaultOutputPath(),
		Toolchain:  DefaultToolchain(),
	}
}

// Clone returns a deep copy of the toolchain
func (t Toolchain) Clone() Toolchain {
	c := t
	c.CompilerVersionArgs = append([]string(nil), t.CompilerVersionArgs...)
	c.CFlags = append([]string(nil), t.CFlags...)
	c.CheckerVersionArgs = append([]string(nil), t.CheckerVersionArgs...)
	c.CheckerFlags = append([]string(nil), t.CheckerFlags...)
	return c
}

// DefaultToolchain returns gcc and valgrind with the strict flag set
func DefaultToolchain() Toolchain {
	tc := Toolchain{
		Compiler:            DefaultCompiler,
		CompilerVersionArgs: []string{"-v"},
		Checker:             DefaultChecker,
		CheckerVersionArgs:  []string{"--version"},
	}
	tc.CFlags = append([]string(nil), DefaultCFlags...)
	tc.CheckerFlags = append([]string(nil), DefaultCheckerFlags...)
	return tc
}

// LoadEnv reads an optional dotenv file and applies toolchain overrides from the environment
func (c *Config) LoadEnv(envFile string) {
	if envFile != "" {
		// .env file might not exist, that's okay - use environment variables
		_ = godotenv.Load(envFile)
	}

	if cc := os.Getenv(EnvCompiler); cc != "" {
		c.Toolchain.Compiler = cc
	}
	if vg := os.Getenv(EnvChecker); vg != "" {
		c.Toolchain.Checker = vg
	}
	if out := os.Getenv(EnvResults); out != "" {
		c.OutputPath = out
	}
}

// ApplyFlags updates the config from parsed command-line flags
func (c *Config) ApplyFlags(flags Flags) error {
	c.Flags = flags

	name := flags.Profile
	if name == "" {
		name = DefaultProfile
	}
	profile, ok := Profiles[name]
	if !ok {
		return fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(ProfileNames(), ", "))
	}
	c.Profile = profile.Name
	c.TargetDir = profile.TargetDir
	c.Toolchain.DebugLogs = profile.DebugLogs

	if flags.Dir != "" {
		c.TargetDir = flags.Dir
	}
	if flags.LibFile != "" {
		c.LibFile = flags.LibFile
	}
	return nil
}

// GetOutputPath returns the absolute path of the run report.
// An empty OutputPath disables persistence.
func (c *Config) GetOutputPath() string {
	if c.OutputPath == "" {
		return ""
	}
	if abs, err := filepath.Abs(c.OutputPath); err == nil {
		return abs
	}
	return c.OutputPath
}

// ProfileNames returns the available profile names, sorted
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func defaultOutputPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, DefaultOutputJSONDir, DefaultOutputJSONFile)
}
