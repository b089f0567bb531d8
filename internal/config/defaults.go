package config

const (
	// DefaultLibFile is the default library list file
	DefaultLibFile = "libs.txt"
	// DefaultProfile is the profile used when --profile is not given
	DefaultProfile = ProfileLib
	// DefaultEnvFile is the optional dotenv file read at startup
	DefaultEnvFile = ".env"
	// DefaultOutputJSONFile is the default report file name
	DefaultOutputJSONFile = "results.json"
	// DefaultOutputJSONDir is the directory under the user cache dir holding the report
	DefaultOutputJSONDir = "libtest"

	// DefaultCompiler is the compiler executable
	DefaultCompiler = "gcc"
	// DefaultChecker is the memory checking executable
	DefaultChecker = "valgrind"
	// DebugLogsDefine enables the libraries' internal debug logging
	DebugLogsDefine = "-D__USE_DEBUG_LOGS__"
)

const (
	ProfileLib = "lib"
	ProfileSrc = "src"
)

// Environment variables that override the toolchain
const (
	EnvCompiler = "LIBTEST_CC"
	EnvChecker  = "LIBTEST_VALGRIND"
	EnvResults  = "LIBTEST_RESULTS"
)

// DefaultCFlags is the strict flag set every library is compiled with
var DefaultCFlags = []string{
	"-std=c11",
	"-pedantic",
	"-pedantic-errors",
	"-Wall",
	"-Werror",
	"-Wextra",
	"-D_POSIX_C_SOURCE=200112L",
}

// DefaultCheckerFlags are passed to the memory checker before the artifact
var DefaultCheckerFlags = []string{"-s", "--error-exitcode=1"}

// Profiles are the two operating modes of the harness
var Profiles = map[string]Profile{
	ProfileLib: {Name: ProfileLib, TargetDir: ".", DebugLogs: false},
	ProfileSrc: {Name: ProfileSrc, TargetDir: "../src/lib", DebugLogs: true},
}
