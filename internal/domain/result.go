package domain

import "time"

// Outcome is the final state of one library's pipeline
type Outcome string

const (
	OutcomeSkipped       Outcome = "skipped"
	OutcomeCompileFailed Outcome = "compile_failed"
	OutcomeCheckFailed   Outcome = "check_failed"
	OutcomePassed        Outcome = "passed"
	// OutcomeInterrupted marks a library whose stage was cut short by cancellation
	OutcomeInterrupted Outcome = "interrupted"
)

// Passed reports whether the library made it through every stage
func (o Outcome) Passed() bool { return o == OutcomePassed }

// LibraryResult represents the result of running one library's pipeline
type LibraryResult struct {
	Name     string        `json:"name"`
	Outcome  Outcome       `json:"outcome"`
	Command  string        `json:"command,omitempty"` // Command line of the failing stage
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Missing  []string      `json:"missing,omitempty"`  // Files absent from the target directory
	Resolved bool          `json:"resolved,omitempty"` // Marked as resolved in the failures viewer
	Duration time.Duration `json:"-"`
}

// RunMeta contains metadata about a run
type RunMeta struct {
	Profile         string  `json:"profile"`
	TargetDir       string  `json:"target_dir"`
	TotalLibraries  int     `json:"total_libraries"`
	Passed          int     `json:"passed"`
	Skipped         int     `json:"skipped"`
	CompileFailed   int     `json:"compile_failed"`
	CheckFailed     int     `json:"check_failed"`
	Interrupted     int     `json:"interrupted,omitempty"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// Failed returns the number of libraries that did not pass
func (m RunMeta) Failed() int {
	return m.Skipped + m.CompileFailed + m.CheckFailed + m.Interrupted
}

// RunReport is the complete persisted structure of a run
type RunReport struct {
	Meta    RunMeta         `json:"meta"`
	Details []LibraryResult `json:"details"`
}

// Failures returns the results that did not pass, in run order
func (r *RunReport) Failures() []LibraryResult {
	var failures []LibraryResult
	for _, d := range r.Details {
		if !d.Outcome.Passed() {
			failures = append(failures, d)
		}
	}
	return failures
}

// NewRunMeta tallies results into a RunMeta
func NewRunMeta(results []LibraryResult, duration time.Duration) RunMeta {
	meta := RunMeta{
		TotalLibraries:  len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	for _, r := range results {
		switch r.Outcome {
		case OutcomePassed:
			meta.Passed++
		case OutcomeSkipped:
			meta.Skipped++
		case OutcomeCompileFailed:
			meta.CompileFailed++
		case OutcomeCheckFailed:
			meta.CheckFailed++
		case OutcomeInterrupted:
			meta.Interrupted++
		}
	}
	return meta
}
