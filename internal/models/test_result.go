package models

import "time"

// Exit codes reported by a test run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitPolicy decides how per-test exit codes combine into the process exit code.
type ExitPolicy string

const (
	// ExitPolicyLast reports the exit code of the last test processed,
	// ignoring failures in earlier tests.
	ExitPolicyLast ExitPolicy = "last"

	// ExitPolicyAll reports failure if any test failed.
	ExitPolicyAll ExitPolicy = "all"
)

// CommandResult records the outcome of one command.
type CommandResult struct {
	Command  Command
	Error    error
	Passed   bool
	Duration time.Duration
}

// TestResult records the outcome of running one test's command list.
type TestResult struct {
	// Test is the test file path as given to the builder
	Test string

	// Simulator is the name of the builder that produced the commands
	Simulator string

	// ExitCode is ExitSuccess or ExitFailure
	ExitCode int

	// Elapsed is the wall-clock time for the whole command list
	Elapsed time.Duration

	// FailedCommand is the command that stopped the run, if any
	FailedCommand *Command

	// Commands holds results for every command that was started
	Commands []CommandResult

	// DryRun is true when commands were printed instead of executed
	DryRun bool
}

// Failed returns true if the test's command list stopped on a failure.
func (r TestResult) Failed() bool {
	return r.ExitCode != ExitSuccess
}

// RunSummary aggregates every test processed in one invocation.
type RunSummary struct {
	Results  []TestResult
	ExitCode int
}

// Failed returns the results of tests that failed, in run order.
func (s RunSummary) Failed() []TestResult {
	var failed []TestResult
	for _, r := range s.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// ComputeExitCode folds per-test results into a process exit code.
// With ExitPolicyLast only the final result matters; an empty run succeeds.
func ComputeExitCode(results []TestResult, policy ExitPolicy) int {
	if len(results) == 0 {
		return ExitSuccess
	}
	if policy == ExitPolicyAll {
		for _, r := range results {
			if r.Failed() {
				return ExitFailure
			}
		}
		return ExitSuccess
	}
	return results[len(results)-1].ExitCode
}
