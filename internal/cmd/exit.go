package cmd

import "fmt"

// ExitError carries a non-zero exit code for a run whose failure has
// already been reported on the console.
type ExitError struct {
	Code int
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
