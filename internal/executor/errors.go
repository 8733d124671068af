package executor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCommandFailed indicates a command exited with non-zero status.
	ErrCommandFailed = errors.New("command failed")
	// ErrHeaderNotFound indicates the install directory has no svut_h.sv.
	ErrHeaderNotFound = errors.New("svut_h.sv not found in install directory")
)

// TestError is a fatal error tied to one test file: an unsupported
// simulator or extension. It aborts the whole run.
type TestError struct {
	Test    string // Test file being prepared
	Message string // Human-readable error message
	Err     error  // Underlying error (optional)
}

// NewTestError creates a new TestError.
func NewTestError(test, msg string, err error) *TestError {
	return &TestError{
		Test:    test,
		Message: msg,
		Err:     err,
	}
}

// Error implements the error interface for TestError.
func (e *TestError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("test %s: %s", e.Test, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *TestError) Unwrap() error {
	return e.Err
}
