package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitSuccess = 0
	// ExitUser covers bad input, bad configuration and failed validation.
	ExitUser = 1
	// ExitSystem covers I/O failures and anything unclassified.
	ExitSystem = 2
)

var (
	// ErrNotFound marks a missing input file, backup or config key.
	ErrNotFound = crdb.New("not found")
	// ErrInvalidConfig marks a configuration that failed to load or validate.
	ErrInvalidConfig = crdb.New("invalid configuration")
	// ErrValidationFailed marks a document with blocking findings.
	ErrValidationFailed = crdb.New("validation failed")
)

// Re-exported from cockroachdb/errors so callers import one package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Join   = crdb.Join
	Unwrap = crdb.UnwrapOnce
)

// ExitError carries the exit code and an optional hint for the user along
// with the cause.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

func exit(code int, err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: code, Suggestion: suggestion}
}

// NewUserError reports a mistake the user can fix.
func NewUserError(err error, suggestion string) *ExitError {
	return exit(ExitUser, err, suggestion)
}

// NewSystemError reports a failure of the environment, usually I/O.
func NewSystemError(err error, suggestion string) *ExitError {
	return exit(ExitSystem, err, suggestion)
}

// NewConfigError marks err as ErrInvalidConfig and points at config show.
func NewConfigError(err error) *ExitError {
	return exit(ExitUser, crdb.Mark(err, ErrInvalidConfig), "Run: gedcheck config show")
}

// NewValidationError reports count blocking findings.
func NewValidationError(count int) *ExitError {
	return exit(ExitUser,
		crdb.Wrapf(ErrValidationFailed, "%d finding(s)", count),
		"Run: gedcheck repair <file> to apply safe defaults")
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode picks the process exit code for err: the code of the first
// ExitError in its chain, ExitSuccess for nil, ExitSystem otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSystem
}
