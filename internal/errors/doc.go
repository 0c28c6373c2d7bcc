// Package errors classifies gedcheck failures for the command line.
//
// Commands return an [*ExitError] built with [NewUserError],
// [NewSystemError], [NewConfigError] or [NewValidationError]. main prints
// the message and suggestion, then exits with [ExitCode]:
//
//	err := commands.Execute()
//	if err != nil {
//		commands.PrintError(os.Stderr, err)
//	}
//	os.Exit(errors.ExitCode(err))
//
// Wrapping goes through github.com/cockroachdb/errors, re-exported here, so
// sentinels such as [ErrValidationFailed] stay visible to [Is] under any
// number of Wrap calls.
package errors
