// Package logging sets up the slog loggers used by gedcheck.
//
// Console output is either JSON or a compact line per record from [Handler]:
//
//	INFO  repaired finding="Document trailer was not specified - repaired"
//
// The -v count maps to a level through [LevelFromVerbosity]. Rules log at
// [LevelTrace], their results at Debug and repairs at Info. When a log file
// is configured it receives Debug and above as JSON regardless of the
// console level.
//
// Commands put the logger on their context with [NewContext]; library code
// reads it back with [FromContext] and gets a discard logger when none was
// set. Tests use [ForTest].
package logging
