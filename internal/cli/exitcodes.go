package cli

import "errors"

// Exit codes for kvit-hints.
const (
	// ExitSuccess - conversion finished, possibly with skipped hints.
	ExitSuccess = 0

	// ExitError - invalid usage, bad config, or an unreadable file.
	ExitError = 1

	// ExitRejected - the response could not be parsed or had a malformed hint.
	ExitRejected = 2
)

// ErrBatchRejected marks a conversion that produced no edits because the
// response itself was unusable.
var ErrBatchRejected = errors.New("batch rejected")

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrBatchRejected):
		return ExitRejected
	default:
		return ExitError
	}
}
