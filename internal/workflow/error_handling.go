package workflow

import (
	"errors"

	"github.com/temirov/pyrel/internal/execshell"
)

// ExitCodeError carries the exit status a failed pipeline should surface as the process exit code.
type ExitCodeError struct {
	Code  int
	Cause error
}

// Error describes the underlying pipeline failure.
func (exitError ExitCodeError) Error() string {
	return exitError.Cause.Error()
}

// Unwrap exposes the wrapped pipeline failure.
func (exitError ExitCodeError) Unwrap() error {
	return exitError.Cause
}

// WrapExitCode attaches a failed command's exit status to the pipeline error when one is present.
func WrapExitCode(candidateError error) error {
	if candidateError == nil {
		return nil
	}

	if exitCode, exitCodeFound := CommandExitCode(candidateError); exitCodeFound {
		return ExitCodeError{Code: exitCode, Cause: candidateError}
	}

	return candidateError
}

// CommandExitCode reports the exit status of the failed command wrapped inside a pipeline error.
func CommandExitCode(candidateError error) (int, bool) {
	var commandFailedError execshell.CommandFailedError
	if errors.As(candidateError, &commandFailedError) {
		return commandFailedError.Result.ExitCode, true
	}
	return 0, false
}
