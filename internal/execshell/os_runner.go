package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const environmentEntryTemplateConstant = "%s=%s"

// OSCommandRunner executes commands through os/exec.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by the operating system.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command, capturing both output streams. A non-zero
// exit code is reported inside the ExecutionResult rather than as an error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	arguments := append([]string{}, command.Details.Arguments...)
	processCommand := exec.CommandContext(executionContext, string(command.Name), arguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		processCommand.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		processEnvironment := append([]string{}, os.Environ()...)
		for variableName, variableValue := range command.Details.EnvironmentVariables {
			processEnvironment = append(processEnvironment, fmt.Sprintf(environmentEntryTemplateConstant, variableName, variableValue))
		}
		processCommand.Env = processEnvironment
	}

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	processCommand.Stdout = &standardOutput
	processCommand.Stderr = &standardError

	if len(command.Details.StandardInput) > 0 {
		processCommand.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := processCommand.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutput.String(),
				StandardError:  standardError.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutput.String(),
		StandardError:  standardError.String(),
		ExitCode:       0,
	}, nil
}
