package workflow

import (
	"context"
	"errors"

	"github.com/temirov/pyrel/internal/banner"
	"github.com/temirov/pyrel/internal/execshell"
)

const (
	testingPassedBannerTextConstant = "TESTING PASSED"
	testingFailedBannerTextConstant = "TESTING FAILED"
)

// TestSuiteOperation runs the pytest suite and reports the outcome with a banner.
type TestSuiteOperation struct {
	Directory       string
	PytestArguments []string
}

// Name identifies the operation type.
func (operation *TestSuiteOperation) Name() string {
	return string(OperationTypeTestSuite)
}

// Execute runs pytest and prints a pass or fail banner for command outcomes.
func (operation *TestSuiteOperation) Execute(executionContext context.Context, environment *Environment, state *State) error {
	if environment == nil || state == nil {
		return nil
	}

	targetDirectory := resolveDirectory(operation.Directory, state)
	commandWords := append([]string{string(execshell.CommandPytest)}, operation.PytestArguments...)

	if environment.DryRun {
		writePlannedCommand(environment, commandWords, targetDirectory)
		state.recordStepResult(OperationTypeTestSuite, targetDirectory)
		return nil
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        operation.PytestArguments,
		WorkingDirectory: targetDirectory,
	}

	_, executionError := environment.ShellExecutor.ExecutePytest(executionContext, commandDetails)
	if executionError != nil {
		var commandFailedError execshell.CommandFailedError
		if errors.As(executionError, &commandFailedError) {
			printOutcomeBanner(environment, banner.ToneFailure, testingFailedBannerTextConstant)
		}
		return executionError
	}

	if bannerError := printOutcomeBanner(environment, banner.ToneSuccess, testingPassedBannerTextConstant); bannerError != nil {
		return bannerError
	}

	state.recordStepResult(OperationTypeTestSuite, targetDirectory)
	return nil
}
