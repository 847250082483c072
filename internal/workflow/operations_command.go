package workflow

import (
	"context"
	"errors"

	"github.com/temirov/pyrel/internal/banner"
	"github.com/temirov/pyrel/internal/execshell"
)

const (
	commandPassedBannerTextConstant = "COMMAND PASSED"
	commandFailedBannerTextConstant = "COMMAND FAILED"
)

// CommandOperation runs an arbitrary external command as a pipeline step.
type CommandOperation struct {
	Directory         string
	CommandWords      []string
	SuccessBannerText string
	FailureBannerText string
}

// Name identifies the operation type.
func (operation *CommandOperation) Name() string {
	return string(OperationTypeCommand)
}

// Execute runs the configured command and prints a pass or fail banner for command outcomes.
func (operation *CommandOperation) Execute(executionContext context.Context, environment *Environment, state *State) error {
	if environment == nil || state == nil {
		return nil
	}
	if len(operation.CommandWords) == 0 {
		return errors.New(commandRequiredMessageConstant)
	}

	targetDirectory := resolveDirectory(operation.Directory, state)

	if environment.DryRun {
		writePlannedCommand(environment, operation.CommandWords, targetDirectory)
		state.recordStepResult(OperationTypeCommand, operation.CommandWords[0])
		return nil
	}

	shellCommand := execshell.ShellCommand{
		Name: execshell.CommandName(operation.CommandWords[0]),
		Details: execshell.CommandDetails{
			Arguments:        operation.CommandWords[1:],
			WorkingDirectory: targetDirectory,
		},
	}

	_, executionError := environment.ShellExecutor.ExecuteCommand(executionContext, shellCommand)
	if executionError != nil {
		var commandFailedError execshell.CommandFailedError
		if errors.As(executionError, &commandFailedError) {
			printOutcomeBanner(environment, banner.ToneFailure, operation.failureBannerText())
		}
		return executionError
	}

	if bannerError := printOutcomeBanner(environment, banner.ToneSuccess, operation.successBannerText()); bannerError != nil {
		return bannerError
	}

	state.recordStepResult(OperationTypeCommand, operation.CommandWords[0])
	return nil
}

func (operation *CommandOperation) successBannerText() string {
	if len(operation.SuccessBannerText) > 0 {
		return operation.SuccessBannerText
	}
	return commandPassedBannerTextConstant
}

func (operation *CommandOperation) failureBannerText() string {
	if len(operation.FailureBannerText) > 0 {
		return operation.FailureBannerText
	}
	return commandFailedBannerTextConstant
}
