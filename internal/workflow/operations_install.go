package workflow

import (
	"context"
	"errors"

	"github.com/temirov/pyrel/internal/banner"
	"github.com/temirov/pyrel/internal/execshell"
)

const (
	installPassedBannerTextConstant   = "INSTALL PASSED"
	installFailedBannerTextConstant   = "INSTALL FAILED"
	pipInstallSubcommandConstant      = "install"
	pipUpgradeFlagConstant            = "--upgrade"
	defaultInstallRequirementConstant = "."
)

// PackageInstallOperation installs a Python requirement with pip.
type PackageInstallOperation struct {
	Directory   string
	Requirement string
	Scope       string
	Upgrade     bool
}

// Name identifies the operation type.
func (operation *PackageInstallOperation) Name() string {
	return string(OperationTypePackageInstall)
}

// Execute installs the requirement and prints a pass or fail banner for command outcomes.
func (operation *PackageInstallOperation) Execute(executionContext context.Context, environment *Environment, state *State) error {
	if environment == nil || state == nil {
		return nil
	}

	installScope, scopeError := environment.ScopeDetector.ResolveInstallScope(operation.Scope)
	if scopeError != nil {
		return scopeError
	}

	requirement := operation.Requirement
	if len(requirement) == 0 {
		requirement = defaultInstallRequirementConstant
	}

	pipArguments := []string{pipInstallSubcommandConstant}
	if operation.Upgrade {
		pipArguments = append(pipArguments, pipUpgradeFlagConstant)
	}
	pipArguments = append(pipArguments, installScope.PipFlags()...)
	pipArguments = append(pipArguments, requirement)

	targetDirectory := resolveDirectory(operation.Directory, state)
	commandWords := append([]string{string(execshell.CommandPip)}, pipArguments...)

	if environment.DryRun {
		writePlannedCommand(environment, commandWords, targetDirectory)
		state.recordStepResult(OperationTypePackageInstall, requirement)
		return nil
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        pipArguments,
		WorkingDirectory: targetDirectory,
	}

	_, executionError := environment.ShellExecutor.ExecutePip(executionContext, commandDetails)
	if executionError != nil {
		var commandFailedError execshell.CommandFailedError
		if errors.As(executionError, &commandFailedError) {
			printOutcomeBanner(environment, banner.ToneFailure, installFailedBannerTextConstant)
		}
		return executionError
	}

	if bannerError := printOutcomeBanner(environment, banner.ToneSuccess, installPassedBannerTextConstant); bannerError != nil {
		return bannerError
	}

	state.recordStepResult(OperationTypePackageInstall, requirement)
	return nil
}
