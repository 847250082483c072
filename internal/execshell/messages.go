package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "the current directory"
)

const (
	pipInstallSubcommandConstant = "install"
	pipUserFlagConstant          = "--user"
	pythonModuleFlagConstant     = "-m"
	flagPrefixConstant           = "-"
	unnamedInstallTargetConstant = "requirements"
)

const (
	pytestStartTemplateConstant                   = "Running test suite in %s"
	pytestSuccessTemplateConstant                 = "Test suite passed in %s"
	pytestFailureTemplateConstant                 = "Test suite failed in %s (exit code %d%s)"
	pytestExecutionFailureTemplateConstant        = "Unable to run test suite in %s: %s"
	pipInstallStartTemplateConstant               = "Installing %s%s"
	pipInstallSuccessTemplateConstant             = "Installed %s%s"
	pipInstallFailureTemplateConstant             = "Failed to install %s (exit code %d%s)"
	pipInstallExecutionFailureTemplateConstant    = "Unable to install %s: %s"
	pipUserScopeSuffixConstant                    = " into the user site"
	pythonModuleStartTemplateConstant             = "Running Python module %s in %s"
	pythonModuleSuccessTemplateConstant           = "Python module %s completed in %s"
	pythonModuleFailureTemplateConstant           = "Python module %s failed in %s (exit code %d%s)"
	pythonModuleExecutionFailureTemplateConstant  = "Unable to run Python module %s in %s: %s"
	pythonScriptStartTemplateConstant             = "Running Python script %s in %s"
	pythonScriptSuccessTemplateConstant           = "Python script %s completed in %s"
	pythonScriptFailureTemplateConstant           = "Python script %s failed in %s (exit code %d%s)"
	pythonScriptExecutionFailureTemplateConstant  = "Unable to run Python script %s in %s: %s"
	pythonGenericStartTemplateConstant            = "Running Python in %s"
	pythonGenericSuccessTemplateConstant          = "Python completed in %s"
	pythonGenericFailureTemplateConstant          = "Python failed in %s (exit code %d%s)"
	pythonGenericExecutionFailureTemplateConstant = "Unable to run Python in %s: %s"
)

// CommandMessageFormatter builds human-readable messages describing command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a command that completed with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing a command that could not execute.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandPytest:
		return formatter.describePytestMessage(command, result, failure, stage)
	case CommandPip:
		return formatter.describePipMessage(command, result, failure, stage)
	case CommandPython:
		return formatter.describePythonMessage(command, result, failure, stage)
	default:
		return formatter.describeGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describePytestMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(pytestStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(pytestSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(pytestFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(pytestExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describePipMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 || !strings.EqualFold(arguments[0], pipInstallSubcommandConstant) {
		return formatter.describeGenericMessage(command, result, failure, stage)
	}

	installTarget := formatter.describeInstallTarget(arguments[1:])
	scopeSuffix := emptyStringConstant
	if formatter.argumentsContainFlag(arguments, pipUserFlagConstant) {
		scopeSuffix = pipUserScopeSuffixConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(pipInstallStartTemplateConstant, installTarget, scopeSuffix)
	case messageStageSuccess:
		return fmt.Sprintf(pipInstallSuccessTemplateConstant, installTarget, scopeSuffix)
	case messageStageFailure:
		return fmt.Sprintf(pipInstallFailureTemplateConstant, installTarget, result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(pipInstallExecutionFailureTemplateConstant, installTarget, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describePythonMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments

	if len(arguments) >= 2 && arguments[0] == pythonModuleFlagConstant {
		moduleName := arguments[1]
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(pythonModuleStartTemplateConstant, moduleName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(pythonModuleSuccessTemplateConstant, moduleName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(pythonModuleFailureTemplateConstant, moduleName, workingDirectory, result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(pythonModuleExecutionFailureTemplateConstant, moduleName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if scriptName, scriptFound := formatter.firstPositionalArgument(arguments); scriptFound {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(pythonScriptStartTemplateConstant, scriptName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(pythonScriptSuccessTemplateConstant, scriptName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(pythonScriptFailureTemplateConstant, scriptName, workingDirectory, result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(pythonScriptExecutionFailureTemplateConstant, scriptName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(pythonGenericStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(pythonGenericSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(pythonGenericFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(pythonGenericExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.standardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)

	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, emptyStringConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeInstallTarget(arguments []string) string {
	if target, targetFound := formatter.firstPositionalArgument(arguments); targetFound {
		return target
	}
	return unnamedInstallTargetConstant
}

func (formatter CommandMessageFormatter) firstPositionalArgument(arguments []string) (string, bool) {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		return trimmedArgument, true
	}
	return emptyStringConstant, false
}

func (formatter CommandMessageFormatter) argumentsContainFlag(arguments []string, flagName string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == flagName {
			return true
		}
	}
	return false
}

func (formatter CommandMessageFormatter) standardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
