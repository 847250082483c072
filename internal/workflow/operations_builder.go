package workflow

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"

	"github.com/temirov/pyrel/internal/pyenv"
)

const (
	commandRequiredMessageConstant           = "run-command step requires a command"
	commandParseErrorTemplateConstant        = "run-command step has an invalid command: %w"
	checksumArtifactsRequiredMessageConstant = "checksum-artifacts step requires at least one artifact"
	unsupportedOperationTemplateConstant     = "unsupported pipeline operation: %s"
)

// BuildOperations converts the declarative configuration into executable operations.
func BuildOperations(configuration Configuration) ([]Operation, error) {
	toolLookup, toolError := buildToolLookup(configuration.Tools)
	if toolError != nil {
		return nil, toolError
	}

	operations := make([]Operation, 0, len(configuration.Steps))
	for stepIndex := range configuration.Steps {
		resolvedStep, resolveError := resolveStepConfiguration(configuration.Steps[stepIndex], toolLookup)
		if resolveError != nil {
			return nil, resolveError
		}
		operation, buildError := buildOperationFromStep(resolvedStep)
		if buildError != nil {
			return nil, buildError
		}
		operations = append(operations, operation)
	}
	return operations, nil
}

func buildOperationFromStep(step StepConfiguration) (Operation, error) {
	switch step.Operation {
	case OperationTypeTestSuite:
		return buildTestSuiteOperation(step.Options)
	case OperationTypePackageInstall:
		return buildPackageInstallOperation(step.Options)
	case OperationTypeCommand:
		return buildCommandOperation(step.Options)
	case OperationTypeChecksum:
		return buildChecksumOperation(step.Options)
	default:
		return nil, fmt.Errorf(unsupportedOperationTemplateConstant, step.Operation)
	}
}

func buildTestSuiteOperation(options map[string]any) (Operation, error) {
	reader := newOptionReader(options)
	directoryValue, _, directoryError := reader.stringValue(optionDirectoryKeyConstant)
	if directoryError != nil {
		return nil, directoryError
	}
	argumentValues, _, argumentsError := reader.stringSliceValue(optionArgumentsKeyConstant)
	if argumentsError != nil {
		return nil, argumentsError
	}

	return &TestSuiteOperation{Directory: directoryValue, PytestArguments: argumentValues}, nil
}

func buildPackageInstallOperation(options map[string]any) (Operation, error) {
	reader := newOptionReader(options)
	directoryValue, _, directoryError := reader.stringValue(optionDirectoryKeyConstant)
	if directoryError != nil {
		return nil, directoryError
	}
	requirementValue, _, requirementError := reader.stringValue(optionRequirementKeyConstant)
	if requirementError != nil {
		return nil, requirementError
	}
	scopeValue, scopeExists, scopeError := reader.stringValue(optionScopeKeyConstant)
	if scopeError != nil {
		return nil, scopeError
	}
	if scopeExists && len(scopeValue) > 0 {
		if _, parseError := pyenv.ParseInstallScope(scopeValue); parseError != nil {
			return nil, parseError
		}
	}
	upgradeValue, _, upgradeError := reader.boolValue(optionUpgradeKeyConstant)
	if upgradeError != nil {
		return nil, upgradeError
	}

	return &PackageInstallOperation{
		Directory:   directoryValue,
		Requirement: requirementValue,
		Scope:       scopeValue,
		Upgrade:     upgradeValue,
	}, nil
}

func buildCommandOperation(options map[string]any) (Operation, error) {
	reader := newOptionReader(options)
	commandValue, commandExists, commandError := reader.stringValue(optionCommandKeyConstant)
	if commandError != nil {
		return nil, commandError
	}
	if !commandExists || len(commandValue) == 0 {
		return nil, errors.New(commandRequiredMessageConstant)
	}

	commandWords, splitError := shellquote.Split(commandValue)
	if splitError != nil {
		return nil, fmt.Errorf(commandParseErrorTemplateConstant, splitError)
	}
	if len(commandWords) == 0 {
		return nil, errors.New(commandRequiredMessageConstant)
	}

	directoryValue, _, directoryError := reader.stringValue(optionDirectoryKeyConstant)
	if directoryError != nil {
		return nil, directoryError
	}
	successBannerValue, _, successBannerError := reader.stringValue(optionSuccessBannerKeyConstant)
	if successBannerError != nil {
		return nil, successBannerError
	}
	failureBannerValue, _, failureBannerError := reader.stringValue(optionFailureBannerKeyConstant)
	if failureBannerError != nil {
		return nil, failureBannerError
	}

	return &CommandOperation{
		Directory:         directoryValue,
		CommandWords:      commandWords,
		SuccessBannerText: successBannerValue,
		FailureBannerText: failureBannerValue,
	}, nil
}

func buildChecksumOperation(options map[string]any) (Operation, error) {
	reader := newOptionReader(options)
	artifactValues, artifactsExist, artifactsError := reader.stringSliceValue(optionArtifactsKeyConstant)
	if artifactsError != nil {
		return nil, artifactsError
	}
	if !artifactsExist || len(artifactValues) == 0 {
		return nil, errors.New(checksumArtifactsRequiredMessageConstant)
	}

	return &ChecksumOperation{ArtifactPaths: artifactValues}, nil
}
