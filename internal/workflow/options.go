package workflow

import (
	"errors"
	"fmt"
	"strings"
)

const (
	optionToolReferenceKeyConstant            = "tool_ref"
	optionDirectoryKeyConstant                = "directory"
	optionArgumentsKeyConstant                = "arguments"
	optionRequirementKeyConstant              = "requirement"
	optionScopeKeyConstant                    = "scope"
	optionUpgradeKeyConstant                  = "upgrade"
	optionCommandKeyConstant                  = "command"
	optionSuccessBannerKeyConstant            = "banner_success"
	optionFailureBannerKeyConstant            = "banner_failure"
	optionArtifactsKeyConstant                = "artifacts"
	optionStringTypeErrorTemplateConstant     = "pipeline option %s must be a string"
	optionBoolTypeErrorTemplateConstant       = "pipeline option %s must be a boolean"
	optionListTypeErrorTemplateConstant       = "pipeline option %s must be a list of strings"
	toolReferenceNotFoundTemplateConstant     = "pipeline step references unknown tool %s"
	toolOperationMismatchTemplateConstant     = "pipeline step references tool %s expecting operation %s but step configured %s"
	toolReferenceValueRequiredMessageConstant = "pipeline tool reference must name a tool"
)

// ToolReferenceNotFoundError reports a step referencing an undefined tool.
type ToolReferenceNotFoundError struct {
	ToolName string
}

// Error describes the missing tool reference.
func (referenceError ToolReferenceNotFoundError) Error() string {
	return fmt.Sprintf(toolReferenceNotFoundTemplateConstant, referenceError.ToolName)
}

type optionReader struct {
	options map[string]any
}

func newOptionReader(options map[string]any) optionReader {
	return optionReader{options: options}
}

func (reader optionReader) lookup(optionKey string) (any, bool) {
	for rawKey, rawValue := range reader.options {
		if strings.EqualFold(strings.TrimSpace(rawKey), optionKey) {
			return rawValue, true
		}
	}
	return nil, false
}

func (reader optionReader) stringValue(optionKey string) (string, bool, error) {
	rawValue, exists := reader.lookup(optionKey)
	if !exists {
		return "", false, nil
	}

	stringValue, isString := rawValue.(string)
	if !isString {
		return "", true, fmt.Errorf(optionStringTypeErrorTemplateConstant, optionKey)
	}

	return strings.TrimSpace(stringValue), true, nil
}

func (reader optionReader) boolValue(optionKey string) (bool, bool, error) {
	rawValue, exists := reader.lookup(optionKey)
	if !exists {
		return false, false, nil
	}

	boolValue, isBool := rawValue.(bool)
	if !isBool {
		return false, true, fmt.Errorf(optionBoolTypeErrorTemplateConstant, optionKey)
	}

	return boolValue, true, nil
}

func (reader optionReader) stringSliceValue(optionKey string) ([]string, bool, error) {
	rawValue, exists := reader.lookup(optionKey)
	if !exists {
		return nil, false, nil
	}

	switch typedValue := rawValue.(type) {
	case []any:
		values := make([]string, 0, len(typedValue))
		for _, element := range typedValue {
			stringElement, isString := element.(string)
			if !isString {
				return nil, true, fmt.Errorf(optionListTypeErrorTemplateConstant, optionKey)
			}
			trimmedElement := strings.TrimSpace(stringElement)
			if len(trimmedElement) == 0 {
				continue
			}
			values = append(values, trimmedElement)
		}
		return values, true, nil
	case []string:
		values := make([]string, 0, len(typedValue))
		for _, element := range typedValue {
			trimmedElement := strings.TrimSpace(element)
			if len(trimmedElement) == 0 {
				continue
			}
			values = append(values, trimmedElement)
		}
		return values, true, nil
	case string:
		trimmedElement := strings.TrimSpace(typedValue)
		if len(trimmedElement) == 0 {
			return nil, true, nil
		}
		return []string{trimmedElement}, true, nil
	default:
		return nil, true, fmt.Errorf(optionListTypeErrorTemplateConstant, optionKey)
	}
}

// resolveStepConfiguration merges tool defaults with inline step overrides.
func resolveStepConfiguration(step StepConfiguration, toolLookup map[string]ToolConfiguration) (StepConfiguration, error) {
	reader := newOptionReader(step.Options)
	toolName, referenceExists, referenceError := reader.stringValue(optionToolReferenceKeyConstant)
	if referenceError != nil {
		return StepConfiguration{}, referenceError
	}

	if !referenceExists {
		return step, nil
	}

	if len(toolName) == 0 {
		return StepConfiguration{}, errors.New(toolReferenceValueRequiredMessageConstant)
	}

	tool, toolExists := toolLookup[toolName]
	if !toolExists {
		return StepConfiguration{}, ToolReferenceNotFoundError{ToolName: toolName}
	}

	stepOperation := strings.TrimSpace(string(step.Operation))
	if len(stepOperation) > 0 && OperationType(stepOperation) != tool.Operation {
		return StepConfiguration{}, fmt.Errorf(toolOperationMismatchTemplateConstant, toolName, tool.Operation, stepOperation)
	}

	mergedOptions := make(map[string]any, len(tool.Options)+len(step.Options))
	for optionKey, optionValue := range tool.Options {
		mergedOptions[optionKey] = optionValue
	}
	for optionKey, optionValue := range step.Options {
		if strings.EqualFold(strings.TrimSpace(optionKey), optionToolReferenceKeyConstant) {
			continue
		}
		mergedOptions[optionKey] = optionValue
	}

	return StepConfiguration{Operation: tool.Operation, Options: mergedOptions}, nil
}
