package workflow

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configurationLoadErrorTemplateConstant            = "failed to load pipeline configuration: %w"
	configurationParseErrorTemplateConstant           = "failed to parse pipeline configuration: %w"
	configurationPathRequiredMessageConstant          = "pipeline configuration path must be provided"
	configurationEmptyStepsMessageConstant            = "pipeline configuration must define at least one step"
	configurationOperationMissingMessageConstant      = "pipeline step missing operation name"
	configurationToolNameRequiredMessageConstant      = "pipeline tool names must be non-empty"
	configurationDuplicateToolNameMessageConstant     = "pipeline configuration defines duplicate tool names"
	configurationToolOperationMissingTemplateConstant = "pipeline tool %s missing operation name"
)

// OperationType identifies supported pipeline operations.
type OperationType string

// Supported pipeline operations.
const (
	OperationTypeTestSuite      OperationType = OperationType("run-tests")
	OperationTypePackageInstall OperationType = OperationType("install-package")
	OperationTypeCommand        OperationType = OperationType("run-command")
	OperationTypeChecksum       OperationType = OperationType("checksum-artifacts")
)

// Configuration describes the ordered pipeline steps and reusable tool definitions loaded from YAML.
type Configuration struct {
	Name  string                   `yaml:"name"`
	Tools []NamedToolConfiguration `yaml:"tools"`
	Steps []StepConfiguration      `yaml:"steps"`
}

// NamedToolConfiguration captures a reusable operation definition along with its canonical reference name.
type NamedToolConfiguration struct {
	Name              string `yaml:"name"`
	ToolConfiguration `yaml:",inline"`
}

// StepConfiguration associates an operation type with declarative options.
type StepConfiguration struct {
	Operation OperationType  `yaml:"operation"`
	Options   map[string]any `yaml:"with"`
}

// ToolConfiguration describes reusable pipeline options for a specific operation type.
type ToolConfiguration struct {
	Operation OperationType  `yaml:"operation"`
	Options   map[string]any `yaml:"with"`
}

// LoadConfiguration reads the pipeline definition from disk and performs basic validation.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	return ParseConfiguration(contentBytes)
}

// ParseConfiguration decodes a pipeline definition from raw YAML and performs basic validation.
func ParseConfiguration(contentBytes []byte) (Configuration, error) {
	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	if len(configuration.Tools) == 0 && len(configuration.Steps) == 0 {
		var wrapper struct {
			Workflow Configuration `yaml:"workflow"`
		}
		if nestedError := yaml.Unmarshal(contentBytes, &wrapper); nestedError == nil {
			if len(wrapper.Workflow.Tools) > 0 || len(wrapper.Workflow.Steps) > 0 {
				configuration = wrapper.Workflow
			}
		}
	}

	if _, toolsError := buildToolLookup(configuration.Tools); toolsError != nil {
		return Configuration{}, toolsError
	}

	if len(configuration.Steps) == 0 {
		return Configuration{}, errors.New(configurationEmptyStepsMessageConstant)
	}

	for stepIndex := range configuration.Steps {
		trimmedOperation := strings.TrimSpace(string(configuration.Steps[stepIndex].Operation))
		if len(trimmedOperation) == 0 {
			if !stepIncludesToolReference(configuration.Steps[stepIndex].Options) {
				return Configuration{}, errors.New(configurationOperationMissingMessageConstant)
			}
		} else {
			configuration.Steps[stepIndex].Operation = OperationType(trimmedOperation)
		}
	}

	return configuration, nil
}

func buildToolLookup(tools []NamedToolConfiguration) (map[string]ToolConfiguration, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	lookup := make(map[string]ToolConfiguration, len(tools))
	for toolIndex := range tools {
		trimmedName := strings.TrimSpace(tools[toolIndex].Name)
		if len(trimmedName) == 0 {
			return nil, errors.New(configurationToolNameRequiredMessageConstant)
		}
		if _, exists := lookup[trimmedName]; exists {
			return nil, errors.New(configurationDuplicateToolNameMessageConstant)
		}
		if len(strings.TrimSpace(string(tools[toolIndex].Operation))) == 0 {
			return nil, fmt.Errorf(configurationToolOperationMissingTemplateConstant, trimmedName)
		}
		lookup[trimmedName] = ToolConfiguration{
			Operation: tools[toolIndex].Operation,
			Options:   tools[toolIndex].Options,
		}
	}

	return lookup, nil
}

func stepIncludesToolReference(options map[string]any) bool {
	if len(options) == 0 {
		return false
	}

	for rawKey := range options {
		if strings.EqualFold(strings.TrimSpace(rawKey), optionToolReferenceKeyConstant) {
			return true
		}
	}

	return false
}
