package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pyrel/internal/workflow"
)

func TestBuildOperations(testInstance *testing.T) {
	testCases := []struct {
		name          string
		configuration workflow.Configuration
		assertFunc    func(*testing.T, workflow.Operation)
	}{
		{
			name: "builds test suite operation",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{
					{
						Operation: workflow.OperationTypeTestSuite,
						Options: map[string]any{
							"directory": "configparserenhanced",
							"arguments": []any{"--cov=configparserenhanced", "-v"},
						},
					},
				},
			},
			assertFunc: func(testingInstance *testing.T, operation workflow.Operation) {
				testSuiteOperation, castSucceeded := operation.(*workflow.TestSuiteOperation)
				require.True(testingInstance, castSucceeded)
				require.Equal(testingInstance, "configparserenhanced", testSuiteOperation.Directory)
				require.Equal(testingInstance, []string{"--cov=configparserenhanced", "-v"}, testSuiteOperation.PytestArguments)
			},
		},
		{
			name: "builds package install operation",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{
					{
						Operation: workflow.OperationTypePackageInstall,
						Options: map[string]any{
							"requirement": ".",
							"scope":       "user",
							"upgrade":     true,
						},
					},
				},
			},
			assertFunc: func(testingInstance *testing.T, operation workflow.Operation) {
				installOperation, castSucceeded := operation.(*workflow.PackageInstallOperation)
				require.True(testingInstance, castSucceeded)
				require.Equal(testingInstance, ".", installOperation.Requirement)
				require.Equal(testingInstance, "user", installOperation.Scope)
				require.True(testingInstance, installOperation.Upgrade)
			},
		},
		{
			name: "builds command operation with quoted arguments",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{
					{
						Operation: workflow.OperationTypeCommand,
						Options: map[string]any{
							"command":        `python3 exec-example.py "with spaces"`,
							"banner_success": "EXAMPLE PASSED",
						},
					},
				},
			},
			assertFunc: func(testingInstance *testing.T, operation workflow.Operation) {
				commandOperation, castSucceeded := operation.(*workflow.CommandOperation)
				require.True(testingInstance, castSucceeded)
				require.Equal(testingInstance, []string{"python3", "exec-example.py", "with spaces"}, commandOperation.CommandWords)
				require.Equal(testingInstance, "EXAMPLE PASSED", commandOperation.SuccessBannerText)
				require.Empty(testingInstance, commandOperation.FailureBannerText)
			},
		},
		{
			name: "builds checksum operation",
			configuration: workflow.Configuration{
				Steps: []workflow.StepConfiguration{
					{
						Operation: workflow.OperationTypeChecksum,
						Options: map[string]any{
							"artifacts": []any{"dist/configparser_enhanced-0.0.1.tar.gz", " "},
						},
					},
				},
			},
			assertFunc: func(testingInstance *testing.T, operation workflow.Operation) {
				checksumOperation, castSucceeded := operation.(*workflow.ChecksumOperation)
				require.True(testingInstance, castSucceeded)
				require.Equal(testingInstance, []string{"dist/configparser_enhanced-0.0.1.tar.gz"}, checksumOperation.ArtifactPaths)
			},
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(testingInstance *testing.T) {
			operations, buildError := workflow.BuildOperations(testCase.configuration)
			require.NoError(testingInstance, buildError)
			require.Len(testingInstance, operations, 1)
			testCase.assertFunc(testingInstance, operations[0])
		})
	}
}

func TestBuildOperationsToolReferences(testInstance *testing.T) {
	suiteTool := workflow.NamedToolConfiguration{
		Name: "suite",
		ToolConfiguration: workflow.ToolConfiguration{
			Operation: workflow.OperationTypeTestSuite,
			Options: map[string]any{
				"directory": "configparserenhanced",
				"arguments": []any{"--cov=configparserenhanced"},
			},
		},
	}

	testInstance.Run("step inherits tool defaults", func(testingInstance *testing.T) {
		configuration := workflow.Configuration{
			Tools: []workflow.NamedToolConfiguration{suiteTool},
			Steps: []workflow.StepConfiguration{
				{Options: map[string]any{"tool_ref": "suite"}},
			},
		}

		operations, buildError := workflow.BuildOperations(configuration)
		require.NoError(testingInstance, buildError)
		require.Len(testingInstance, operations, 1)

		testSuiteOperation, castSucceeded := operations[0].(*workflow.TestSuiteOperation)
		require.True(testingInstance, castSucceeded)
		require.Equal(testingInstance, "configparserenhanced", testSuiteOperation.Directory)
		require.Equal(testingInstance, []string{"--cov=configparserenhanced"}, testSuiteOperation.PytestArguments)
	})

	testInstance.Run("inline options override tool defaults", func(testingInstance *testing.T) {
		configuration := workflow.Configuration{
			Tools: []workflow.NamedToolConfiguration{suiteTool},
			Steps: []workflow.StepConfiguration{
				{
					Options: map[string]any{
						"tool_ref":  "suite",
						"directory": "src/configparserenhanced",
					},
				},
			},
		}

		operations, buildError := workflow.BuildOperations(configuration)
		require.NoError(testingInstance, buildError)
		require.Len(testingInstance, operations, 1)

		testSuiteOperation, castSucceeded := operations[0].(*workflow.TestSuiteOperation)
		require.True(testingInstance, castSucceeded)
		require.Equal(testingInstance, "src/configparserenhanced", testSuiteOperation.Directory)
		require.Equal(testingInstance, []string{"--cov=configparserenhanced"}, testSuiteOperation.PytestArguments)
	})

	testInstance.Run("unknown tool reference", func(testingInstance *testing.T) {
		configuration := workflow.Configuration{
			Tools: []workflow.NamedToolConfiguration{suiteTool},
			Steps: []workflow.StepConfiguration{
				{Options: map[string]any{"tool_ref": "linter"}},
			},
		}

		_, buildError := workflow.BuildOperations(configuration)
		require.Error(testingInstance, buildError)

		var referenceError workflow.ToolReferenceNotFoundError
		require.ErrorAs(testingInstance, buildError, &referenceError)
		require.Equal(testingInstance, "linter", referenceError.ToolName)
	})

	testInstance.Run("operation mismatch", func(testingInstance *testing.T) {
		configuration := workflow.Configuration{
			Tools: []workflow.NamedToolConfiguration{suiteTool},
			Steps: []workflow.StepConfiguration{
				{
					Operation: workflow.OperationTypePackageInstall,
					Options:   map[string]any{"tool_ref": "suite"},
				},
			},
		}

		_, buildError := workflow.BuildOperations(configuration)
		require.Error(testingInstance, buildError)
		require.ErrorContains(testingInstance, buildError, "expecting operation run-tests")
	})

	testInstance.Run("blank tool reference", func(testingInstance *testing.T) {
		configuration := workflow.Configuration{
			Tools: []workflow.NamedToolConfiguration{suiteTool},
			Steps: []workflow.StepConfiguration{
				{Options: map[string]any{"tool_ref": "  "}},
			},
		}

		_, buildError := workflow.BuildOperations(configuration)
		require.Error(testingInstance, buildError)
		require.ErrorContains(testingInstance, buildError, "pipeline tool reference must name a tool")
	})
}

func TestBuildOperationsValidation(testInstance *testing.T) {
	testCases := []struct {
		name            string
		step            workflow.StepConfiguration
		expectedMessage string
	}{
		{
			name:            "unsupported operation",
			step:            workflow.StepConfiguration{Operation: workflow.OperationType("publish")},
			expectedMessage: "unsupported pipeline operation: publish",
		},
		{
			name:            "command step without command",
			step:            workflow.StepConfiguration{Operation: workflow.OperationTypeCommand},
			expectedMessage: "run-command step requires a command",
		},
		{
			name: "command step with unbalanced quote",
			step: workflow.StepConfiguration{
				Operation: workflow.OperationTypeCommand,
				Options:   map[string]any{"command": `python3 "exec-example.py`},
			},
			expectedMessage: "run-command step has an invalid command",
		},
		{
			name:            "checksum step without artifacts",
			step:            workflow.StepConfiguration{Operation: workflow.OperationTypeChecksum},
			expectedMessage: "checksum-artifacts step requires at least one artifact",
		},
		{
			name: "install step with unsupported scope",
			step: workflow.StepConfiguration{
				Operation: workflow.OperationTypePackageInstall,
				Options:   map[string]any{"scope": "global"},
			},
			expectedMessage: "unsupported installation scope: global",
		},
		{
			name: "test suite step with non string arguments",
			step: workflow.StepConfiguration{
				Operation: workflow.OperationTypeTestSuite,
				Options:   map[string]any{"arguments": []any{42}},
			},
			expectedMessage: "pipeline option arguments must be a list of strings",
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(testingInstance *testing.T) {
			configuration := workflow.Configuration{Steps: []workflow.StepConfiguration{testCase.step}}
			_, buildError := workflow.BuildOperations(configuration)
			require.Error(testingInstance, buildError)
			require.ErrorContains(testingInstance, buildError, testCase.expectedMessage)
		})
	}
}
