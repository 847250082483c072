package workflow_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pyrel/internal/artifacts"
	"github.com/temirov/pyrel/internal/banner"
	"github.com/temirov/pyrel/internal/execshell"
	"github.com/temirov/pyrel/internal/pyenv"
	"github.com/temirov/pyrel/internal/workflow"
)

func environmentLookupWith(values map[string]string) pyenv.EnvironmentLookup {
	return func(variableName string) (string, bool) {
		value, exists := values[variableName]
		return value, exists
	}
}

func TestPackageInstallOperationPipArguments(testInstance *testing.T) {
	testCases := []struct {
		name              string
		operation         workflow.PackageInstallOperation
		environmentValues map[string]string
		expectedArguments []string
	}{
		{
			name:              "user scope outside virtual environments",
			operation:         workflow.PackageInstallOperation{},
			environmentValues: map[string]string{},
			expectedArguments: []string{"install", "--user", "."},
		},
		{
			name:              "system scope inside virtual environments",
			operation:         workflow.PackageInstallOperation{},
			environmentValues: map[string]string{"VIRTUAL_ENV": "/opt/venv"},
			expectedArguments: []string{"install", "."},
		},
		{
			name:              "explicit scope overrides detection",
			operation:         workflow.PackageInstallOperation{Scope: "system"},
			environmentValues: map[string]string{},
			expectedArguments: []string{"install", "."},
		},
		{
			name:              "upgrade with named requirement",
			operation:         workflow.PackageInstallOperation{Requirement: "configparser_enhanced", Upgrade: true},
			environmentValues: map[string]string{},
			expectedArguments: []string{"install", "--upgrade", "--user", "configparser_enhanced"},
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(testingInstance *testing.T) {
			commandRunner := &recordingCommandRunner{}
			shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), commandRunner)
			require.NoError(testingInstance, executorError)

			environment := &workflow.Environment{
				ShellExecutor: shellExecutor,
				ScopeDetector: pyenv.NewDetectorWithLookup(environmentLookupWith(testCase.environmentValues)),
			}

			operation := testCase.operation
			require.NoError(testingInstance, operation.Execute(context.Background(), environment, &workflow.State{}))
			require.Len(testingInstance, commandRunner.commands, 1)
			require.Equal(testingInstance, execshell.CommandPip, commandRunner.commands[0].Name)
			require.Equal(testingInstance, testCase.expectedArguments, commandRunner.commands[0].Details.Arguments)
		})
	}
}

func TestPackageInstallOperationDryRun(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	environment := &workflow.Environment{
		ScopeDetector: pyenv.NewDetectorWithLookup(environmentLookupWith(map[string]string{})),
		Output:        outputBuffer,
		DryRun:        true,
	}

	operation := workflow.PackageInstallOperation{Directory: "/tmp/package"}
	state := &workflow.State{}
	require.NoError(testInstance, operation.Execute(context.Background(), environment, state))

	require.Equal(testInstance, "PLANNED: pip3 install --user . (in /tmp/package)\n", outputBuffer.String())
	require.Len(testInstance, state.StepResults, 1)
	require.Equal(testInstance, workflow.OperationTypePackageInstall, state.StepResults[0].Operation)
}

func TestCommandOperationBannerOverrides(testInstance *testing.T) {
	testCases := []struct {
		name           string
		operation      workflow.CommandOperation
		commandResults map[string]execshell.ExecutionResult
		expectError    bool
		expectedBanner string
	}{
		{
			name: "custom success banner",
			operation: workflow.CommandOperation{
				CommandWords:      []string{"true"},
				SuccessBannerText: "EXAMPLE PASSED",
			},
			commandResults: map[string]execshell.ExecutionResult{},
			expectedBanner: "EXAMPLE PASSED",
		},
		{
			name: "custom failure banner",
			operation: workflow.CommandOperation{
				CommandWords:      []string{"false"},
				FailureBannerText: "EXAMPLE FAILED",
			},
			commandResults: map[string]execshell.ExecutionResult{"false": {ExitCode: 1}},
			expectError:    true,
			expectedBanner: "EXAMPLE FAILED",
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(testingInstance *testing.T) {
			commandRunner := &recordingCommandRunner{results: testCase.commandResults}
			shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), commandRunner)
			require.NoError(testingInstance, executorError)

			outputBuffer := &bytes.Buffer{}
			bannerPrinter, printerError := banner.NewPrinter(banner.PrinterOptions{
				Writer: outputBuffer,
				Clock:  func() time.Time { return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC) },
			})
			require.NoError(testingInstance, printerError)

			environment := &workflow.Environment{
				ShellExecutor: shellExecutor,
				BannerPrinter: bannerPrinter,
				Output:        outputBuffer,
			}

			operation := testCase.operation
			executeError := operation.Execute(context.Background(), environment, &workflow.State{})
			if testCase.expectError {
				require.Error(testingInstance, executeError)
			} else {
				require.NoError(testingInstance, executeError)
			}
			require.Contains(testingInstance, outputBuffer.String(), testCase.expectedBanner)
		})
	}
}

func TestChecksumOperation(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	artifactPath := filepath.Join(tempDirectory, "configparser_enhanced-0.0.1.tar.gz")
	require.NoError(testInstance, os.WriteFile(artifactPath, []byte("abc"), 0o644))

	outputBuffer := &bytes.Buffer{}
	bannerPrinter, printerError := banner.NewPrinter(banner.PrinterOptions{
		Writer: outputBuffer,
		Clock:  func() time.Time { return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC) },
	})
	require.NoError(testInstance, printerError)

	environment := &workflow.Environment{
		ChecksumService: artifacts.NewChecksumService(),
		BannerPrinter:   bannerPrinter,
		Output:          outputBuffer,
	}

	operation := workflow.ChecksumOperation{ArtifactPaths: []string{artifactPath, artifactPath}}
	state := &workflow.State{}
	require.NoError(testInstance, operation.Execute(context.Background(), environment, state))

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "900150983cd24fb0d6963f7d28e17f72  "+artifactPath)
	require.Contains(testInstance, renderedOutput, "CHECKSUM PASSED")
	require.Len(testInstance, state.StepResults, 1)
	require.Equal(testInstance, workflow.OperationTypeChecksum, state.StepResults[0].Operation)
	require.Equal(testInstance, "1 artifacts", state.StepResults[0].Detail)
}

func TestChecksumOperationMissingArtifact(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	bannerPrinter, printerError := banner.NewPrinter(banner.PrinterOptions{Writer: outputBuffer})
	require.NoError(testInstance, printerError)

	environment := &workflow.Environment{
		ChecksumService: artifacts.NewChecksumService(),
		BannerPrinter:   bannerPrinter,
		Output:          outputBuffer,
	}

	missingPath := filepath.Join(testInstance.TempDir(), "missing.tar.gz")
	operation := workflow.ChecksumOperation{ArtifactPaths: []string{missingPath}}
	executeError := operation.Execute(context.Background(), environment, &workflow.State{})
	require.Error(testInstance, executeError)

	var digestError artifacts.DigestComputationError
	require.ErrorAs(testInstance, executeError, &digestError)
	require.Contains(testInstance, outputBuffer.String(), "CHECKSUM FAILED")
	require.NotContains(testInstance, outputBuffer.String(), "CHECKSUM PASSED")
}
