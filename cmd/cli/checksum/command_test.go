package checksum_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	checksumcmd "github.com/temirov/pyrel/cmd/cli/checksum"
	"github.com/temirov/pyrel/internal/artifacts"
)

const (
	firstArtifactFileNameConstant    = "configparser_enhanced-0.0.1.tar.gz"
	secondArtifactFileNameConstant   = "configparser_enhanced-0.0.1-py3-none-any.whl"
	firstArtifactContentConstant     = "abc"
	secondArtifactContentConstant    = "message digest"
	firstArtifactDigestConstant      = "900150983cd24fb0d6963f7d28e17f72"
	secondArtifactDigestConstant     = "f96b697d7cb7938d525a2f31aaf161d0"
	artifactsRequiredSnippetConstant = "checksum requires at least one artifact path"
)

func writeArtifactFile(testInstance *testing.T, directory string, fileName string, content string) string {
	testInstance.Helper()
	artifactPath := filepath.Join(directory, fileName)
	require.NoError(testInstance, os.WriteFile(artifactPath, []byte(content), 0o644))
	return artifactPath
}

func executeChecksumCommand(testInstance *testing.T, builder *checksumcmd.CommandBuilder, arguments []string) (string, error) {
	testInstance.Helper()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&errorBuffer)
	command.SetContext(context.Background())
	if arguments == nil {
		arguments = []string{}
	}
	command.SetArgs(arguments)

	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func TestChecksumCommandArtifactSources(testInstance *testing.T) {
	testCases := []struct {
		name            string
		buildArguments  func(firstArtifactPath string, secondArtifactPath string) []string
		configuredFiles func(firstArtifactPath string, secondArtifactPath string) []string
		expectedDigests []string
	}{
		{
			name: "positional_arguments",
			buildArguments: func(firstArtifactPath string, secondArtifactPath string) []string {
				return []string{firstArtifactPath, secondArtifactPath}
			},
			expectedDigests: []string{firstArtifactDigestConstant, secondArtifactDigestConstant},
		},
		{
			name: "file_flag",
			buildArguments: func(firstArtifactPath string, secondArtifactPath string) []string {
				return []string{"--file", firstArtifactPath, "--file", secondArtifactPath}
			},
			expectedDigests: []string{firstArtifactDigestConstant, secondArtifactDigestConstant},
		},
		{
			name: "positional_and_flag_paths_combined",
			buildArguments: func(firstArtifactPath string, secondArtifactPath string) []string {
				return []string{firstArtifactPath, "--file", secondArtifactPath}
			},
			expectedDigests: []string{firstArtifactDigestConstant, secondArtifactDigestConstant},
		},
		{
			name: "configured_files_fallback",
			buildArguments: func(string, string) []string {
				return nil
			},
			configuredFiles: func(firstArtifactPath string, secondArtifactPath string) []string {
				return []string{firstArtifactPath}
			},
			expectedDigests: []string{firstArtifactDigestConstant},
		},
		{
			name: "arguments_override_configured_files",
			buildArguments: func(firstArtifactPath string, secondArtifactPath string) []string {
				return []string{secondArtifactPath}
			},
			configuredFiles: func(firstArtifactPath string, secondArtifactPath string) []string {
				return []string{firstArtifactPath}
			},
			expectedDigests: []string{secondArtifactDigestConstant},
		},
		{
			name: "duplicate_paths_reported_once",
			buildArguments: func(firstArtifactPath string, secondArtifactPath string) []string {
				return []string{firstArtifactPath, "--file", firstArtifactPath}
			},
			expectedDigests: []string{firstArtifactDigestConstant},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			temporaryDirectory := subtest.TempDir()
			firstArtifactPath := writeArtifactFile(subtest, temporaryDirectory, firstArtifactFileNameConstant, firstArtifactContentConstant)
			secondArtifactPath := writeArtifactFile(subtest, temporaryDirectory, secondArtifactFileNameConstant, secondArtifactContentConstant)

			configuration := checksumcmd.CommandConfiguration{}
			if testCase.configuredFiles != nil {
				configuration.Files = testCase.configuredFiles(firstArtifactPath, secondArtifactPath)
			}

			builder := &checksumcmd.CommandBuilder{
				LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
				ConfigurationProvider: func() checksumcmd.CommandConfiguration { return configuration },
			}

			outputText, executionError := executeChecksumCommand(subtest, builder, testCase.buildArguments(firstArtifactPath, secondArtifactPath))
			require.NoError(subtest, executionError)

			for _, expectedDigest := range testCase.expectedDigests {
				require.Contains(subtest, outputText, expectedDigest)
			}
			require.Equal(subtest, len(testCase.expectedDigests), strings.Count(outputText, "\n"))
		})
	}
}

func TestChecksumCommandRequiresArtifacts(testInstance *testing.T) {
	builder := &checksumcmd.CommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() checksumcmd.CommandConfiguration { return checksumcmd.CommandConfiguration{} },
	}

	_, executionError := executeChecksumCommand(testInstance, builder, nil)
	require.Error(testInstance, executionError)
	require.EqualError(testInstance, executionError, artifactsRequiredSnippetConstant)
}

func TestChecksumCommandReportsMissingArtifact(testInstance *testing.T) {
	missingPath := filepath.Join(testInstance.TempDir(), "missing.tar.gz")

	builder := &checksumcmd.CommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() checksumcmd.CommandConfiguration { return checksumcmd.CommandConfiguration{} },
	}

	outputText, executionError := executeChecksumCommand(testInstance, builder, []string{missingPath})
	require.Error(testInstance, executionError)

	var digestError artifacts.DigestComputationError
	require.ErrorAs(testInstance, executionError, &digestError)
	require.Equal(testInstance, missingPath, digestError.Path)
	require.NotContains(testInstance, outputText, firstArtifactDigestConstant)
}

func TestChecksumCommandConfigurationSanitize(testInstance *testing.T) {
	configuration := checksumcmd.CommandConfiguration{Files: []string{"  dist/package.tar.gz  ", "", "   "}}
	sanitized := configuration.Sanitize()
	require.Equal(testInstance, []string{"dist/package.tar.gz"}, sanitized.Files)

	emptyConfiguration := checksumcmd.CommandConfiguration{Files: []string{"", "   "}}
	require.Nil(testInstance, emptyConfiguration.Sanitize().Files)
}
