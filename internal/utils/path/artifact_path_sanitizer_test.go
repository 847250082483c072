package pathutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/pyrel/internal/utils/path"
)

const (
	testCaseAbsolutePathSuffixConstant       = "artifact-path-sanitizer.tar.gz"
	testCaseTildeRelativePathConstant        = "dist/package-1.0.0.tar.gz"
	testCaseWhitespacePrefixConstant         = "  "
	testCaseWhitespaceSuffixConstant         = "\t"
	testCaseSanitizerDefaultCaseNameConstant = "default_configuration"
	testCaseDeduplicationCaseNameConstant    = "deduplication_configuration"
)

func TestArtifactPathSanitizerNormalizesInputs(testInstance *testing.T) {
	testInstance.Helper()

	homeDirectory, homeDirectoryError := os.UserHomeDir()
	require.NoError(testInstance, homeDirectoryError)

	temporaryDirectory := testInstance.TempDir()
	absolutePath := filepath.Join(temporaryDirectory, testCaseAbsolutePathSuffixConstant)
	tildeInput := filepath.Join("~", testCaseTildeRelativePathConstant)
	expandedTilde := filepath.Join(homeDirectory, testCaseTildeRelativePathConstant)

	testCases := []struct {
		name            string
		sanitizer       *pathutils.ArtifactPathSanitizer
		inputs          []string
		expectedOutputs []string
	}{
		{
			name:      testCaseSanitizerDefaultCaseNameConstant,
			sanitizer: pathutils.NewArtifactPathSanitizer(),
			inputs: []string{
				"",
				testCaseWhitespacePrefixConstant + absolutePath + testCaseWhitespaceSuffixConstant,
				testCaseWhitespacePrefixConstant + tildeInput + testCaseWhitespaceSuffixConstant,
			},
			expectedOutputs: []string{absolutePath, expandedTilde},
		},
		{
			name:      testCaseDeduplicationCaseNameConstant,
			sanitizer: pathutils.NewArtifactPathSanitizerWithConfiguration(nil, pathutils.ArtifactPathSanitizerConfiguration{DeduplicatePaths: true}),
			inputs: []string{
				absolutePath,
				absolutePath,
				tildeInput,
				expandedTilde,
			},
			expectedOutputs: []string{absolutePath, expandedTilde},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			subTest.Helper()

			sanitized := testCase.sanitizer.Sanitize(testCase.inputs)
			require.Equal(subTest, testCase.expectedOutputs, sanitized)
		})
	}
}

func TestArtifactPathSanitizerReturnsNilForEmptyResults(testInstance *testing.T) {
	testInstance.Helper()

	sanitizer := pathutils.NewArtifactPathSanitizer()

	sanitized := sanitizer.Sanitize([]string{"   ", "\n"})
	require.Nil(testInstance, sanitized)
}
