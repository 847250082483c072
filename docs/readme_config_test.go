package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/pyrel/internal/workflow"
)

const (
	readmeFileNameConstant             = "README.md"
	yamlFenceStartConstant             = "```yaml"
	yamlFenceEndConstant               = "```"
	pipelineHeaderMarkerConstant       = "# pyrel-pipeline.yaml"
	readmeSnippetTestNameConstant      = "readme_pipeline_document"
	readmeSnippetTemporaryPattern      = "readme-pipeline-*.yaml"
	expectedOperationCount             = 4
	parentDirectoryReferenceConstant   = ".."
	missingHeaderMessageConstant       = "README example missing pipeline header marker"
	missingStartFenceMessageConstant   = "README example missing yaml fence start"
	missingEndFenceMessageConstant     = "README example missing yaml fence end"
	unexpectedOperationMessageTemplate = "unexpected operation %s"
	duplicateOperationMessageTemplate  = "duplicate operation %s"
	defaultTempDirectoryRootConstant   = ""
)

var expectedStepOperations = map[string]struct{}{
	"run-tests":          {},
	"install-package":    {},
	"run-command":        {},
	"checksum-artifacts": {},
}

type readmePipelineConfiguration struct {
	Name  string                    `yaml:"name"`
	Steps []readmeStepConfiguration `yaml:"steps"`
}

type readmeStepConfiguration struct {
	Operation string         `yaml:"operation"`
	Options   map[string]any `yaml:"with"`
}

func TestReadmePipelineDocumentParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, pipelineHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	testCases := []struct {
		name     string
		document string
	}{
		{
			name:     readmeSnippetTestNameConstant,
			document: snippetContent,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			tempFile, tempFileError := os.CreateTemp(defaultTempDirectoryRootConstant, readmeSnippetTemporaryPattern)
			require.NoError(subtest, tempFileError)
			subtest.Cleanup(func() {
				require.NoError(subtest, os.Remove(tempFile.Name()))
			})

			_, writeError := tempFile.WriteString(testCase.document)
			require.NoError(subtest, writeError)
			require.NoError(subtest, tempFile.Close())

			loadedConfiguration, workflowError := workflow.LoadConfiguration(tempFile.Name())
			require.NoError(subtest, workflowError)

			builtOperations, buildError := workflow.BuildOperations(loadedConfiguration)
			require.NoError(subtest, buildError)
			require.Len(subtest, builtOperations, expectedOperationCount)

			var pipelineConfiguration readmePipelineConfiguration
			unmarshalError := yaml.Unmarshal([]byte(testCase.document), &pipelineConfiguration)
			require.NoError(subtest, unmarshalError)

			require.NotEmpty(subtest, pipelineConfiguration.Name)
			require.Len(subtest, pipelineConfiguration.Steps, expectedOperationCount)

			seenOperations := make(map[string]struct{}, len(pipelineConfiguration.Steps))
			for _, stepConfiguration := range pipelineConfiguration.Steps {
				normalizedName := strings.TrimSpace(strings.ToLower(stepConfiguration.Operation))
				_, expected := expectedStepOperations[normalizedName]
				require.Truef(subtest, expected, unexpectedOperationMessageTemplate, normalizedName)

				_, duplicate := seenOperations[normalizedName]
				require.Falsef(subtest, duplicate, duplicateOperationMessageTemplate, normalizedName)
				seenOperations[normalizedName] = struct{}{}
			}
		})
	}
}
