package checksum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pyrel/internal/artifacts"
	"github.com/temirov/pyrel/internal/utils"
	pathutils "github.com/temirov/pyrel/internal/utils/path"
)

const (
	commandUseConstant                = "checksum [artifacts]"
	commandShortDescriptionConstant   = "Report MD5 digests for release artifacts"
	commandLongDescriptionConstant    = "checksum computes an MD5 digest for every artifact path and prints one digest line per file."
	fileFlagNameConstant              = "file"
	fileFlagUsageConstant             = "Artifact path to digest (repeatable)"
	artifactsRequiredMessageConstant  = "checksum requires at least one artifact path"
	digestsComputedLogMessageConstant = "artifact digests computed"
	logFieldArtifactCountConstant     = "artifact_count"
	configurationFilesKeyConstant     = "files"
)

var artifactSanitizer = pathutils.NewArtifactPathSanitizerWithConfiguration(nil, pathutils.ArtifactPathSanitizerConfiguration{DeduplicatePaths: true})

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandConfiguration captures configuration values for checksum.
type CommandConfiguration struct {
	Files []string `mapstructure:"files"`
}

// DefaultConfigurationValues produces Viper defaults for the checksum command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	return map[string]any{
		rootKey + "." + configurationFilesKeyConstant: []string{},
	}
}

// Sanitize normalizes configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitizedFiles := make([]string, 0, len(configuration.Files))
	for _, filePath := range configuration.Files {
		trimmedPath := strings.TrimSpace(filePath)
		if len(trimmedPath) == 0 {
			continue
		}
		sanitizedFiles = append(sanitizedFiles, trimmedPath)
	}
	if len(sanitizedFiles) == 0 {
		sanitized.Files = nil
		return sanitized
	}

	sanitized.Files = sanitizedFiles
	return sanitized
}

// CommandBuilder assembles the checksum command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the checksum command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}

	command.Flags().StringSlice(fileFlagNameConstant, nil, fileFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := resolveLogger(builder.LoggerProvider)

	candidatePaths := append([]string{}, arguments...)
	if flagPaths, flagError := command.Flags().GetStringSlice(fileFlagNameConstant); flagError == nil {
		candidatePaths = append(candidatePaths, flagPaths...)
	}
	if len(candidatePaths) == 0 {
		candidatePaths = configuration.Files
	}

	artifactPaths := artifactSanitizer.Sanitize(candidatePaths)
	if len(artifactPaths) == 0 {
		return errors.New(artifactsRequiredMessageConstant)
	}

	checksumService := artifacts.NewChecksumService()
	artifactDigests, digestError := checksumService.DigestArtifacts(command.Context(), artifactPaths)
	if digestError != nil {
		return digestError
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	for _, artifactDigest := range artifactDigests {
		fmt.Fprintln(outputWriter, artifactDigest.String())
	}

	logger.Debug(digestsComputedLogMessageConstant, zap.Int(logFieldArtifactCountConstant, len(artifactDigests)))
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider().Sanitize()
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
