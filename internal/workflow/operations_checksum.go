package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/pyrel/internal/banner"
	pathutils "github.com/temirov/pyrel/internal/utils/path"
)

const (
	checksumPassedBannerTextConstant = "CHECKSUM PASSED"
	checksumFailedBannerTextConstant = "CHECKSUM FAILED"
	checksumDetailTemplateConstant   = "%d artifacts"
)

var checksumArtifactSanitizer = pathutils.NewArtifactPathSanitizerWithConfiguration(nil, pathutils.ArtifactPathSanitizerConfiguration{DeduplicatePaths: true})

// ChecksumOperation digests release artifacts and prints one checksum line per file.
type ChecksumOperation struct {
	ArtifactPaths []string
}

// Name identifies the operation type.
func (operation *ChecksumOperation) Name() string {
	return string(OperationTypeChecksum)
}

// Execute digests every artifact, writes the checksum lines, and prints the outcome banner.
func (operation *ChecksumOperation) Execute(executionContext context.Context, environment *Environment, state *State) error {
	if environment == nil || state == nil {
		return nil
	}

	sanitizedPaths := checksumArtifactSanitizer.Sanitize(operation.ArtifactPaths)
	if len(sanitizedPaths) == 0 {
		return errors.New(checksumArtifactsRequiredMessageConstant)
	}

	if environment.DryRun {
		plannedWords := append([]string{string(OperationTypeChecksum)}, sanitizedPaths...)
		writePlannedCommand(environment, plannedWords, "")
		state.recordStepResult(OperationTypeChecksum, fmt.Sprintf(checksumDetailTemplateConstant, len(sanitizedPaths)))
		return nil
	}

	artifactDigests, digestError := environment.ChecksumService.DigestArtifacts(executionContext, sanitizedPaths)
	if digestError != nil {
		printOutcomeBanner(environment, banner.ToneFailure, checksumFailedBannerTextConstant)
		return digestError
	}

	if environment.Output != nil {
		for _, artifactDigest := range artifactDigests {
			fmt.Fprintln(environment.Output, artifactDigest.String())
		}
	}

	if bannerError := printOutcomeBanner(environment, banner.ToneSuccess, checksumPassedBannerTextConstant); bannerError != nil {
		return bannerError
	}

	state.recordStepResult(OperationTypeChecksum, fmt.Sprintf(checksumDetailTemplateConstant, len(artifactDigests)))
	return nil
}
