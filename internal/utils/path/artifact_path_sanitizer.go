package pathutils

import (
	"path/filepath"
	"runtime"
	"strings"
)

// ArtifactPathSanitizerConfiguration controls artifact path sanitization behavior.
type ArtifactPathSanitizerConfiguration struct {
	// DeduplicatePaths removes artifact paths that resolve to an already listed path.
	DeduplicatePaths bool
}

// ArtifactPathSanitizer normalizes artifact path inputs consistently across commands.
type ArtifactPathSanitizer struct {
	homeExpander  *HomeExpander
	configuration ArtifactPathSanitizerConfiguration
}

// NewArtifactPathSanitizer constructs an ArtifactPathSanitizer with default behavior.
func NewArtifactPathSanitizer() *ArtifactPathSanitizer {
	return NewArtifactPathSanitizerWithConfiguration(nil, ArtifactPathSanitizerConfiguration{})
}

// NewArtifactPathSanitizerWithConfiguration constructs an ArtifactPathSanitizer using the provided expander and configuration.
func NewArtifactPathSanitizerWithConfiguration(homeExpander *HomeExpander, configuration ArtifactPathSanitizerConfiguration) *ArtifactPathSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &ArtifactPathSanitizer{
		homeExpander:  resolvedExpander,
		configuration: configuration,
	}
}

// Sanitize trims whitespace, expands the user's home directory, and drops empty values.
func (sanitizer *ArtifactPathSanitizer) Sanitize(candidatePaths []string) []string {
	if sanitizer == nil {
		return sanitizePathsWithExpander(NewHomeExpander(), ArtifactPathSanitizerConfiguration{}, candidatePaths)
	}

	return sanitizePathsWithExpander(sanitizer.homeExpander, sanitizer.configuration, candidatePaths)
}

func sanitizePathsWithExpander(expander *HomeExpander, configuration ArtifactPathSanitizerConfiguration, candidatePaths []string) []string {
	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seenComparisonPaths := make(map[string]struct{}, len(candidatePaths))

	for candidateIndex := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePaths[candidateIndex])
		if len(trimmedCandidate) == 0 {
			continue
		}

		expandedPath := expander.Expand(trimmedCandidate)
		if len(expandedPath) == 0 {
			continue
		}

		if configuration.DeduplicatePaths {
			comparison := comparisonPath(canonicalizePath(expandedPath))
			if _, alreadySeen := seenComparisonPaths[comparison]; alreadySeen {
				continue
			}
			seenComparisonPaths[comparison] = struct{}{}
		}

		sanitizedPaths = append(sanitizedPaths, expandedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}

	return sanitizedPaths
}

func canonicalizePath(path string) string {
	cleanedPath := filepath.Clean(path)
	absolutePath, absoluteError := filepath.Abs(cleanedPath)
	if absoluteError == nil {
		return filepath.Clean(absolutePath)
	}
	return cleanedPath
}

func comparisonPath(path string) string {
	comparison := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}
