package pyenv

import (
	"os"
	"strings"
)

const (
	virtualEnvironmentVariableNameConstant = "VIRTUAL_ENV"
)

// EnvironmentLookup resolves environment variables by name.
type EnvironmentLookup func(variableName string) (string, bool)

// Detector inspects the process environment to select an installation scope.
type Detector struct {
	environmentLookup EnvironmentLookup
	defaultScope      InstallScope
}

// NewDetector constructs a Detector backed by the operating system environment.
func NewDetector() *Detector {
	return NewDetectorWithLookup(os.LookupEnv)
}

// NewDetectorWithLookup constructs a Detector with a custom environment lookup.
func NewDetectorWithLookup(lookup EnvironmentLookup) *Detector {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Detector{environmentLookup: lookup}
}

// WithDefaultScope returns a detector that prefers the supplied scope over environment detection.
func (detector *Detector) WithDefaultScope(scope InstallScope) *Detector {
	pinnedDetector := *detector
	pinnedDetector.defaultScope = scope
	return &pinnedDetector
}

// VirtualEnvironmentPath returns the active virtual environment path when one is set.
func (detector *Detector) VirtualEnvironmentPath() (string, bool) {
	if detector == nil {
		return "", false
	}

	environmentValue, variableSet := detector.environmentLookup(virtualEnvironmentVariableNameConstant)
	trimmedValue := strings.TrimSpace(environmentValue)
	if !variableSet || len(trimmedValue) == 0 {
		return "", false
	}

	return trimmedValue, true
}

// DetectInstallScope selects the system scope inside an active virtual environment and the user scope otherwise.
func (detector *Detector) DetectInstallScope() InstallScope {
	if _, insideVirtualEnvironment := detector.VirtualEnvironmentPath(); insideVirtualEnvironment {
		return InstallScopeSystem
	}
	return InstallScopeUser
}

// ResolveInstallScope honors an explicitly configured scope, then the pinned
// default scope, and falls back to environment detection.
func (detector *Detector) ResolveInstallScope(configuredScope string) (InstallScope, error) {
	if len(strings.TrimSpace(configuredScope)) > 0 {
		return ParseInstallScope(configuredScope)
	}

	if len(detector.defaultScope) > 0 {
		return detector.defaultScope, nil
	}

	return detector.DetectInstallScope(), nil
}
