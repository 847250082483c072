package pyenv

import (
	"fmt"
	"strings"
)

const (
	installScopeUserStringConstant          = "user"
	installScopeSystemStringConstant        = "system"
	unsupportedInstallScopeTemplateConstant = "unsupported installation scope: %s"
	pipUserSiteFlagConstant                 = "--user"
)

// InstallScope enumerates supported pip installation scopes.
type InstallScope string

// Exported installation scope constants for reuse across packages.
const (
	InstallScopeUser   InstallScope = InstallScope(installScopeUserStringConstant)
	InstallScopeSystem InstallScope = InstallScope(installScopeSystemStringConstant)
)

// ParseInstallScope normalizes a candidate installation scope string and rejects unknown values.
func ParseInstallScope(candidateScope string) (InstallScope, error) {
	normalizedScope := strings.ToLower(strings.TrimSpace(candidateScope))
	switch InstallScope(normalizedScope) {
	case InstallScopeUser:
		return InstallScopeUser, nil
	case InstallScopeSystem:
		return InstallScopeSystem, nil
	default:
		return "", fmt.Errorf(unsupportedInstallScopeTemplateConstant, candidateScope)
	}
}

// PipFlags returns the pip install flags selecting the scope's target site.
func (scope InstallScope) PipFlags() []string {
	if scope == InstallScopeUser {
		return []string{pipUserSiteFlagConstant}
	}
	return nil
}
