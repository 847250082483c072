package check

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/pyrel/internal/pyenv"
	pathutils "github.com/temirov/pyrel/internal/utils/path"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

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

func installScopeChoices() []string {
	return []string{string(pyenv.InstallScopeUser), string(pyenv.InstallScopeSystem)}
}

// adjacentPipelinePath locates a pipeline document stored next to the running binary.
func adjacentPipelinePath(resolver *pathutils.ExecutableDirectoryResolver) string {
	if resolver == nil {
		resolver = pathutils.NewExecutableDirectoryResolver()
	}

	executableDirectory, resolveError := resolver.Directory()
	if resolveError != nil {
		return ""
	}

	candidatePath := filepath.Join(executableDirectory, adjacentPipelineFileNameConstant)
	if _, statError := os.Stat(candidatePath); statError != nil {
		return ""
	}

	return candidatePath
}
