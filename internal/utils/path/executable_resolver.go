package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
)

const executableResolutionErrorTemplateConstant = "unable to resolve executable path: %w"

// ExecutablePathLookup returns the path of the running binary.
type ExecutablePathLookup func() (string, error)

// ExecutableDirectoryResolver locates the directory containing the running binary.
type ExecutableDirectoryResolver struct {
	executablePathLookup ExecutablePathLookup
}

// NewExecutableDirectoryResolver constructs a resolver backed by os.Executable.
func NewExecutableDirectoryResolver() *ExecutableDirectoryResolver {
	return NewExecutableDirectoryResolverWithLookup(os.Executable)
}

// NewExecutableDirectoryResolverWithLookup constructs a resolver with a custom binary path lookup.
func NewExecutableDirectoryResolverWithLookup(lookup ExecutablePathLookup) *ExecutableDirectoryResolver {
	if lookup == nil {
		lookup = os.Executable
	}
	return &ExecutableDirectoryResolver{executablePathLookup: lookup}
}

// Directory resolves the running binary's directory after following symlinks.
func (resolver *ExecutableDirectoryResolver) Directory() (string, error) {
	executablePath, lookupError := resolver.executablePathLookup()
	if lookupError != nil {
		return "", fmt.Errorf(executableResolutionErrorTemplateConstant, lookupError)
	}

	resolvedPath, symlinkError := filepath.EvalSymlinks(executablePath)
	if symlinkError != nil {
		return "", fmt.Errorf(executableResolutionErrorTemplateConstant, symlinkError)
	}

	return filepath.Dir(resolvedPath), nil
}
