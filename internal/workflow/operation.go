package workflow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pyrel/internal/artifacts"
	"github.com/temirov/pyrel/internal/banner"
	"github.com/temirov/pyrel/internal/execshell"
	"github.com/temirov/pyrel/internal/pyenv"
)

const (
	plannedCommandTemplateConstant          = "PLANNED: %s\n"
	plannedCommandDirectoryTemplateConstant = "PLANNED: %s (in %s)\n"
)

// Operation coordinates a single pipeline step.
type Operation interface {
	Name() string
	Execute(executionContext context.Context, environment *Environment, state *State) error
}

// Environment exposes shared dependencies for pipeline operations.
type Environment struct {
	ShellExecutor   *execshell.ShellExecutor
	BannerPrinter   *banner.Printer
	ChecksumService *artifacts.ChecksumService
	ScopeDetector   *pyenv.Detector
	Output          io.Writer
	Errors          io.Writer
	Logger          *zap.Logger
	DryRun          bool
}

// State carries run-scoped values shared across pipeline operations.
type State struct {
	WorkingDirectory string
	StepResults      []StepResult
}

// StepResult records a completed pipeline step.
type StepResult struct {
	Operation OperationType
	Detail    string
}

func (state *State) recordStepResult(operation OperationType, detail string) {
	if state == nil {
		return
	}
	state.StepResults = append(state.StepResults, StepResult{Operation: operation, Detail: detail})
}

// resolveDirectory prefers the operation's directory and falls back to the run-level working directory.
func resolveDirectory(operationDirectory string, state *State) string {
	trimmedDirectory := strings.TrimSpace(operationDirectory)
	if len(trimmedDirectory) > 0 {
		return trimmedDirectory
	}
	if state != nil {
		return strings.TrimSpace(state.WorkingDirectory)
	}
	return ""
}

func printOutcomeBanner(environment *Environment, tone banner.Tone, bannerText string) error {
	if environment == nil || environment.BannerPrinter == nil {
		return nil
	}
	return environment.BannerPrinter.PrintBannerWithTone(tone, bannerText)
}

func writePlannedCommand(environment *Environment, commandWords []string, workingDirectory string) {
	if environment == nil || environment.Output == nil {
		return
	}

	commandLine := strings.Join(commandWords, " ")
	if len(strings.TrimSpace(workingDirectory)) > 0 {
		fmt.Fprintf(environment.Output, plannedCommandDirectoryTemplateConstant, commandLine, workingDirectory)
		return
	}
	fmt.Fprintf(environment.Output, plannedCommandTemplateConstant, commandLine)
}
