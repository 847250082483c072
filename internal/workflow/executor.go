package workflow

import (
	"context"
	"errors"
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
	workflowExecutionErrorTemplateConstant = "workflow operation %s failed: %w"
	workflowExecutorDependenciesMessage    = "workflow executor requires shell execution and banner dependencies"
	checkPassedBannerTextConstant          = "CHECK PASSED"
	checkFailedBannerTextConstant          = "CHECK FAILED"
	defaultPipelineLabelConstant           = "pipeline"
	logFieldOperationConstant              = "operation"
	logFieldDetailConstant                 = "detail"
	stepCompletedLogMessageConstant        = "pipeline step completed"
)

// Dependencies configures shared collaborators for pipeline execution.
type Dependencies struct {
	Logger          *zap.Logger
	ShellExecutor   *execshell.ShellExecutor
	BannerPrinter   *banner.Printer
	ChecksumService *artifacts.ChecksumService
	ScopeDetector   *pyenv.Detector
	Output          io.Writer
	Errors          io.Writer
}

// RuntimeOptions captures user-provided execution modifiers.
type RuntimeOptions struct {
	DryRun           bool
	WorkingDirectory string
	PipelineName     string
}

// Executor coordinates pipeline operation execution.
type Executor struct {
	operations   []Operation
	dependencies Dependencies
}

// NewExecutor constructs an Executor instance.
func NewExecutor(operations []Operation, dependencies Dependencies) *Executor {
	return &Executor{operations: append([]Operation{}, operations...), dependencies: dependencies}
}

// Execute runs pipeline operations in order, stopping at the first failure.
func (executor *Executor) Execute(executionContext context.Context, runtimeOptions RuntimeOptions) error {
	if executor.dependencies.ShellExecutor == nil || executor.dependencies.BannerPrinter == nil {
		return errors.New(workflowExecutorDependenciesMessage)
	}

	checksumService := executor.dependencies.ChecksumService
	if checksumService == nil {
		checksumService = artifacts.NewChecksumService()
	}
	scopeDetector := executor.dependencies.ScopeDetector
	if scopeDetector == nil {
		scopeDetector = pyenv.NewDetector()
	}

	environment := &Environment{
		ShellExecutor:   executor.dependencies.ShellExecutor,
		BannerPrinter:   executor.dependencies.BannerPrinter,
		ChecksumService: checksumService,
		ScopeDetector:   scopeDetector,
		Output:          executor.dependencies.Output,
		Errors:          executor.dependencies.Errors,
		Logger:          executor.dependencies.Logger,
		DryRun:          runtimeOptions.DryRun,
	}

	state := &State{WorkingDirectory: strings.TrimSpace(runtimeOptions.WorkingDirectory)}
	pipelineLabel := strings.TrimSpace(runtimeOptions.PipelineName)
	if len(pipelineLabel) == 0 {
		pipelineLabel = defaultPipelineLabelConstant
	}

	for operationIndex := range executor.operations {
		operation := executor.operations[operationIndex]
		if operation == nil {
			continue
		}

		if executeError := operation.Execute(executionContext, environment, state); executeError != nil {
			executor.printSummaryBanner(banner.ToneFailure, checkFailedBannerTextConstant, pipelineLabel)
			return fmt.Errorf(workflowExecutionErrorTemplateConstant, operation.Name(), executeError)
		}

		executor.logStepResult(state)
	}

	if summaryError := executor.printSummaryBanner(banner.ToneSuccess, checkPassedBannerTextConstant, pipelineLabel); summaryError != nil {
		return summaryError
	}

	return nil
}

func (executor *Executor) printSummaryBanner(tone banner.Tone, outcomeText string, pipelineLabel string) error {
	if executor.dependencies.BannerPrinter == nil {
		return nil
	}
	return executor.dependencies.BannerPrinter.PrintBanner2LinesWithTone(tone, outcomeText, pipelineLabel)
}

func (executor *Executor) logStepResult(state *State) {
	if executor.dependencies.Logger == nil || state == nil || len(state.StepResults) == 0 {
		return
	}

	latestResult := state.StepResults[len(state.StepResults)-1]
	executor.dependencies.Logger.Debug(
		stepCompletedLogMessageConstant,
		zap.String(logFieldOperationConstant, string(latestResult.Operation)),
		zap.String(logFieldDetailConstant, latestResult.Detail),
	)
}
