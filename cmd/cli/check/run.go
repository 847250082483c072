package check

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pyrel/internal/artifacts"
	"github.com/temirov/pyrel/internal/banner"
	"github.com/temirov/pyrel/internal/execshell"
	"github.com/temirov/pyrel/internal/pyenv"
	"github.com/temirov/pyrel/internal/ui"
	"github.com/temirov/pyrel/internal/utils"
	flagutils "github.com/temirov/pyrel/internal/utils/flags"
	pathutils "github.com/temirov/pyrel/internal/utils/path"
	"github.com/temirov/pyrel/internal/workflow"
)

const (
	commandUseConstant                     = "check [pipeline]"
	commandShortDescriptionConstant        = "Run the package verification pipeline"
	commandLongDescriptionConstant         = "check executes the verification steps declared in a pipeline document: the pytest suite, package installs, example commands, and artifact checksums."
	adjacentPipelineFileNameConstant       = "pyrel-pipeline.yaml"
	loadPipelineErrorTemplateConstant      = "unable to load pipeline definition: %w"
	embeddedPipelineErrorTemplateConstant  = "unable to parse embedded pipeline definition: %w"
	buildOperationsErrorTemplateConstant   = "unable to build pipeline operations: %w"
	shellExecutorErrorTemplateConstant     = "unable to construct shell executor: %w"
	bannerPrinterErrorTemplateConstant     = "unable to construct banner printer: %w"
	configurationAppliedLogMessageConstant = "configuration file applied"
	logFieldConfigurationPathConstant      = "path"
)

//go:embed default_pipeline.yaml
var defaultPipelineDocument []byte

// CommandBuilder assembles the check command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	CommandRunner                execshell.CommandRunner
	EnvironmentLookup            pyenv.EnvironmentLookup
	ExecutableResolver           *pathutils.ExecutableDirectoryResolver
}

// Build constructs the check command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	flagutils.BindPipelineFlag(command, flagutils.PipelineFlagValues{}, flagutils.PipelineFlagDefinition{Enabled: true})
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun: flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
	})
	flagutils.AddToggleFlag(command.Flags(), nil, flagutils.ColorFlagName, "", false, flagutils.ColorFlagUsage)
	command.Flags().String(flagutils.VenvFlagName, "", flagutils.FormatChoiceUsage("", installScopeChoices(), flagutils.VenvFlagUsage))

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := resolveLogger(builder.LoggerProvider)

	contextAccessor := utils.NewCommandContextAccessor()
	if configurationFilePath, pathAvailable := contextAccessor.ConfigurationFilePath(command.Context()); pathAvailable {
		logger.Debug(configurationAppliedLogMessageConstant, zap.String(logFieldConfigurationPathConstant, configurationFilePath))
	}

	pipelineConfiguration, pipelineError := builder.resolvePipelineConfiguration(command, arguments, configuration)
	if pipelineError != nil {
		return pipelineError
	}

	operations, operationsError := workflow.BuildOperations(pipelineConfiguration)
	if operationsError != nil {
		return fmt.Errorf(buildOperationsErrorTemplateConstant, operationsError)
	}

	colorMode, colorError := resolveColorMode(command, configuration)
	if colorError != nil {
		return colorError
	}

	scopeDetector, scopeError := builder.resolveScopeDetector(command, configuration)
	if scopeError != nil {
		return scopeError
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return fmt.Errorf(shellExecutorErrorTemplateConstant, executorError)
	}
	if humanReadableLogging {
		shellExecutor = shellExecutor.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	bannerPrinter, printerError := banner.NewPrinter(banner.PrinterOptions{Writer: outputWriter, ColorMode: colorMode})
	if printerError != nil {
		return fmt.Errorf(bannerPrinterErrorTemplateConstant, printerError)
	}

	dependencies := workflow.Dependencies{
		Logger:          logger,
		ShellExecutor:   shellExecutor,
		BannerPrinter:   bannerPrinter,
		ChecksumService: artifacts.NewChecksumService(),
		ScopeDetector:   scopeDetector,
		Output:          outputWriter,
		Errors:          utils.NewFlushingWriter(command.ErrOrStderr()),
	}

	dryRun := configuration.DryRun
	if command.Flags().Changed(flagutils.DryRunFlagName) {
		dryRun, _ = command.Flags().GetBool(flagutils.DryRunFlagName)
	}

	runtimeOptions := workflow.RuntimeOptions{
		DryRun:           dryRun,
		WorkingDirectory: configuration.WorkingDirectory,
		PipelineName:     pipelineConfiguration.Name,
	}

	pipelineExecutor := workflow.NewExecutor(operations, dependencies)
	return workflow.WrapExitCode(pipelineExecutor.Execute(command.Context(), runtimeOptions))
}

func (builder *CommandBuilder) resolvePipelineConfiguration(command *cobra.Command, arguments []string, configuration CommandConfiguration) (workflow.Configuration, error) {
	pipelinePath := ""
	if len(arguments) > 0 {
		pipelinePath = strings.TrimSpace(arguments[0])
	}

	if len(pipelinePath) == 0 && command.Flags().Changed(flagutils.DefaultPipelineFlagName) {
		flagValue, _ := command.Flags().GetString(flagutils.DefaultPipelineFlagName)
		pipelinePath = strings.TrimSpace(flagValue)
	}

	if len(pipelinePath) == 0 {
		pipelinePath = configuration.Pipeline
	}

	if len(pipelinePath) == 0 {
		pipelinePath = adjacentPipelinePath(builder.ExecutableResolver)
	}

	if len(pipelinePath) > 0 {
		loadedConfiguration, loadError := workflow.LoadConfiguration(pipelinePath)
		if loadError != nil {
			return workflow.Configuration{}, fmt.Errorf(loadPipelineErrorTemplateConstant, loadError)
		}
		return loadedConfiguration, nil
	}

	embeddedConfiguration, parseError := workflow.ParseConfiguration(defaultPipelineDocument)
	if parseError != nil {
		return workflow.Configuration{}, fmt.Errorf(embeddedPipelineErrorTemplateConstant, parseError)
	}
	return embeddedConfiguration, nil
}

func (builder *CommandBuilder) resolveScopeDetector(command *cobra.Command, configuration CommandConfiguration) (*pyenv.Detector, error) {
	venvMode := configuration.VenvMode
	if command.Flags().Changed(flagutils.VenvFlagName) {
		flagValue, _ := command.Flags().GetString(flagutils.VenvFlagName)
		venvMode = strings.TrimSpace(flagValue)
	}

	scopeDetector := pyenv.NewDetectorWithLookup(builder.EnvironmentLookup)
	if len(venvMode) == 0 {
		return scopeDetector, nil
	}

	pinnedScope, scopeError := pyenv.ParseInstallScope(venvMode)
	if scopeError != nil {
		return nil, scopeError
	}

	return scopeDetector.WithDefaultScope(pinnedScope), nil
}

func resolveColorMode(command *cobra.Command, configuration CommandConfiguration) (banner.ColorMode, error) {
	if command.Flags().Changed(flagutils.ColorFlagName) {
		colorEnabled, _ := command.Flags().GetBool(flagutils.ColorFlagName)
		if colorEnabled {
			return banner.ColorModeEnabled, nil
		}
		return banner.ColorModeDisabled, nil
	}

	if len(configuration.Color) == 0 {
		return banner.ColorModeDisabled, nil
	}

	return banner.ParseColorMode(configuration.Color)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}
