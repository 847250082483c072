package flags

import "github.com/spf13/cobra"

const (
	// DefaultPipelineFlagName exposes the shared pipeline definition flag name.
	DefaultPipelineFlagName = "pipeline"
	// DefaultPipelineFlagUsage describes the shared pipeline definition flag purpose.
	DefaultPipelineFlagUsage = "Path to the pipeline definition file"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview commands without executing them"
	// ColorFlagName exposes the shared banner color flag name.
	ColorFlagName = "color"
	// ColorFlagUsage describes the shared banner color flag purpose.
	ColorFlagUsage = "Colorize summary banners"
	// VenvFlagName exposes the shared installation scope flag name.
	VenvFlagName = "venv"
	// VenvFlagUsage describes the shared installation scope flag purpose.
	VenvFlagUsage = "Installation scope for package installs"
)

// PipelineFlagDefinition captures configuration for the pipeline definition flag.
type PipelineFlagDefinition struct {
	Name       string
	Usage      string
	Enabled    bool
	Persistent bool
}

// PipelineFlagValues stores pipeline definition flag values.
type PipelineFlagValues struct {
	Path string
}

// BindPipelineFlag attaches the standard pipeline definition flag to the provided command.
func BindPipelineFlag(command *cobra.Command, defaults PipelineFlagValues, definition PipelineFlagDefinition) *PipelineFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DefaultPipelineFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DefaultPipelineFlagUsage
	}

	targetSet := command.PersistentFlags()
	if !definition.Persistent {
		targetSet = command.Flags()
	}

	if targetSet.Lookup(flagName) == nil {
		targetSet.StringVar(&values.Path, flagName, values.Path, flagUsage)
	}

	if definition.Persistent {
		if command.Flags().Lookup(flagName) == nil {
			if persistentFlag := targetSet.Lookup(flagName); persistentFlag != nil {
				command.Flags().AddFlag(persistentFlag)
			}
		}
	}

	return &values
}
