package check

import "strings"

const (
	defaultColorModeConstant                 = "disabled"
	configurationPipelineKeyConstant         = "pipeline"
	configurationWorkingDirectoryKeyConstant = "working_directory"
	configurationColorKeyConstant            = "color"
	configurationVenvModeKeyConstant         = "venv_mode"
	configurationDryRunKeyConstant           = "dry_run"
)

// CommandConfiguration captures configuration values for check.
type CommandConfiguration struct {
	Pipeline         string `mapstructure:"pipeline"`
	WorkingDirectory string `mapstructure:"working_directory"`
	Color            string `mapstructure:"color"`
	VenvMode         string `mapstructure:"venv_mode"`
	DryRun           bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides default check command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Color: defaultColorModeConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the check command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationPipelineKeyConstant:         defaults.Pipeline,
		rootKey + "." + configurationWorkingDirectoryKeyConstant: defaults.WorkingDirectory,
		rootKey + "." + configurationColorKeyConstant:            defaults.Color,
		rootKey + "." + configurationVenvModeKeyConstant:         defaults.VenvMode,
		rootKey + "." + configurationDryRunKeyConstant:           defaults.DryRun,
	}
}

// Sanitize normalizes configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Pipeline = strings.TrimSpace(configuration.Pipeline)
	sanitized.WorkingDirectory = strings.TrimSpace(configuration.WorkingDirectory)
	sanitized.Color = strings.ToLower(strings.TrimSpace(configuration.Color))
	sanitized.VenvMode = strings.ToLower(strings.TrimSpace(configuration.VenvMode))
	return sanitized
}
