package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "user",
			choices:        []string{"user", "system"},
			description:    "Install packages into the USER or system site.",
			expectedOutput: "`<USER|system>` Install packages into the USER or system site.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "disabled",
			choices:        []string{"enabled", "disabled"},
			description:    "Colorize summary banners.",
			expectedOutput: "`<enabled|DISABLED>` Colorize summary banners.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "enabled",
			choices:        []string{"enabled", "disabled"},
			description:    "",
			expectedOutput: "`<ENABLED|disabled>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "system",
			choices:        []string{"system", "system", "user", "user"},
			description:    "Select the installation scope.",
			expectedOutput: "`<SYSTEM|user>` Select the installation scope.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "user",
			choices:        []string{" user ", " system "},
			description:    "Pick a scope.",
			expectedOutput: "`<USER|system>` Pick a scope.",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}
