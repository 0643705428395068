package gridsheet

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(config *Config)
		message string
	}{
		{
			name:    "empty delimiter",
			modify:  func(config *Config) { config.Parse.Delimiter = "" },
			message: "parse.delimiter must not be empty",
		},
		{
			name:    "line break delimiter",
			modify:  func(config *Config) { config.Parse.Delimiter = "\n" },
			message: "must not contain line breaks",
		},
		{
			name:    "empty marker",
			modify:  func(config *Config) { config.Parse.FormulaMarker = "" },
			message: "parse.formula_marker must not be empty",
		},
		{
			name:    "marker with spaces",
			modify:  func(config *Config) { config.Parse.FormulaMarker = " =" },
			message: "whitespace",
		},
		{
			name: "marker containing delimiter",
			modify: func(config *Config) {
				config.Parse.Delimiter = ";"
				config.Parse.FormulaMarker = ";="
			},
			message: "must not contain the delimiter",
		},
		{
			name:    "unknown format",
			modify:  func(config *Config) { config.Output.Format = "csv" },
			message: "output.format 'csv' is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := getDefaultConfig()
			tt.modify(config)

			err := validateConfig(config)
			assert.True(t, errors.Is(err, ErrConfigValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateConfig_Defaults(t *testing.T) {
	assert.NoError(t, validateConfig(getDefaultConfig()))
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	configPath := writeConfig(t, `
output:
  format: html
`)

	_, err := LoadConfig(configPath)
	assert.True(t, errors.Is(err, ErrConfigValidation))
}
