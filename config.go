package gridsheet

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/shibukawa/gridsheet/formula"
	"github.com/shibukawa/gridsheet/render"
	"github.com/shibukawa/gridsheet/sheet"
)

// DefaultConfigFile is the configuration file looked up by the CLI
const DefaultConfigFile = "gridsheet.yaml"

// Config represents the gridsheet configuration
type Config struct {
	Parse  ParseConfig  `yaml:"parse"`
	Output OutputConfig `yaml:"output"`
}

// ParseConfig represents input splitting and classification settings
type ParseConfig struct {
	Delimiter     string `yaml:"delimiter"`
	FormulaMarker string `yaml:"formula_marker"`
	// StrictFormula reports unrecognized formula characters as errors
	// instead of ending the token stream there.
	StrictFormula bool `yaml:"strict_formula"`
}

// OutputConfig represents rendering settings
type OutputConfig struct {
	Format string `yaml:"format"`
	Color  *bool  `yaml:"color"` // Pointer to distinguish between unset and false
}

// ColorEnabled returns true unless color is explicitly disabled
func (o OutputConfig) ColorEnabled() bool {
	return o.Color == nil || *o.Color
}

// SheetOptions converts the parse settings to sheet.Options
func (c *Config) SheetOptions() sheet.Options {
	return sheet.Options{
		Delimiter:     c.Parse.Delimiter,
		FormulaMarker: c.Parse.FormulaMarker,
		Lexer: formula.Options{
			StrictCharacters: c.Parse.StrictFormula,
		},
	}
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	p := config.Parse

	if p.Delimiter == "" {
		return fmt.Errorf("%w: parse.delimiter must not be empty", ErrConfigValidation)
	}
	if strings.ContainsAny(p.Delimiter, "\r\n") {
		return fmt.Errorf("%w: parse.delimiter must not contain line breaks", ErrConfigValidation)
	}

	if p.FormulaMarker == "" {
		return fmt.Errorf("%w: parse.formula_marker must not be empty", ErrConfigValidation)
	}
	if strings.TrimSpace(p.FormulaMarker) != p.FormulaMarker {
		return fmt.Errorf("%w: parse.formula_marker must not start or end with whitespace", ErrConfigValidation)
	}
	// fields are split before they are classified
	if strings.Contains(p.FormulaMarker, p.Delimiter) {
		return fmt.Errorf("%w: parse.formula_marker '%s' must not contain the delimiter '%s'", ErrConfigValidation, p.FormulaMarker, p.Delimiter)
	}

	if config.Output.Format != "" && !render.IsValidFormat(config.Output.Format) {
		return fmt.Errorf("%w: output.format '%s' is invalid: must be one of table, markdown, json, yaml, xml", ErrConfigValidation, config.Output.Format)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Parse: ParseConfig{
			Delimiter:     ";",
			FormulaMarker: "=",
			StrictFormula: false,
		},
		Output: OutputConfig{
			Format: string(render.FormatTable),
			Color:  nil, // Enabled by default
		},
	}
}

// applyDefaults fills values left empty in the config file
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Parse.Delimiter == "" {
		config.Parse.Delimiter = defaults.Parse.Delimiter
	}
	if config.Parse.FormulaMarker == "" {
		config.Parse.FormulaMarker = defaults.Parse.FormulaMarker
	}
	if config.Output.Format == "" {
		config.Output.Format = defaults.Output.Format
	}
	config.Output.Format = strings.ToLower(config.Output.Format)
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in string settings
func expandConfigEnvVars(config *Config) {
	config.Parse.Delimiter = expandEnvVars(config.Parse.Delimiter)
	config.Parse.FormulaMarker = expandEnvVars(config.Parse.FormulaMarker)
	config.Output.Format = strings.ToLower(expandEnvVars(config.Output.Format))
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
