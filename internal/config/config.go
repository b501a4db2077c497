// Package config provides configuration loading for bionet.
// Settings come from defaults, an optional YAML file, environment variables
// and finally command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/bionet/internal/constants"
)

// DefaultFileName is the config file picked up from the working directory
// when no path is given.
const DefaultFileName = "bionet.yaml"

// BionetConfig contains all bionet configuration settings.
type BionetConfig struct {
	// Source is the connectome workbook: an .xls/.xlsx file or a directory
	// of CSV sheets.
	Source string `json:"source" yaml:"source" validate:"required"`

	// Output controls where and how the network file is written.
	Output OutputConfig `json:"output" yaml:"output"`

	// Weights bounds the randomized synapse weights.
	Weights WeightsConfig `json:"weights" yaml:"weights"`

	// Random configures the weight generator.
	Random RandomConfig `json:"random" yaml:"random"`

	// Logging contains settings for operational and decision logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// OutputConfig configures the network file.
type OutputConfig struct {
	Path string `json:"path" yaml:"path" validate:"required"`

	// Format is "expanded" (one record per synapse) or "legacy" (one record
	// per connected pair). Empty means expanded.
	Format string `json:"format" yaml:"format" validate:"omitempty,oneof=expanded legacy"`
}

// WeightsConfig bounds synapse weights. Both ends lie in [0, 1] and
// Min <= Max.
type WeightsConfig struct {
	Min float32 `json:"min" yaml:"min" validate:"gte=0,lte=1,ltefield=Max"`
	Max float32 `json:"max" yaml:"max" validate:"gte=0,lte=1"`
}

// RandomConfig configures the weight generator.
type RandomConfig struct {
	Seed int64 `json:"seed" yaml:"seed"`

	// Generator is "go" or "java"; empty means go. The java generator
	// reproduces weights written by java.util.Random-based tools for the
	// same seed.
	Generator string `json:"generator" yaml:"generator" validate:"omitempty,oneof=go java"`
}

// LoggingConfig configures bionet's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables decision logging to DecisionDir.
	Level string `json:"level" yaml:"level" validate:"omitempty,oneof=info debug trace"`

	// DecisionDir receives decisions.jsonl at debug and trace level.
	// Empty disables the decision log.
	DecisionDir string `json:"decision_dir,omitempty" yaml:"decision_dir,omitempty"`
}

var validate = validator.New()

// Default returns a BionetConfig with the converter's stock settings.
func Default() *BionetConfig {
	return &BionetConfig{
		Source: constants.DefaultConnectomePath,
		Output: OutputConfig{
			Path:   constants.DefaultNetworkPath,
			Format: "expanded",
		},
		Weights: WeightsConfig{
			Min: constants.DefaultMinSynapseWeight,
			Max: constants.DefaultMaxSynapseWeight,
		},
		Random: RandomConfig{
			Seed:      constants.DefaultRandomSeed,
			Generator: "go",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and
// the environment. An empty path falls back to ./bionet.yaml when it exists.
// The result is not validated; call Validate once flags are applied.
func Load(path string) (*BionetConfig, error) {
	config := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFileName); err == nil {
			path = DefaultFileName
		}
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file on top of the
// defaults.
func LoadFromFile(path string) (*BionetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	config.Source = expandEnvVars(config.Source)
	config.Output.Path = expandEnvVars(config.Output.Path)
	config.Logging.DecisionDir = expandEnvVars(config.Logging.DecisionDir)

	return config, nil
}

// WriteDefault writes the default configuration to path. An existing file
// is left untouched and reported as an error.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	header := "# bionet configuration\n# Environment variables BIONET_* override these values; flags override both.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *BionetConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError turns the first field failure into a readable
// message naming the YAML key.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	e := verrs[0]
	field := yamlKey(e.Namespace())
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", field)
	case "gte":
		return fmt.Errorf("%s: must be at least %s, got %v", field, e.Param(), e.Value())
	case "lte":
		return fmt.Errorf("%s: must not exceed %s, got %v", field, e.Param(), e.Value())
	case "ltefield":
		return fmt.Errorf("%s: must not exceed weights.max, got %v", field, e.Value())
	case "oneof":
		return fmt.Errorf("%s: invalid value %q (valid: %s)", field, e.Value(), strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}

// yamlKey maps a validator namespace like "BionetConfig.Weights.Min" to
// "weights.min".
func yamlKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}

// applyEnvOverrides applies BIONET_* environment variables to the config.
func applyEnvOverrides(config *BionetConfig) error {
	if v := os.Getenv("BIONET_SOURCE"); v != "" {
		config.Source = v
	}
	if v := os.Getenv("BIONET_OUTPUT"); v != "" {
		config.Output.Path = v
	}
	if v := os.Getenv("BIONET_FORMAT"); v != "" {
		config.Output.Format = v
	}
	if v := os.Getenv("BIONET_GENERATOR"); v != "" {
		config.Random.Generator = v
	}
	if v := os.Getenv("BIONET_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("BIONET_DECISION_DIR"); v != "" {
		config.Logging.DecisionDir = v
	}

	if v := os.Getenv("BIONET_MIN_WEIGHT"); v != "" {
		f, err := ParseWeight(v)
		if err != nil {
			return fmt.Errorf("BIONET_MIN_WEIGHT: %w", err)
		}
		config.Weights.Min = f
	}
	if v := os.Getenv("BIONET_MAX_WEIGHT"); v != "" {
		f, err := ParseWeight(v)
		if err != nil {
			return fmt.Errorf("BIONET_MAX_WEIGHT: %w", err)
		}
		config.Weights.Max = f
	}
	if v := os.Getenv("BIONET_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("BIONET_SEED: invalid seed %q", v)
		}
		config.Random.Seed = n
	}
	return nil
}

// ParseWeight parses a synapse weight bound.
func ParseWeight(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("invalid weight %q", s)
	}
	return float32(f), nil
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
