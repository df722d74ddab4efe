// Package config loads the pdfoutline configuration from defaults, an
// optional YAML file, PDFOUTLINE_* environment variables and command line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfoutline"
)

// EnvPrefix is the prefix of environment variables read by the loader
const EnvPrefix = "PDFOUTLINE"

// Config is the effective configuration of a run
type Config struct {
	// Input is the directory scanned for *.pdf files
	Input string `mapstructure:"input" yaml:"input"`

	// Output is the directory JSON results are written to
	Output string `mapstructure:"output" yaml:"output"`

	// Workers is the number of documents processed in parallel
	Workers int `mapstructure:"workers" yaml:"workers"`

	// DocumentTimeout bounds the processing time of one document
	DocumentTimeout time.Duration `mapstructure:"document_timeout" yaml:"-"`

	// ValidateOutput checks every result against the output schema before
	// it is written
	ValidateOutput bool `mapstructure:"validate_output" yaml:"validate_output"`

	// WatchDebounce is how long watch mode waits for a file to stop
	// changing before processing it
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Analysis tunes the outline heuristics
	Analysis pdfoutline.Config `mapstructure:"analysis" yaml:"analysis"`
}

// LogConfig selects the log handler
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level"`

	// Format is text or json
	Format string `mapstructure:"format" yaml:"format"`
}

// New returns a viper instance with defaults, environment binding and the
// config file loaded. cfgFile may be empty, in which case pdfoutline.yaml
// is looked up in the working directory and $HOME/.pdfoutline. A missing
// file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	if err := setDefaults(v, Default()); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pdfoutline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pdfoutline")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Input) == "" {
		errs = append(errs, errors.New("input directory is required"))
	}
	if strings.TrimSpace(c.Output) == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.DocumentTimeout <= 0 {
		errs = append(errs, fmt.Errorf("document_timeout must be positive, got %s", c.DocumentTimeout))
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}

	a := c.Analysis
	if a.Font.SizePrecision <= 0 {
		errs = append(errs, errors.New("analysis.font.size_precision must be positive"))
	}
	if a.Heading.Threshold < 0 {
		errs = append(errs, errors.New("analysis.heading.threshold must not be negative"))
	}
	if a.Heading.MinChars > a.Heading.MaxChars {
		errs = append(errs, errors.New("analysis.heading.min_chars exceeds max_chars"))
	}
	if a.Title.MaxMergedLines < 1 {
		errs = append(errs, errors.New("analysis.title.max_merged_lines must be at least 1"))
	}
	if r := a.RunningText.MinOccurrenceRatio; r <= 0 || r > 1 {
		errs = append(errs, fmt.Errorf("analysis.running_text.min_occurrence_ratio must be in (0, 1], got %v", r))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// MarshalYAML writes durations in their string form
func (c Config) MarshalYAML() (any, error) {
	type plain Config
	return struct {
		plain           `yaml:",inline"`
		DocumentTimeout string `yaml:"document_timeout"`
		WatchDebounce   string `yaml:"watch_debounce"`
	}{plain(c), c.DocumentTimeout.String(), c.WatchDebounce.String()}, nil
}

// Write writes the configuration as YAML to path
func (c *Config) Write(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// YAML returns the configuration as a YAML document
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# pdfoutline configuration\n# Every key can be overridden with a PDFOUTLINE_ environment variable,\n# e.g. PDFOUTLINE_ANALYSIS_HEADING_THRESHOLD=0.8\n\n")
	return append(header, data...), nil
}
