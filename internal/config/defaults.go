package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdfoutline"
)

// Default returns the default configuration
func Default() Config {
	return Config{
		Input:           "/app/input",
		Output:          "/app/output",
		Workers:         runtime.NumCPU(),
		DocumentTimeout: 60 * time.Second,
		ValidateOutput:  true,
		WatchDebounce:   500 * time.Millisecond,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Analysis: pdfoutline.DefaultConfig(),
	}
}

// setDefaults registers every leaf of cfg as a viper default so nested keys
// can be overridden one at a time from the file or the environment
func setDefaults(v *viper.Viper, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to decode defaults: %w", err)
	}
	setLeaves(v, "", tree)
	return nil
}

func setLeaves(v *viper.Viper, prefix string, tree map[string]any) {
	for key, val := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := val.(map[string]any); ok {
			setLeaves(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}
