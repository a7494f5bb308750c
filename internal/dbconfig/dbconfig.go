// Package dbconfig loads the small optional YAML file that overrides
// the data directory and log level, grounded on JuniperBible's
// config.Load(path)/config.DefaultConfig() call pattern and on
// tinySQL's YAML struct-tag test style.
package dbconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the process's tunable settings. Absence of a config file
// is not an error — Load falls back to Default in that case.
type Config struct {
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in defaults: a relative "data" directory
// (resolved against the working directory), and info-level logging.
func Default() Config {
	return Config{DataDir: "data", LogLevel: "info"}
}

// Load reads and parses the YAML file at path, filling in Default's
// values for any field the file leaves unset. A missing file is not an
// error: Load returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Config{}, err
	}

	if parsed.DataDir != "" {
		cfg.DataDir = parsed.DataDir
	}
	if parsed.LogLevel != "" {
		cfg.LogLevel = parsed.LogLevel
	}

	return cfg, nil
}
