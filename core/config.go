package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "todos.config.yml"

type Config struct {
	OutputDir    string `yaml:"outputDir"`
	PublicDir    string `yaml:"publicDir"`
	TemplatesDir string `yaml:"templatesDir"`
	DebugHeaders bool   `yaml:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs"`
	LogFormat    string `yaml:"logFormat"`
	MaxFormBytes int64  `yaml:"maxFormBytes"`
}

func DefaultConfig() Config {
	return Config{
		OutputDir:    "./cache",
		PublicDir:    "public",
		LogFormat:    "text",
		MaxFormBytes: 1 << 20,
	}
}

// LoadConfig reads a YAML config file. A missing file yields the defaults;
// fields left empty in the file are filled from them.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return Config{}, fmt.Errorf("apply config defaults: %w", err)
	}

	if cfg.MaxFormBytes < 0 {
		return Config{}, fmt.Errorf("maxFormBytes must not be negative, got %d", cfg.MaxFormBytes)
	}

	return cfg, nil
}
