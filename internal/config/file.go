package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable pointing at the defaults file
const EnvConfigPath = "PNG2WEBP_CONFIG"

// Defaults is the optional, read-only YAML file that seeds Settings
type Defaults struct {
	DownloadDirectory string   `yaml:"download_directory"`
	Quality           *float64 `yaml:"quality"`
	Language          string   `yaml:"language"`
	WatchDirectory    string   `yaml:"watch_directory"`
	Multiple          *bool    `yaml:"multiple"`
}

// LoadFile reads defaults from path. A missing file yields empty defaults.
func LoadFile(path string) (Defaults, error) {
	var d Defaults
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("failed to parse config file: %w", err)
	}
	return d, nil
}

// LoadFromEnv loads defaults from the file named by PNG2WEBP_CONFIG
func LoadFromEnv() (Defaults, error) {
	return LoadFile(os.Getenv(EnvConfigPath))
}
