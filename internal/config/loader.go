package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

const (
	userConfigDir  = ".config/btstack"
	configFileName = "config.yaml"
)

// LoadConfig loads the stack configuration by layering the defaults,
// the optional user config file, and the optional explicitly supplied
// file. Each layer is unmarshaled over the previous one, so a layer
// only overrides the keys it actually sets.
func LoadConfig(explicitPath string) (StackConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional; don't fail over an unresolvable home.
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			if err := mergeConfigFile(&config, userConfigPath); err != nil {
				return StackConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
		}
	}

	if explicitPath != "" {
		if err := mergeConfigFile(&config, explicitPath); err != nil {
			return StackConfig{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// mergeConfigFile unmarshals a YAML file over the accumulated config.
func mergeConfigFile(config *StackConfig, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}
