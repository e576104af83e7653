package globalconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/utils/pathutils"

	"gopkg.in/yaml.v3"
)

// PersistentConfig points at the two files upkeep works against: the
// declarative registry and the update-state file.
type PersistentConfig struct {
	RegistryFile string `yaml:"registry_file"`
	StateFile    string `yaml:"state_file"`
}

const (
	configDir  = ".config/upkeep"
	configFile = "config.yml"
)

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func DefaultRegistryPath() string {
	return filepath.Join("~", configDir, "applications.yml")
}

func DefaultStatePath() string {
	return filepath.Join("~", ".local/state/upkeep", "update-data.json")
}

func LoadPersistentConfig() (*PersistentConfig, error) {
	fullConfigDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	configPath := filepath.Join(fullConfigDir, configFile)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s", errs.Msg(errs.MissingConfig))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg PersistentConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	registryPath, err := pathutils.ToAbsolutePath(cfg.RegistryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve registry file path: %w", err)
	}
	statePath, err := pathutils.ToAbsolutePath(cfg.StateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state file path: %w", err)
	}

	cfg.RegistryFile = registryPath
	cfg.StateFile = statePath
	return &cfg, nil
}

func (c *PersistentConfig) Save() error {
	configDirRights := 0o755
	configFileRights := 0o644

	fullConfigDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fullConfigDir, os.FileMode(configDirRights)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *c
	if out.RegistryFile, err = pathutils.ToHomePathFormat(out.RegistryFile); err != nil {
		return fmt.Errorf("failed to convert registry path: %w", err)
	}
	if out.StateFile, err = pathutils.ToHomePathFormat(out.StateFile); err != nil {
		return fmt.Errorf("failed to convert state path: %w", err)
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(filepath.Join(fullConfigDir, configFile), data, os.FileMode(configFileRights))
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
