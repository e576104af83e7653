package initiator

import (
	"os"
	"path/filepath"

	"github.com/glkt/upkeep/internal/globalconfig"
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/utils/pathutils"
)

type Initiator struct {
	RegistryPath string
	StatePath    string
}

func New(registryPath, statePath string) *Initiator {
	if registryPath == "" {
		registryPath = globalconfig.DefaultRegistryPath()
	}
	if statePath == "" {
		statePath = globalconfig.DefaultStatePath()
	}
	return &Initiator{
		RegistryPath: registryPath,
		StatePath:    statePath,
	}
}

func (i *Initiator) Execute() error {
	registryPath := pathutils.Expand(i.RegistryPath)
	statePath := pathutils.Expand(i.StatePath)

	if _, err := os.Stat(registryPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(registryPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(registryPath, []byte("applications: {}\n"), 0o644); err != nil {
			return err
		}
		logger.Success("Created empty registry at %s", registryPath)
	}

	cfg := &globalconfig.PersistentConfig{
		RegistryFile: registryPath,
		StateFile:    statePath,
	}
	return cfg.Save()
}
