package middleware

import (
	"context"

	"github.com/glkt/upkeep/internal/globalconfig"
	"github.com/glkt/upkeep/internal/registry"
	"github.com/spf13/cobra"
)

// LoadRegistry parses and validates the application registry and stores the
// id -> Application mapping in the command context. Runs after RequireConfig.
func LoadRegistry(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	pconf, err := Get[*globalconfig.PersistentConfig](cmd, CtxKeyPConfig)
	if err != nil {
		return err
	}

	apps, err := registry.Load(pconf.RegistryFile, true)
	if err != nil {
		return err
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyRegistry, apps)
	cmd.SetContext(ctx)

	return next(cmd, args)
}
