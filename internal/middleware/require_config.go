package middleware

import (
	"context"
	"fmt"

	"github.com/glkt/upkeep/internal/globalconfig"
	"github.com/spf13/cobra"
)

// RequireConfig loads the persistent configuration and stores it in the
// command context.
func RequireConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	pconf, err := globalconfig.LoadPersistentConfig()
	if err != nil {
		return fmt.Errorf("missing config: %w", err)
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyPConfig, pconf)
	cmd.SetContext(ctx)

	return next(cmd, args)
}
