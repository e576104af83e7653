package internal

import (
	"github.com/glkt/upkeep/internal/initiator"
	"github.com/glkt/upkeep/internal/logger"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize upkeep configuration",
		Long: `Initialize upkeep configuration.
This command will:
- Create the configuration directory in ~/.config/upkeep
- Create an empty application registry if none exists
- Save the registry and state file paths in the global configuration`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registryPath, _ := cmd.Flags().GetString("registry")
			statePath, _ := cmd.Flags().GetString("state")

			if err := initiator.New(registryPath, statePath).Execute(); err != nil {
				return err
			}

			logger.Success("Initialized upkeep configuration")
			return nil
		},
	}

	cmd.Flags().String("registry", "", "Path of the application registry file")
	cmd.Flags().String("state", "", "Path of the update state file")

	return cmd
}
