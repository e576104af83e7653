package internal

import (
	"fmt"

	"github.com/glkt/upkeep/internal/globalconfig"
	"github.com/glkt/upkeep/internal/registry"

	"github.com/spf13/cobra"
)

// NewIDsCmd prints the declared application ids, one per line. Validation is
// skipped to keep shell completion fast.
func NewIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "ids",
		Short:  "Print all declared application ids",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := enumerateAppIDs()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func enumerateAppIDs() ([]string, error) {
	pconf, err := globalconfig.LoadPersistentConfig()
	if err != nil {
		return nil, err
	}
	apps, err := registry.Load(pconf.RegistryFile, false)
	if err != nil {
		return nil, err
	}
	return registry.SortedIDs(apps), nil
}
