package internal

import (
	"github.com/glkt/upkeep/internal/globalconfig"
	"github.com/glkt/upkeep/internal/list"
	"github.com/glkt/upkeep/internal/middleware"
	"github.com/glkt/upkeep/internal/models"

	"github.com/spf13/cobra"
)

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all declared applications and their update status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pconf, err := middleware.Get[*globalconfig.PersistentConfig](cmd, middleware.CtxKeyPConfig)
			if err != nil {
				return err
			}
			apps, err := middleware.Get[map[string]*models.Application](cmd, middleware.CtxKeyRegistry)
			if err != nil {
				return err
			}

			return list.New(apps, pconf.StateFile).Execute()
		},
	}
}
