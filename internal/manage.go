package internal

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/glkt/upkeep/internal/errs"
	"github.com/glkt/upkeep/internal/globalconfig"
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/manage"
	"github.com/glkt/upkeep/internal/middleware"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/state"

	"github.com/spf13/cobra"
)

func NewManageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manage [app_id...]",
		Short: "Synchronize declared applications with their upstream sources",
		Long: `Synchronize declared applications with their upstream sources.

Without arguments every declared application is considered; pass application
ids or --type to restrict the run. Applications are only fetched when their
update frequency says they are stale, unless --force-update is set.`,
		Example: `  upkeep manage
  upkeep manage firefox neovim
  upkeep manage --type git_repo --force-update`,
		ValidArgsFunction: completeAppIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appType, _ := cmd.Flags().GetString("type")
			force, _ := cmd.Flags().GetBool("force-update")

			if appType != "" && len(args) > 0 {
				return middleware.FlagComboError(errs.IDsWithType)
			}
			if appType != "" && !models.AppType(appType).Valid() {
				return middleware.FlagComboError(errs.InvalidType, appType)
			}

			pconf, err := middleware.Get[*globalconfig.PersistentConfig](cmd, middleware.CtxKeyPConfig)
			if err != nil {
				return err
			}
			apps, err := middleware.Get[map[string]*models.Application](cmd, middleware.CtxKeyRegistry)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			m := manage.New(apps, state.Load(pconf.StateFile), nil, nil)
			m.IDs = args
			m.TypeFilter = models.AppType(appType)
			m.Force = force

			if err := m.Execute(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Warn("Run canceled.")
					return err
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", "", "Only manage applications of this type")
	cmd.Flags().BoolP("force-update", "f", false, "Ignore update frequencies and update anyway")

	_ = cmd.RegisterFlagCompletionFunc("type",
		func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			types := make([]string, 0, len(models.AllTypes))
			for _, t := range models.AllTypes {
				types = append(types, string(t))
			}
			return types, cobra.ShellCompDirectiveNoFileComp
		})

	return cmd
}

// completeAppIDs backs shell completion; it goes through the fast,
// validation-free loader path.
func completeAppIDs(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	ids, err := enumerateAppIDs()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
