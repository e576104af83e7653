package internal

import (
	"github.com/glkt/upkeep/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	NewInitCmd,
	middleware.UseMiddlewareChain(middleware.RequireConfig, middleware.LoadRegistry)(NewManageCmd),
	middleware.UseMiddlewareChain(middleware.RequireConfig, middleware.LoadRegistry)(NewListCmd),
	NewIDsCmd,
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
