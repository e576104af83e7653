package internal

import (
	"fmt"

	"github.com/glkt/upkeep/internal/logger"

	"github.com/spf13/cobra"
)

var Version = "dev"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upkeep",
		Short: "Keep locally-installed applications up to date",
		Long: `Upkeep synchronizes a declared set of locally-installed applications
(git/hg checkouts, downloaded files, downloaded archives) with their upstream
sources, each on its own update schedule.`,
		Example: `upkeep manage --type file`,
		Run: func(cmd *cobra.Command, _ []string) {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				fmt.Printf("Version: %s\n", Version)
				return
			}
			_ = cmd.Help()
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.ConfigureLoggerFromFlags()
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")
	cmd.PersistentFlags().CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Increase log verbosity")
	cmd.PersistentFlags().BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().BoolVar(&logger.FlagSilent, "silent", false, "Suppress all output")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	logger.ConfigureLoggerFromFlags()

	root := NewRootCmd()

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
