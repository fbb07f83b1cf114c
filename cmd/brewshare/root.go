package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool

	logger := zerolog.Nop()

	rootCmd := &cobra.Command{
		Use:           "brewshare",
		Short:         "Import, export and inspect shared brewing records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verboseFlag {
				logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
					Level(zerolog.DebugLevel).With().Timestamp().Logger()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug output on stderr")

	rootCmd.AddCommand(newParseCommand(&logger))
	rootCmd.AddCommand(newShareCommand())
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newBeansCommand(&configFlag, &logger))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
