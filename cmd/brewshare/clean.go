package main

import (
	"fmt"

	"brewshare/internal/share"

	"github.com/spf13/cobra"
)

func newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [file]",
		Short: "Strip a method JSON document down to its optimization fields",
		Long: `Clean reads a method JSON document from a file or stdin and prints a
reduced document containing only the fields relevant to recipe
optimization. Unparseable input passes through unchanged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), share.CleanJSONForOptimization(input))
			return nil
		},
	}
}
