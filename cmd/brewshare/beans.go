package main

import (
	"fmt"
	"strings"

	"brewshare/internal/config"
	"brewshare/internal/database/sqlite"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newBeansCommand(configFlag *string, logger *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beans",
		Short: "Inspect stored coffee beans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newBeansListCommand(configFlag, logger))
	return cmd
}

func newBeansListCommand(configFlag *string, logger *zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List coffee beans in the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return err
			}

			logger.Debug().Str("db", cfg.Database.Path).Msg("opening database")
			store, err := sqlite.NewSQLiteStore(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer store.Close()

			beans, err := store.ListBeans()
			if err != nil {
				return fmt.Errorf("list beans: %w", err)
			}
			if len(beans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No beans recorded.")
				return nil
			}

			rows := make([][]string, 0, len(beans))
			for _, b := range beans {
				remaining := b.Remaining
				if remaining != "" && b.Capacity != "" {
					remaining = remaining + "/" + b.Capacity + "g"
				}
				rows = append(rows, []string{
					b.ID,
					b.Name,
					b.RoastLevel,
					b.Origin,
					remaining,
					strings.Join(b.Flavor, ", "),
				})
			}

			headers := []string{"ID", "NAME", "ROAST", "ORIGIN", "REMAINING", "FLAVOR"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}
