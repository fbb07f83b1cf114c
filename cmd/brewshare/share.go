package main

import (
	"encoding/json"
	"fmt"

	"brewshare/internal/models"
	"brewshare/internal/share"

	"github.com/spf13/cobra"
)

func newShareCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "share [file]",
		Short: "Render a record as copyable annotated share text",
		Long: `Share reads a record as JSON from a file or stdin and prints the
annotated text a recipient can paste back into the app.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var text string
			switch kind {
			case "bean":
				var bean models.CoffeeBean
				if err := json.Unmarshal([]byte(input), &bean); err != nil {
					return fmt.Errorf("decode bean: %w", err)
				}
				text = share.FormatCoffeeBean(&bean)
			case "method":
				var method models.Method
				if err := json.Unmarshal([]byte(input), &method); err != nil {
					return fmt.Errorf("decode method: %w", err)
				}
				text = share.FormatMethod(&method)
			case "note":
				var note models.BrewingNote
				if err := json.Unmarshal([]byte(input), &note); err != nil {
					return fmt.Errorf("decode note: %w", err)
				}
				text = share.FormatBrewingNote(&note)
			default:
				return fmt.Errorf("unknown kind %q (want bean, method or note)", kind)
			}

			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "method", "Record kind: bean, method or note")
	return cmd
}
