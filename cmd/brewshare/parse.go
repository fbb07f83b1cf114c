package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"brewshare/internal/share"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// parseOutput mirrors the server's import response: the recognized kind
// plus exactly one populated record.
type parseOutput struct {
	Type   share.Kind `json:"type"`
	Record any        `json:"record"`
}

func newParseCommand(logger *zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Recognize shared text or JSON and print the decoded record",
		Long: `Parse reads shared text (or a raw JSON document) from a file or stdin,
routes it through the format dispatcher, and prints the decoded record
as JSON. Exits nonzero when the input is not recognized.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			res := share.ExtractFromText(input)
			if res == nil {
				return errors.New("input not recognized as a shared record")
			}
			logger.Debug().Str("kind", string(res.Kind)).Int("bytes", len(input)).Msg("input recognized")

			out := parseOutput{Type: res.Kind}
			switch res.Kind {
			case share.KindRawJSON:
				// A raw JSON object is only useful when it decodes as a
				// method document; otherwise echo the decoded value.
				if doc, ok := res.Raw.(map[string]any); ok {
					if method := share.MethodFromDocument(doc); method != nil {
						out.Type = share.KindMethod
						out.Record = json.RawMessage(share.MethodToJSON(method))
						break
					}
				}
				out.Record = res.Raw
			case share.KindCoffeeBean:
				out.Record = res.Bean
			case share.KindMethod:
				// Methods go out in the canonical wire shape, not the
				// internal model.
				out.Record = json.RawMessage(share.MethodToJSON(res.Method))
			case share.KindNote:
				out.Record = res.Note
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("encode record: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
