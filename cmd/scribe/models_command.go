package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/language"
	"scribe/internal/whisper"
)

func newModelsCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List model tiers and preview how a size/language pair resolves",
		RunE: func(cmd *cobra.Command, args []string) error {
			tiers := []struct{ size, alias string }{
				{"tiny", "t"},
				{"base", "b"},
				{"small", "s"},
				{"medium", "m"},
				{"large", "l"},
				{"large-v2", "l2"},
				{"large-v3", "l3"},
				{"turbo", "tu"},
			}

			rows := make([][]string, 0, len(tiers))
			for _, tier := range tiers {
				model, base, err := whisper.Resolve(tier.size, lang, whisper.TaskTranscribe)
				if err != nil {
					return err
				}
				langName := "(detect)"
				if base != "" {
					langName = language.DisplayName(base)
				}
				rows = append(rows, []string{tier.size, tier.alias, string(model), langName})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"SIZE", "ALIAS", "RESOLVES TO", "LANGUAGE"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language code to preview resolution with")
	return cmd
}
