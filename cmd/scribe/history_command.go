package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"scribe/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently processed annotation requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled in configuration")
			}

			store, err := history.Open(cfg.Paths.HistoryDB, cfg.History.Keep)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No requests recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				detail := rec.Language
				if rec.Status == history.StatusFailed {
					detail = truncate(rec.Error, 40)
				}
				rows = append(rows, []string{
					rec.CreatedAt.Local().Format(time.DateTime),
					rec.MediaID,
					rec.Model,
					rec.Task,
					fmt.Sprintf("%d", rec.Tokens),
					fmt.Sprintf("%d", rec.Sentences),
					rec.Duration.Round(time.Millisecond).String(),
					rec.Status,
					detail,
				})
			}
			headers := []string{"WHEN", "MEDIA", "MODEL", "TASK", "TOKENS", "SENTENCES", "TOOK", "STATUS", "DETAIL"}

			out := cmd.OutOrStdout()
			if isTerminal() {
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{
					alignLeft, alignLeft, alignLeft, alignLeft,
					alignRight, alignRight, alignRight, alignLeft, alignLeft,
				}))
				return nil
			}
			// Plain tab-separated output for pipes.
			fmt.Fprintln(out, strings.Join(headers, "\t"))
			for _, row := range rows {
				fmt.Fprintln(out, strings.Join(row, "\t"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")
	return cmd
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max-1] + "…"
}
