package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mediamanager/internal/journal"
)

type historyEntry struct {
	Identifier   string    `json:"id"`
	Kind         string    `json:"kind"`
	OriginalPath string    `json:"original_path"`
	SessionID    string    `json:"session_id"`
	Cataloged    bool      `json:"cataloged"`
	PlacedAt     time.Time `json:"placed_at"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent placements from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return errors.New("placement journal is disabled; set [journal] enabled = true to record history")
			}

			j, err := journal.Open(cmd.Context(), cfg.JournalPath())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			entries, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				view := make([]historyEntry, 0, len(entries))
				for _, entry := range entries {
					view = append(view, historyEntry{
						Identifier:   entry.Identifier,
						Kind:         entry.Kind,
						OriginalPath: entry.OriginalPath,
						SessionID:    entry.SessionID,
						Cataloged:    entry.Cataloged,
						PlacedAt:     entry.PlacedAt,
					})
				}
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No placements recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.PlacedAt.Local().Format("2006-01-02 15:04:05"),
					entry.Identifier,
					entry.OriginalPath,
					yesNo(entry.Cataloged),
				})
			}
			writeRows(out, []string{"Placed", "Identifier", "Original", "Cataloged"}, rows, nil)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of placements to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
