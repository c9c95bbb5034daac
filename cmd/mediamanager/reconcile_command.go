package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mediamanager/internal/collection"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Compare the collection tree with the catalog",
		Long: "Report files under the kind directories that have no catalog entry (orphans)\n" +
			"and catalog entries whose file is gone (missing). Exits non-zero when any are found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return ctx.withSession(cmd, func(runCtx context.Context, session *collection.Session) error {
				report, err := session.Reconcile(runCtx)
				if err != nil {
					return err
				}
				if report.Clean() {
					fmt.Fprintf(out, "Collection consistent: %d files, %d cataloged\n", report.Scanned, session.Catalog().Count())
					return nil
				}

				issues := report.Issues()
				rows := make([][]string, 0, len(issues))
				for _, issue := range issues {
					rows = append(rows, []string{string(issue.Kind), issue.Identifier, issue.OriginalPath})
				}
				writeRows(out, []string{"Issue", "Identifier", "Original"}, rows, nil)
				return fmt.Errorf("reconcile found %d orphaned and %d missing items", len(report.Orphans), len(report.Missing))
			})
		},
	}
}
