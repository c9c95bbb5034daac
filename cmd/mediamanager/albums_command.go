package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List album labels used in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			names := store.KnownAlbumNames()
			if jsonOutput {
				if names == nil {
					names = []string{}
				}
				return writeJSON(cmd, names)
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
