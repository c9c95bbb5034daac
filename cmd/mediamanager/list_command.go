package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"mediamanager/internal/media"
)

type listEntry struct {
	Identifier       string   `json:"id"`
	Kind             string   `json:"kind"`
	Title            string   `json:"title,omitempty"`
	Year             string   `json:"year,omitempty"`
	OriginalFilepath string   `json:"original_filepath,omitempty"`
	Albums           []string `json:"albums,omitempty"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		kindFlag   string
		album      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := media.Kinds()
			if strings.TrimSpace(kindFlag) != "" {
				kind, err := media.ParseKind(kindFlag)
				if err != nil {
					return err
				}
				kinds = []media.Kind{kind}
			}

			store, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			var entries []listEntry
			for _, kind := range kinds {
				for _, item := range store.Items(kind) {
					if album != "" && !slices.Contains(item.Albums, album) {
						continue
					}
					entries = append(entries, listEntry{
						Identifier:       item.Identifier(),
						Kind:             kind.String(),
						Title:            item.Title,
						Year:             item.Year,
						OriginalFilepath: item.OriginalFilepath,
						Albums:           item.Albums,
					})
				}
			}

			if jsonOutput {
				if entries == nil {
					entries = []listEntry{}
				}
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No items cataloged")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Identifier,
					entry.Year,
					entry.Title,
					strings.Join(entry.Albums, ", "),
				})
			}
			writeRows(out, []string{"Identifier", "Year", "Title", "Albums"}, rows, nil)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Only list photos or videos")
	cmd.Flags().StringVarP(&album, "album", "a", "", "Only list items in this album")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	_ = cmd.RegisterFlagCompletionFunc("album", ctx.completeAlbums)
	return cmd
}
