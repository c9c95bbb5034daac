package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mediamanager/internal/collection"
	"mediamanager/internal/media"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		year   string
		title  string
		albums []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "add <photo|video> <file>",
		Short: "Move a file into the collection and catalog it",
		Long: "Move a photo or video into <root>/<photos|videos>/<year>/, name it after its title\n" +
			"(or original filename), record it in the catalog, and print the commands that\n" +
			"track and publish the change.",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeAddArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := media.ParseKind(args[0])
			if err != nil {
				return err
			}
			source, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[1], err)
			}
			item, err := media.NewItem(kind, media.Fields{
				Title:            title,
				Year:             year,
				OriginalFilepath: source,
				Albums:           normalizeAlbums(albums),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return ctx.withSession(cmd, func(runCtx context.Context, session *collection.Session) error {
				if dryRun {
					plan, err := session.Plan(item)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Would place %s at %s\n", plan.Source, plan.Identifier)
					return nil
				}

				result, err := session.Add(runCtx, item)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added %s\n", result.Identifier)

				workdir, _ := os.Getwd()
				suggestions := session.Suggestions(workdir)
				if len(suggestions) > 0 {
					fmt.Fprintln(out)
					fmt.Fprintln(out, "Suggested commands:")
					for _, line := range suggestions {
						fmt.Fprintf(out, "  %s\n", line)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&year, "year", "y", "", "Four-digit year the media was captured")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Title used to name the file (defaults to the original filename)")
	cmd.Flags().StringArrayVarP(&albums, "album", "a", nil, "Album label (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the destination without moving anything")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.RegisterFlagCompletionFunc("album", ctx.completeAlbums)

	return cmd
}

// normalizeAlbums trims labels and drops empty ones. Order and repeats are
// kept as given.
func normalizeAlbums(values []string) []string {
	var out []string
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}

func completeAddArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		var kinds []string
		for _, kind := range media.Kinds() {
			if strings.HasPrefix(kind.String(), toComplete) {
				kinds = append(kinds, kind.String())
			}
		}
		return kinds, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeAlbums offers album labels already present in the catalog.
func (c *commandContext) completeAlbums(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	store, err := c.loadCatalog()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	prefix := strings.ToLower(toComplete)
	var matches []string
	for _, name := range store.KnownAlbumNames() {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
