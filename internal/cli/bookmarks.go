package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/jobboard/internal/app"
)

func newBookmarksCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarked jobs",
		Long: `Manage bookmarked jobs. Without a subcommand, lists them.

Available subcommands:
  list    List bookmarked jobs
  add     Bookmark a job
  remove  Remove a bookmark
  toggle  Bookmark a job, or remove it if already bookmarked
  clear   Remove every bookmark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.renderer.Bookmarks(g.session.Bookmarks.List())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookmarked jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.renderer.Bookmarks(g.session.Bookmarks.List())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Bookmark a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			job, err := g.session.Job(cmd.Context(), id)
			if app.IsNotFound(err) {
				return notFound(id)
			}
			if err != nil {
				return err
			}
			g.session.Bookmarks.Add(job.Job)
			fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s (%s)\n", job.Title, job.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !g.session.Bookmarks.IsBookmarked(id) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not bookmarked\n", id)
				return nil
			}
			g.session.Bookmarks.Remove(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Bookmark a job, or remove it if already bookmarked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			added, err := g.session.ToggleBookmark(cmd.Context(), id)
			if app.IsNotFound(err) {
				return notFound(id)
			}
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every bookmark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := g.session.Bookmarks.Count()
			g.session.Bookmarks.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d bookmarks\n", n)
			return nil
		},
	})

	return cmd
}
