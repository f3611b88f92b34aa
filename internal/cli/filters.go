package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/utils"
)

func newFiltersCmd(g *globals) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		if err := g.renderer.Criteria(g.session.Filters.Criteria()); err != nil {
			return err
		}
		if !g.session.Filters.HasActive() {
			fmt.Fprintln(cmd.OutOrStdout(), "No active filters")
		}
		return nil
	}

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Show or reset the saved filters",
		Long: `Show or reset the filters 'jobboard list' applies.

Available subcommands:
  show      Show the saved filters
  clear     Clear every filter except the view mode
  set-view  Switch between grid and list layout`,
		Args: cobra.NoArgs,
		RunE: show,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved filters",
		Args:  cobra.NoArgs,
		RunE:  show,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear every filter except the view mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g.session.Filters.ClearAll()
			fmt.Fprintln(cmd.OutOrStdout(), "Filters cleared")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set-view <grid|list>",
		Short:     "Switch between grid and list layout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.ViewGrid), string(models.ViewList)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !utils.IsValidViewMode(args[0]) {
				return fmt.Errorf("invalid view %q, must be grid or list", args[0])
			}
			mode := models.ViewMode(strings.ToLower(args[0]))
			g.session.Filters.SetViewMode(mode)
			fmt.Fprintf(cmd.OutOrStdout(), "View set to %s\n", mode)
			return nil
		},
	})

	return cmd
}
