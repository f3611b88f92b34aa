package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/jobboard/internal/utils"
)

func newTypesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the job types and remote options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g.renderer.Options()
			return nil
		},
	}
}

func newTagsCmd(g *globals) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tags used by the loaded jobs",
		Long: `Load jobs and list their distinct tags, for use with 'jobboard list --tag'.

Examples:
  jobboard tags --pages 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}
			if err := loadPages(cmd, g, pages); err != nil {
				g.renderer.Error(g.session.Jobs.Snapshot().Error)
				return err
			}
			tags := utils.CollectTags(g.session.Jobs.Snapshot().Jobs)
			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tags, "\n"))
			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
	return cmd
}
