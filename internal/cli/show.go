package cli

import (
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/jobboard/internal/app"
)

func newShowCmd(g *globals) *cobra.Command {
	var bookmark bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one job in detail",
		Long: `Show the full description of a job by its slug or numeric id.

Examples:
  jobboard show senior-go-engineer-berlin-123456
  jobboard show 3 --offline --bookmark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			s := g.session

			job, err := s.Job(cmd.Context(), id)
			if app.IsNotFound(err) {
				return notFound(id)
			}
			if err != nil {
				g.renderer.Error(s.Jobs.Snapshot().Error)
				return err
			}

			if bookmark && !job.IsBookmarked {
				s.Bookmarks.Add(job.Job)
				job.IsBookmarked = true
			}

			g.renderer.JobDetail(job)
			return nil
		},
	}

	cmd.Flags().BoolVar(&bookmark, "bookmark", false, "Bookmark the job as well")
	return cmd
}
