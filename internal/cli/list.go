package cli

import (
	"fmt"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/utils"
)

type listOptions struct {
	search   string
	remote   string
	location string
	tags     []string
	jobType  string
	view     string
	pages    int
	clear    bool
}

func newListCmd(g *globals) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs matching the saved filters",
		Long: `List jobs, applying the saved filters to what is loaded.

Filter flags update the saved filters, so they apply to later runs too.
Use --clear to start from no filters.

Examples:
  # Remote full-time engineering jobs
  jobboard list --search engineer --remote true --type Full-time

  # Jobs tagged Go or Rust in Berlin, three pages deep
  jobboard list --tag Go --tag Rust --location berlin --pages 3

  # Browse the bundled sample jobs as a list
  jobboard list --offline --view list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, g, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.search, "search", "", "Title must contain this text")
	flags.StringVar(&opts.remote, "remote", "", "Remote filter: all, true (remote only) or false (on-site only)")
	flags.StringVar(&opts.location, "location", "", "Location must contain this text")
	flags.StringSliceVar(&opts.tags, "tag", nil, "Require at least one of these tags (repeatable)")
	flags.StringVar(&opts.jobType, "type", "", "Job type, see 'jobboard types'")
	flags.StringVar(&opts.view, "view", "", "Layout: grid or list")
	flags.IntVar(&opts.pages, "pages", 1, "Number of pages to load")
	flags.BoolVar(&opts.clear, "clear", false, "Clear saved filters before applying flags")

	return cmd
}

// applyFlags writes explicitly set flags into the filter store.
func applyFlags(cmd *cobra.Command, g *globals, opts *listOptions) error {
	f := g.session.Filters
	flags := cmd.Flags()

	if opts.clear {
		f.ClearAll()
	}
	if flags.Changed("search") {
		f.SetSearch(opts.search)
	}
	if flags.Changed("remote") {
		remote, err := utils.ParseRemote(opts.remote)
		if err != nil {
			return err
		}
		f.SetRemote(remote)
	}
	if flags.Changed("location") {
		f.SetLocation(opts.location)
	}
	if flags.Changed("tag") {
		f.SetTags(opts.tags)
	}
	if flags.Changed("type") {
		if !utils.IsValidJobType(opts.jobType) {
			return fmt.Errorf("invalid job type %q, must be one of: %s", opts.jobType, strings.Join(models.JobTypes, ", "))
		}
		f.SetJobType(opts.jobType)
	}
	if flags.Changed("view") {
		if !utils.IsValidViewMode(opts.view) {
			return fmt.Errorf("invalid view %q, must be grid or list", opts.view)
		}
		f.SetViewMode(models.ViewMode(strings.ToLower(opts.view)))
	}
	return nil
}

func runList(cmd *cobra.Command, g *globals, opts *listOptions) error {
	if opts.pages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}
	if err := applyFlags(cmd, g, opts); err != nil {
		return err
	}

	s := g.session
	if err := loadPages(cmd, g, opts.pages); err != nil {
		g.renderer.Error(s.Jobs.Snapshot().Error)
		return err
	}

	criteria := s.Filters.Criteria()
	shown := s.Selectors.FilteredJobs()
	if err := g.renderer.Jobs(shown, criteria.ViewMode); err != nil {
		return err
	}

	st := s.Jobs.Snapshot()
	g.renderer.Summary(len(shown), len(st.Jobs), st.TotalJobs, st.HasMore)
	return nil
}

// loadPages loads up to pages pages, showing a progress bar when there is more than one.
func loadPages(cmd *cobra.Command, g *globals, pages int) error {
	if pages == 1 {
		return g.session.LoadPages(cmd.Context(), 1, nil)
	}

	bar := pb.New(pages)
	bar.SetWriter(cmd.ErrOrStderr())
	bar.Start()
	defer bar.Finish()

	return g.session.LoadPages(cmd.Context(), pages, func(loaded int) {
		bar.SetCurrent(int64(loaded))
	})
}
