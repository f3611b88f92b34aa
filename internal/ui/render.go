package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/utils"
)

const divider = 80

// Renderer writes jobs, bookmarks and filter state to a terminal.
type Renderer struct {
	Out            io.Writer
	TruncateLength int
	Hyperlinks     bool
	Now            func() time.Time
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, truncateLength int) *Renderer {
	if truncateLength <= 0 {
		truncateLength = utils.DefaultTruncateLength
	}
	return &Renderer{Out: out, TruncateLength: truncateLength, Now: time.Now}
}

// PostedAgo renders createdAt relative to now, e.g. "3 days ago".
// Unparsable timestamps are returned as received.
func PostedAgo(createdAt string, now time.Time) string {
	if createdAt == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Jobs renders jobs as a table in grid mode or as one block per job in list mode.
func (r *Renderer) Jobs(jobs []models.AnnotatedJob, mode models.ViewMode) error {
	if len(jobs) == 0 {
		fmt.Fprintln(r.Out, pterm.Yellow("No jobs match the current filters."))
		return nil
	}
	if mode == models.ViewList {
		for _, job := range jobs {
			r.jobBlock(job)
		}
		return nil
	}

	data := pterm.TableData{{"", "ID", "Title", "Company", "Location", "Remote", "Type", "Posted"}}
	for _, job := range jobs {
		data = append(data, []string{
			BookmarkMark(job.IsBookmarked),
			job.ID,
			utils.Truncate(job.Title, 40),
			utils.Truncate(job.Company, 24),
			utils.Truncate(orDash(job.Location), 24),
			ColorizeRemote(job.Remote),
			ColorizeJobType(job.JobType),
			PostedAgo(job.CreatedAt, r.now()),
		})
	}
	return r.table(data)
}

func (r *Renderer) jobBlock(job models.AnnotatedJob) {
	title := job.Title
	if job.IsBookmarked {
		title = BookmarkMark(true) + " " + title
	}
	fmt.Fprintln(r.Out, pterm.Bold.Sprint(title))
	fmt.Fprintf(r.Out, "Company: %s\n", job.Company)
	fmt.Fprintf(r.Out, "Location: %s (%s)\n", orDash(job.Location), ColorizeRemote(job.Remote))
	fmt.Fprintf(r.Out, "Type: %s\n", ColorizeJobType(job.JobType))
	if len(job.Tags) > 0 {
		fmt.Fprintf(r.Out, "Tags: %s\n", strings.Join(job.Tags, ", "))
	}
	if summary := utils.Truncate(job.Description, r.TruncateLength); summary != "" {
		fmt.Fprintln(r.Out, summary)
	}
	fmt.Fprintf(r.Out, "Posted: %s\n", PostedAgo(job.CreatedAt, r.now()))
	fmt.Fprintf(r.Out, "ID: %s  URL: %s\n", job.ID, FormatURL(job.URL, r.Hyperlinks))
	fmt.Fprintln(r.Out, strings.Repeat("-", divider))
}

// JobDetail renders everything known about one job.
func (r *Renderer) JobDetail(job models.AnnotatedJob) {
	header := job.Title
	if job.IsBookmarked {
		header += "  " + BookmarkMark(true) + " saved"
	}
	fmt.Fprintln(r.Out, pterm.Bold.Sprint(header))
	fmt.Fprintln(r.Out, strings.Repeat("=", divider))
	fmt.Fprintf(r.Out, "Company:  %s\n", job.Company)
	fmt.Fprintf(r.Out, "Location: %s\n", orDash(job.Location))
	fmt.Fprintf(r.Out, "Remote:   %s\n", ColorizeRemote(job.Remote))
	fmt.Fprintf(r.Out, "Type:     %s\n", ColorizeJobType(job.JobType))
	fmt.Fprintf(r.Out, "Posted:   %s\n", PostedAgo(job.CreatedAt, r.now()))
	if len(job.Tags) > 0 {
		fmt.Fprintf(r.Out, "Tags:     %s\n", strings.Join(job.Tags, ", "))
	}
	fmt.Fprintf(r.Out, "Apply:    %s\n", FormatURL(job.URL, r.Hyperlinks))

	if description := utils.StripTags(utils.Sanitize(job.Description)); description != "" {
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, description)
	}

	if highlights := utils.Highlights(job.Description); len(highlights) > 0 {
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, pterm.Bold.Sprint("Highlights"))
		for _, item := range highlights {
			fmt.Fprintf(r.Out, "  • %s\n", item)
		}
	}
}

// Bookmarks renders saved jobs in the order they were saved.
func (r *Renderer) Bookmarks(marks []models.Bookmark) error {
	if len(marks) == 0 {
		fmt.Fprintln(r.Out, pterm.Yellow("No bookmarked jobs yet."))
		return nil
	}

	data := pterm.TableData{{"ID", "Title", "Company", "Remote", "Type", "Saved"}}
	for _, b := range marks {
		data = append(data, []string{
			b.ID,
			utils.Truncate(b.Title, 40),
			utils.Truncate(b.Company, 24),
			ColorizeRemote(b.Remote),
			ColorizeJobType(b.JobType),
			PostedAgo(b.BookmarkedAt, r.now()),
		})
	}
	if err := r.table(data); err != nil {
		return err
	}
	fmt.Fprintf(r.Out, "\n%s saved\n", pluralize(len(marks), "job", "jobs"))
	return nil
}

// Criteria renders the active filter criteria.
func (r *Renderer) Criteria(c models.Criteria) error {
	tags := "-"
	if len(c.Tags) > 0 {
		tags = strings.Join(c.Tags, ", ")
	}
	data := pterm.TableData{
		{"Filter", "Value"},
		{"Search", orDash(c.Search)},
		{"Remote", models.RemoteLabel(c.Remote)},
		{"Location", orDash(c.Location)},
		{"Tags", tags},
		{"Job type", orDash(c.JobType)},
		{"View", string(c.ViewMode)},
	}
	return r.table(data)
}

// Options lists the job types and remote choices a user can filter on.
func (r *Renderer) Options() {
	fmt.Fprintln(r.Out, pterm.Bold.Sprint("Job types"))
	for _, t := range models.JobTypes {
		fmt.Fprintf(r.Out, "  %s\n", t)
	}
	fmt.Fprintln(r.Out, pterm.Bold.Sprint("Remote"))
	for _, opt := range models.RemoteOptions {
		fmt.Fprintf(r.Out, "  %-6s %s\n", opt.Value, opt.Label)
	}
}

// Summary reports how many of the loaded jobs are shown.
func (r *Renderer) Summary(shown, loaded, total int, hasMore bool) {
	line := fmt.Sprintf("Showing %s of %s loaded (%s total)",
		humanize.Comma(int64(shown)), humanize.Comma(int64(loaded)), humanize.Comma(int64(total)))
	if hasMore {
		line += ", more available with --pages"
	}
	fmt.Fprintln(r.Out, line)
}

// Error renders a stored error message.
func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.Out, pterm.Red(msg))
}

func (r *Renderer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	fmt.Fprintln(r.Out, out)
	return nil
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return humanize.Comma(int64(n)) + " " + many
}
