package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/source"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 0)
	r.Now = func() time.Time { return now }
	return r, &buf
}

func annotated(jobs []models.Job, bookmarked string) []models.AnnotatedJob {
	out := make([]models.AnnotatedJob, len(jobs))
	for i, job := range jobs {
		out[i] = models.AnnotatedJob{Job: job, IsBookmarked: job.ID == bookmarked}
	}
	return out
}

func TestPostedAgo(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2024-03-07T12:00:00Z", want: "3 days ago"},
		{in: "2024-03-10T11:00:00Z", want: "1 hour ago"},
		{in: "", want: "-"},
		{in: "last week", want: "last week"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PostedAgo(tt.in, now), tt.in)
	}
}

func TestRenderer_JobsGrid(t *testing.T) {
	r, buf := newTestRenderer()

	require.NoError(t, r.Jobs(annotated(source.SampleJobs(), "3"), models.ViewGrid))

	out := buf.String()
	assert.Contains(t, out, "DevOps Engineer")
	assert.Contains(t, out, "Enterprise Solutions")
	assert.Contains(t, out, "Remote")
	assert.Contains(t, out, "On-site")
	assert.Contains(t, out, "★")
}

func TestRenderer_JobsList(t *testing.T) {
	r, buf := newTestRenderer()
	job := models.Job{
		ID:          "go-dev",
		Title:       "Go Developer",
		Company:     "Gophers",
		Remote:      true,
		JobType:     "Contract",
		Tags:        []string{"Go", "gRPC"},
		Description: "<p>Build <b>fast</b> services &amp; tools.</p>",
		URL:         "https://example.com/go-dev",
		CreatedAt:   "2024-03-09T12:00:00Z",
	}

	require.NoError(t, r.Jobs([]models.AnnotatedJob{{Job: job}}, models.ViewList))

	out := buf.String()
	assert.Contains(t, out, "Company: Gophers")
	assert.Contains(t, out, "Location: -")
	assert.Contains(t, out, "Tags: Go, gRPC")
	assert.Contains(t, out, "Build fast services & tools.")
	assert.Contains(t, out, "Posted: 1 day ago")
	assert.Contains(t, out, "URL: https://example.com/go-dev")
}

func TestRenderer_JobsEmpty(t *testing.T) {
	r, buf := newTestRenderer()
	require.NoError(t, r.Jobs(nil, models.ViewGrid))
	assert.Contains(t, buf.String(), "No jobs match")
}

func TestRenderer_JobDetail(t *testing.T) {
	r, buf := newTestRenderer()
	job := models.AnnotatedJob{
		Job: models.Job{
			ID:          "1",
			Title:       "Backend Engineer",
			Company:     "StartupXYZ",
			Description: "<p>Join us.</p><script>alert(1)</script><ul><li>Go</li><li>Postgres</li></ul>",
			URL:         "https://example.com/1",
		},
		IsBookmarked: true,
	}

	r.JobDetail(job)

	out := buf.String()
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, "Join us.")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, "Highlights")
	assert.Contains(t, out, "• Postgres")
}

func TestRenderer_Bookmarks(t *testing.T) {
	r, buf := newTestRenderer()

	require.NoError(t, r.Bookmarks([]models.Bookmark{
		{ID: "a", Title: "QA Engineer", Company: "Quality First", BookmarkedAt: "2024-03-10T10:00:00Z"},
	}))

	out := buf.String()
	assert.Contains(t, out, "QA Engineer")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "1 job saved")

	buf.Reset()
	require.NoError(t, r.Bookmarks(nil))
	assert.Contains(t, buf.String(), "No bookmarked jobs")
}

func TestRenderer_CriteriaAndOptions(t *testing.T) {
	r, buf := newTestRenderer()
	c := models.DefaultCriteria()
	c.Remote = models.RemoteOnly
	c.Tags = []string{"Go", "Rust"}

	require.NoError(t, r.Criteria(c))
	r.Options()

	out := buf.String()
	assert.Contains(t, out, "Remote Only")
	assert.Contains(t, out, "Go, Rust")
	assert.Contains(t, out, "grid")
	for _, jobType := range models.JobTypes {
		assert.Contains(t, out, jobType)
	}
	assert.Contains(t, out, "On-Site Only")
}

func TestRenderer_Summary(t *testing.T) {
	r, buf := newTestRenderer()

	r.Summary(12, 40, 1234, true)

	line := strings.TrimSpace(buf.String())
	assert.Equal(t, "Showing 12 of 40 loaded (1,234 total), more available with --pages", line)
}

func TestFormatURL(t *testing.T) {
	assert.Equal(t, "https://example.com", FormatURL("https://example.com", false))
	assert.Contains(t, FormatURL("https://example.com", true), "\033]8;;https://example.com\a")
	assert.Equal(t, "", FormatURL("", true))
}
