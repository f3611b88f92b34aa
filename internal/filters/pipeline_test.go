package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/source"
)

func titles(jobs []models.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func TestApply_SampleDataset(t *testing.T) {
	jobs := source.SampleJobs()

	tests := []struct {
		name     string
		criteria func(c *models.Criteria)
		expected []string
	}{
		{
			name:     "no criteria keeps everything",
			criteria: func(c *models.Criteria) {},
			expected: titles(jobs),
		},
		{
			name: "engineer, remote, full-time",
			criteria: func(c *models.Criteria) {
				c.Search = "Engineer"
				c.Remote = models.RemoteOnly
				c.JobType = "Full-time"
			},
			expected: []string{"DevOps Engineer", "QA Engineer"},
		},
		{
			name:     "search is title only and case-insensitive",
			criteria: func(c *models.Criteria) { c.Search = "techcorp" },
			expected: []string{},
		},
		{
			name:     "search lower case title",
			criteria: func(c *models.Criteria) { c.Search = "engineer" },
			expected: []string{"Backend Engineer", "DevOps Engineer", "QA Engineer"},
		},
		{
			name:     "onsite only",
			criteria: func(c *models.Criteria) { c.Remote = models.RemoteOnsite },
			expected: []string{"Backend Engineer", "Product Manager", "Mobile Developer (iOS)"},
		},
		{
			name:     "location substring",
			criteria: func(c *models.Criteria) { c.Location = "BERLIN" },
			expected: []string{"Senior Frontend Developer"},
		},
		{
			name:     "tags are OR within the set",
			criteria: func(c *models.Criteria) { c.Tags = []string{"Swift", "Figma"} },
			expected: []string{"UX/UI Designer", "Mobile Developer (iOS)"},
		},
		{
			name: "tags AND other predicates",
			criteria: func(c *models.Criteria) {
				c.Tags = []string{"Docker"}
				c.Remote = models.RemoteOnly
			},
			expected: []string{"DevOps Engineer"},
		},
		{
			name:     "tag match is exact",
			criteria: func(c *models.Criteria) { c.Tags = []string{"docker"} },
			expected: []string{},
		},
		{
			name:     "job type exact",
			criteria: func(c *models.Criteria) { c.JobType = "Part-time" },
			expected: []string{"UX/UI Designer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.DefaultCriteria()
			tt.criteria(&c)
			assert.Equal(t, tt.expected, titles(Apply(jobs, c)))
		})
	}
}

func TestApply_SeniorFrontendExcludedDevOpsIncluded(t *testing.T) {
	c := models.DefaultCriteria()
	c.Search = "Engineer"
	c.Remote = models.RemoteOnly
	c.JobType = "Full-time"

	got := titles(Apply(source.SampleJobs(), c))
	assert.NotContains(t, got, "Senior Frontend Developer")
	assert.Contains(t, got, "DevOps Engineer")
}

func TestApply_MissingLocationNeverMatches(t *testing.T) {
	jobs := []models.Job{
		{ID: "a", Title: "Nowhere", Location: ""},
		{ID: "b", Title: "Somewhere", Location: "Munich"},
	}
	c := models.DefaultCriteria()
	c.Location = "mun"

	assert.Equal(t, []string{"Somewhere"}, titles(Apply(jobs, c)))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	jobs := source.SampleJobs()
	before := append([]models.Job{}, jobs...)

	c := models.DefaultCriteria()
	c.Search = "Engineer"
	_ = Apply(jobs, c)

	assert.Equal(t, before, jobs)
}

func TestApplyAnnotated_KeepsBookmarkFlag(t *testing.T) {
	jobs := []models.AnnotatedJob{
		{Job: models.Job{ID: "1", Title: "Go Engineer", Remote: true}, IsBookmarked: true},
		{Job: models.Job{ID: "2", Title: "Go Engineer", Remote: false}},
	}
	c := models.DefaultCriteria()
	c.Remote = models.RemoteOnly

	got := ApplyAnnotated(jobs, c)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsBookmarked)
}

func TestMatches(t *testing.T) {
	job := models.Job{Title: "Data Scientist", Remote: true, JobType: "Full-time", Tags: []string{"Python"}}
	c := models.DefaultCriteria()
	assert.True(t, Matches(job, c))

	c.Tags = []string{"Python"}
	c.JobType = "Contract"
	assert.False(t, Matches(job, c))
}
