package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

const greenhouseBoard = `{
	"jobs": [
		{
			"id": 4011,
			"title": "Site Reliability Engineer",
			"absolute_url": "https://boards.greenhouse.io/gitlab/jobs/4011",
			"updated_at": "2024-01-15T10:30:00-05:00",
			"first_published": "2024-01-10T09:00:00+01:00",
			"content": "&lt;p&gt;Keep things &lt;strong&gt;up&lt;/strong&gt;&lt;/p&gt;",
			"location": {"name": "Remote, EMEA"},
			"departments": [{"name": "Infrastructure"}],
			"metadata": [{"name": "Employment Type", "value": "Full-time"}]
		},
		{
			"id": 4012,
			"title": "Product Designer",
			"absolute_url": "https://boards.greenhouse.io/gitlab/jobs/4012",
			"updated_at": "2024-01-12T08:00:00Z",
			"location": {"name": "Berlin"},
			"departments": [],
			"metadata": null
		}
	]
}`

const leverPostings = `[
	{
		"id": "5ac21346-8e0c-4494-8e7a-3eb92ff77902",
		"text": "Backend Engineer",
		"hostedUrl": "https://jobs.lever.co/plaid/5ac21346",
		"createdAt": 1705312800000,
		"workplaceType": "remote",
		"description": "<p>Build APIs</p>",
		"categories": {"commitment": "Full-time", "location": "San Francisco", "team": "Engineering", "department": "Engineering"},
		"tags": ["Go"]
	},
	{
		"id": "9b1c",
		"text": "Account Executive",
		"applyUrl": "https://jobs.lever.co/plaid/9b1c/apply",
		"workplaceType": "onsite",
		"categories": {"commitment": "Contract", "location": "New York"}
	}
]`

func serve(t *testing.T, body string, hits *atomic.Int64, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if check != nil {
			check(r)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGreenhouse_FetchPage(t *testing.T) {
	var hits atomic.Int64
	srv := serve(t, greenhouseBoard, &hits, func(r *http.Request) {
		assert.Equal(t, "/v1/boards/gitlab/jobs", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("content"))
	})
	src := NewGreenhouse("gitlab", srv.URL+"/v1/boards/", srv.Client(), nil)

	page, err := src.FetchPage(context.Background(), Query{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasNext)
	require.Len(t, page.Jobs, 2)

	sre := page.Jobs[0]
	assert.Equal(t, "4011", sre.ID)
	assert.Equal(t, int64(4011), sre.NumericID)
	assert.Equal(t, "GitLab", sre.Company)
	assert.True(t, sre.Remote)
	assert.Equal(t, "Full-time", sre.JobType)
	assert.Equal(t, []string{"Infrastructure"}, sre.Tags)
	assert.Equal(t, "<p>Keep things <strong>up</strong></p>", sre.Description)
	assert.Equal(t, "2024-01-10T08:00:00Z", sre.CreatedAt)

	designer := page.Jobs[1]
	assert.False(t, designer.Remote)
	assert.Empty(t, designer.JobType)
	assert.Equal(t, []string{}, designer.Tags)
	assert.Equal(t, "2024-01-12T08:00:00Z", designer.CreatedAt)
}

func TestGreenhouse_Malformed(t *testing.T) {
	var hits atomic.Int64
	srv := serve(t, `{"meta": {}}`, &hits, nil)
	src := NewGreenhouse("gitlab", srv.URL, srv.Client(), nil)

	_, err := src.FetchPage(context.Background(), Query{Page: 1})
	assert.ErrorIs(t, err, models.ErrMalformed)
}

func TestLever_FetchPage(t *testing.T) {
	var hits atomic.Int64
	srv := serve(t, leverPostings, &hits, func(r *http.Request) {
		assert.Equal(t, "/plaid", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("mode"))
	})
	src := NewLever("plaid", srv.URL, srv.Client(), nil)

	page, err := src.FetchPage(context.Background(), Query{Page: 1, Search: "engineer"})
	require.NoError(t, err)
	require.Len(t, page.Jobs, 1)

	job := page.Jobs[0]
	assert.Equal(t, "5ac21346-8e0c-4494-8e7a-3eb92ff77902", job.ID)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, "Plaid", job.Company)
	assert.True(t, job.Remote)
	assert.Equal(t, "Full-time", job.JobType)
	assert.Equal(t, []string{"Engineering", "Go"}, job.Tags)
	assert.Equal(t, "2024-01-15T10:00:00Z", job.CreatedAt)

	all, err := src.FetchPage(context.Background(), Query{Page: 1})
	require.NoError(t, err)
	require.Len(t, all.Jobs, 2)
	assert.Equal(t, "https://jobs.lever.co/plaid/9b1c/apply", all.Jobs[1].URL)
	assert.False(t, all.Jobs[1].Remote)
	assert.Empty(t, all.Jobs[1].CreatedAt)
}

func TestLever_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := NewLever("nobody", srv.URL, srv.Client(), nil).FetchPage(context.Background(), Query{Page: 1})
	assert.ErrorIs(t, err, models.ErrNetwork)
}

func TestBoardCache_ReusesBoardForLaterPages(t *testing.T) {
	var jobs []models.Job
	for _, id := range []string{"a", "b", "c"} {
		jobs = append(jobs, models.Job{ID: id, Title: id})
	}
	var fetches int
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := newBoardCache(func(ctx context.Context) ([]models.Job, error) {
		fetches++
		return jobs, nil
	})
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	p1, err := cache.page(ctx, Query{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.True(t, p1.HasNext)

	p2, err := cache.page(ctx, Query{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, p2.Jobs, 1)
	assert.Equal(t, "c", p2.Jobs[0].ID)
	assert.Equal(t, 1, fetches)

	// Page 1 is a refresh.
	_, err = cache.page(ctx, Query{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, fetches)

	now = now.Add(DefaultBoardTTL)
	_, err = cache.page(ctx, Query{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, fetches)
}

func TestFormatCompanyName(t *testing.T) {
	assert.Equal(t, "GitLab", formatCompanyName("gitlab"))
	assert.Equal(t, "Acme Robotics", formatCompanyName("acme-robotics"))
}
