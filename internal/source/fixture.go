package source

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

//go:embed fixture_jobs.json
var sampleJobsJSON []byte

// SampleJobs returns the bundled eight-job dataset used for offline browsing and tests.
func SampleJobs() []models.Job {
	var raws []models.RawJob
	if err := json.Unmarshal(sampleJobsJSON, &raws); err != nil {
		panic(fmt.Sprintf("source: bundled sample jobs are invalid: %v", err))
	}
	jobs, err := models.NormalizeAll(raws)
	if err != nil {
		panic(fmt.Sprintf("source: bundled sample jobs are invalid: %v", err))
	}
	return jobs
}

// Fixture serves a fixed set of jobs from memory with the same pagination
// and envelope semantics as the live API. Server-side search matches title,
// company, description and tags.
type Fixture struct {
	jobs  []models.Job
	calls atomic.Int64
}

// NewFixture creates a fixture over jobs. With no jobs it serves SampleJobs.
func NewFixture(jobs ...models.Job) *Fixture {
	if len(jobs) == 0 {
		jobs = SampleJobs()
	}
	return &Fixture{jobs: jobs}
}

// Calls returns how many pages have been requested.
func (f *Fixture) Calls() int {
	return int(f.calls.Load())
}

// FetchPage returns one page of the (searched) fixture jobs.
func (f *Fixture) FetchPage(ctx context.Context, q Query) (*models.Page, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}

	return paginate(Search(f.jobs, q.Search), q), nil
}
