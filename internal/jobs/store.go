// Package jobs holds the loaded job listings, pagination state and the
// currently viewed job.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/source"
)

// Messages stored in State.Error.
const (
	MsgFetchJobs   = "Failed to fetch jobs"
	MsgFetchDetail = "Failed to fetch job details"
	MsgNotFound    = "Job not found"
)

// State is a point-in-time copy of the store.
type State struct {
	Jobs        []models.Job
	CurrentPage int
	TotalJobs   int
	HasMore     bool
	Loading     bool
	Error       string // empty when there is none
	CurrentJob  *models.Job
}

// Options tunes paging. Zero values fall back to the source defaults.
type Options struct {
	PageSize       int
	LookupPageSize int
}

// Store accumulates pages fetched from a Source.
//
// Identical in-flight page requests share one fetch. A page-1 fetch or
// ClearJobs starts a new generation, and results of fetches started in an
// earlier generation are dropped, so the last-initiated fetch wins.
type Store struct {
	mu         sync.RWMutex
	state      State
	version    uint64
	generation uint64
	pending    int

	src    source.Source
	log    logger.Logger
	opts   Options
	flight singleflight.Group
}

// NewStore creates a store reading from src.
func NewStore(src source.Source, log logger.Logger, opts Options) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = source.DefaultPageSize
	}
	if opts.LookupPageSize <= 0 {
		opts.LookupPageSize = source.LookupPageSize
	}
	return &Store{
		state: State{CurrentPage: 1, HasMore: true},
		src:   src,
		log:   log,
		opts:  opts,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Jobs = append([]models.Job{}, s.state.Jobs...)
	if s.state.CurrentJob != nil {
		job := *s.state.CurrentJob
		st.CurrentJob = &job
	}
	return st
}

// Jobs returns the loaded jobs and the version they belong to.
func (s *Store) Jobs() ([]models.Job, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Job{}, s.state.Jobs...), s.version
}

// Version increases every time the job sequence changes.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// FetchPage loads one page. Page 1 replaces the loaded jobs, any other page
// is appended. On failure the jobs are left untouched, the message is stored
// in State.Error and the error is returned.
func (s *Store) FetchPage(ctx context.Context, page int, search string) error {
	s.mu.Lock()
	if page <= 1 {
		s.generation++
	}
	gen := s.generation
	s.begin()
	s.mu.Unlock()

	s.log.Debug("Fetching jobs", logger.Int("page", page), logger.String("search", search))

	res, err := s.fetch(ctx, source.Query{Page: page, Search: search})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.end()

	stale := gen != s.generation

	if err != nil {
		if !stale {
			s.state.Error = fmt.Sprintf("%s: %v", MsgFetchJobs, err)
		}
		s.log.Warn("Failed to fetch jobs",
			logger.Int("page", page),
			logger.String("search", search),
			logger.Bool("stale", stale),
			logger.Error(err),
		)
		return fmt.Errorf("fetch page %d: %w", page, err)
	}

	if stale {
		s.log.Debug("Dropping stale page", logger.Int("page", page))
		return nil
	}

	current := res.CurrentPage
	if current <= 0 {
		current = max(page, 1)
	}

	if current == 1 {
		s.state.Jobs = append([]models.Job{}, res.Jobs...)
	} else {
		s.state.Jobs = append(s.state.Jobs, res.Jobs...)
	}
	s.state.CurrentPage = current
	s.state.TotalJobs = res.Total
	if s.state.TotalJobs == 0 {
		s.state.TotalJobs = len(res.Jobs)
	}
	s.state.HasMore = res.HasNext
	s.version++

	s.log.Info("Fetched jobs",
		logger.Int("page", current),
		logger.Int("received", len(res.Jobs)),
		logger.Int("loaded", len(s.state.Jobs)),
		logger.Int("total", s.state.TotalJobs),
		logger.Bool("has_more", s.state.HasMore),
	)
	return nil
}

// NextPage is the page LoadMore would request.
func (s *Store) NextPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextPage()
}

func (s *Store) nextPage() int {
	n := len(s.state.Jobs)
	return (n+s.opts.PageSize-1)/s.opts.PageSize + 1
}

// LoadMore fetches the page after the loaded jobs. It does nothing while a
// fetch is running or when the source reported no further pages.
// It reports whether a fetch was started.
func (s *Store) LoadMore(ctx context.Context, search string) (bool, error) {
	s.mu.RLock()
	busy := s.state.Loading || !s.state.HasMore
	next := s.nextPage()
	s.mu.RUnlock()

	if busy {
		return false, nil
	}
	return true, s.FetchPage(ctx, next, search)
}

// FetchByID sets CurrentJob to the job with id. Loaded jobs are searched
// first, by ID or by numeric id, without touching the network. Otherwise one
// large page is fetched and scanned.
func (s *Store) FetchByID(ctx context.Context, id string) error {
	s.mu.Lock()
	if job, ok := find(s.state.Jobs, id); ok {
		s.state.CurrentJob = &job
		s.state.Error = ""
		s.mu.Unlock()
		return nil
	}
	s.begin()
	s.mu.Unlock()

	s.log.Debug("Looking up job", logger.String("id", id))

	res, err := s.fetch(ctx, source.Query{Page: 1, PerPage: s.opts.LookupPageSize})

	var (
		job     models.Job
		scanned int
	)
	if err == nil {
		scanned = len(res.Jobs)
		var ok bool
		if job, ok = find(res.Jobs, id); !ok {
			err = models.ErrNotFound
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.end()

	switch {
	case errors.Is(err, models.ErrNotFound):
		s.state.Error = MsgNotFound
		s.log.Info("Job not found", logger.String("id", id), logger.Int("scanned", scanned))
		return fmt.Errorf("job %q: %w", id, err)
	case err != nil:
		s.state.Error = fmt.Sprintf("%s: %v", MsgFetchDetail, err)
		s.log.Warn("Failed to look up job", logger.String("id", id), logger.Error(err))
		return fmt.Errorf("job %q: %w", id, err)
	}

	s.state.CurrentJob = &job
	return nil
}

// SetCurrentPage overrides the page number without fetching.
func (s *Store) SetCurrentPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentPage = page
}

// ClearJobs empties the job sequence and resets paging. In-flight fetches
// started before the call are discarded when they complete.
func (s *Store) ClearJobs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state.Jobs = nil
	s.state.CurrentPage = 1
	s.state.HasMore = true
	s.state.Error = ""
	s.version++
}

func (s *Store) ClearCurrentJob() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentJob = nil
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
}

// fetch shares identical in-flight queries. A caller whose ctx ends stops
// waiting; the shared request is detached from any one caller's cancellation
// and is bounded by the HTTP client timeout instead.
func (s *Store) fetch(ctx context.Context, q source.Query) (*models.Page, error) {
	key := fmt.Sprintf("%d|%d|%s", q.Page, q.PerPage, q.Search)
	shared := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (any, error) {
		return s.src.FetchPage(shared, q)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", models.ErrNetwork, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		if r.Shared {
			s.log.Debug("Shared in-flight fetch", logger.String("key", key))
		}
		page, ok := r.Val.(*models.Page)
		if !ok || page == nil {
			return nil, fmt.Errorf("%w: empty page", models.ErrMalformed)
		}
		return page, nil
	}
}

// begin and end track running fetches. Both need s.mu held.
func (s *Store) begin() {
	s.pending++
	s.state.Loading = true
	s.state.Error = ""
}

func (s *Store) end() {
	s.pending--
	s.state.Loading = s.pending > 0
}

func find(jobs []models.Job, id string) (models.Job, bool) {
	for _, job := range jobs {
		if job.MatchesID(id) {
			return job, true
		}
	}
	return models.Job{}, false
}
