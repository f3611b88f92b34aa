// Package selectors derives read-only views from the job, bookmark and
// filter stores. Results are cached until one of their inputs changes
// version; the returned slices are shared between callers and must not be
// modified.
package selectors

import (
	"sync"

	"github.com/fr4nk3nst1ner/jobboard/internal/bookmarks"
	"github.com/fr4nk3nst1ner/jobboard/internal/filters"
	"github.com/fr4nk3nst1ner/jobboard/internal/jobs"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

type versions struct {
	jobs, bookmarks, filters uint64
}

type memo[T any] struct {
	valid bool
	key   versions
	value T
}

func (m *memo[T]) get(key versions, compute func() T) (T, bool) {
	if m.valid && m.key == key {
		return m.value, false
	}
	m.value = compute()
	m.key = key
	m.valid = true
	return m.value, true
}

// Selectors reads from the three stores and never writes to them.
type Selectors struct {
	jobs      *jobs.Store
	bookmarks *bookmarks.Store
	filters   *filters.Store

	mu           sync.Mutex
	annotated    memo[[]models.AnnotatedJob]
	bookmarked   memo[[]models.Job]
	filtered     memo[[]models.AnnotatedJob]
	computations int
}

func New(j *jobs.Store, b *bookmarks.Store, f *filters.Store) *Selectors {
	return &Selectors{jobs: j, bookmarks: b, filters: f}
}

// JobsWithBookmarkStatus returns the loaded jobs, in order, each flagged
// with whether it is bookmarked.
func (s *Selectors) JobsWithBookmarkStatus() []models.AnnotatedJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobsWithBookmarkStatus(s.versions())
}

func (s *Selectors) jobsWithBookmarkStatus(key versions) []models.AnnotatedJob {
	key.filters = 0
	out, computed := s.annotated.get(key, func() []models.AnnotatedJob {
		loaded, _ := s.jobs.Jobs()
		ids := s.bookmarks.IDs()
		out := make([]models.AnnotatedJob, len(loaded))
		for i, job := range loaded {
			_, marked := ids[job.ID]
			out[i] = models.AnnotatedJob{Job: job, IsBookmarked: marked}
		}
		return out
	})
	s.count(computed)
	return out
}

// BookmarkedJobs returns the loaded jobs that are bookmarked, in load order.
func (s *Selectors) BookmarkedJobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookmarkedJobs(s.versions())
}

func (s *Selectors) bookmarkedJobs(key versions) []models.Job {
	key.filters = 0
	out, computed := s.bookmarked.get(key, func() []models.Job {
		loaded, _ := s.jobs.Jobs()
		ids := s.bookmarks.IDs()
		out := make([]models.Job, 0, len(ids))
		for _, job := range loaded {
			if _, ok := ids[job.ID]; ok {
				out = append(out, job)
			}
		}
		return out
	})
	s.count(computed)
	return out
}

// FilteredJobs runs the filter pipeline over JobsWithBookmarkStatus.
func (s *Selectors) FilteredJobs() []models.AnnotatedJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.versions()
	annotated := s.jobsWithBookmarkStatus(key)
	out, computed := s.filtered.get(key, func() []models.AnnotatedJob {
		return filters.ApplyAnnotated(annotated, s.filters.Criteria())
	})
	s.count(computed)
	return out
}

// JobByID looks id up among the loaded jobs, then the current job. id may be
// the job's ID, slug or numeric id.
func (s *Selectors) JobByID(id string) (models.AnnotatedJob, bool) {
	s.mu.Lock()
	annotated := s.jobsWithBookmarkStatus(s.versions())
	s.mu.Unlock()

	for _, job := range annotated {
		if job.MatchesID(id) {
			return job, true
		}
	}
	if current := s.jobs.Snapshot().CurrentJob; current != nil && current.MatchesID(id) {
		return models.AnnotatedJob{Job: *current, IsBookmarked: s.bookmarks.IsBookmarked(current.ID)}, true
	}
	return models.AnnotatedJob{}, false
}

// BookmarkedJobByID looks id up among BookmarkedJobs.
func (s *Selectors) BookmarkedJobByID(id string) (models.Job, bool) {
	s.mu.Lock()
	marked := s.bookmarkedJobs(s.versions())
	s.mu.Unlock()

	for _, job := range marked {
		if job.ID == id {
			return job, true
		}
	}
	return models.Job{}, false
}

// versions reads the input versions before any data, so a change racing
// with a computation only causes one extra recomputation later.
func (s *Selectors) versions() versions {
	return versions{
		jobs:      s.jobs.Version(),
		bookmarks: s.bookmarks.Version(),
		filters:   s.filters.Version(),
	}
}

func (s *Selectors) count(computed bool) {
	if computed {
		s.computations++
	}
}
