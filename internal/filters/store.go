// Package filters holds the filter criteria and the client-side pipeline that applies them.
package filters

import (
	"context"
	"errors"
	"sync"

	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/storage"
)

// StorageKey is the key the criteria are persisted under.
const StorageKey = "filters"

// Store owns the current filter criteria. Setters do no validation: callers
// pick values from models.JobTypes and models.RemoteOptions.
type Store struct {
	mu       sync.RWMutex
	criteria models.Criteria
	version  uint64

	saveMu sync.Mutex
	kv     storage.KV
	log    logger.Logger
}

// NewStore creates an in-memory store with default criteria.
func NewStore() *Store {
	return &Store{criteria: models.DefaultCriteria(), log: logger.NewNop()}
}

// Open creates a store backed by kv, restoring previously saved criteria.
func Open(ctx context.Context, kv storage.KV, log logger.Logger) (*Store, error) {
	s := NewStore()
	if log != nil {
		s.log = log
	}

	saved := models.DefaultCriteria()
	found, err := storage.LoadJSON(ctx, kv, StorageKey, &saved)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.log.Warn("Saved filters are unreadable, using defaults", logger.Error(err))
		found = false
	case err != nil:
		return nil, err
	}
	if found {
		if saved.Tags == nil {
			saved.Tags = []string{}
		}
		if saved.Remote == "" {
			saved.Remote = models.RemoteAll
		}
		if saved.ViewMode == "" {
			saved.ViewMode = models.ViewGrid
		}
		s.criteria = saved
	}

	s.kv = kv
	return s, nil
}

// Criteria returns a copy of the current criteria.
func (s *Store) Criteria() models.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.Clone()
}

// Version increases on every change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// HasActive reports whether any narrowing criterion is set. View mode does not count.
func (s *Store) HasActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.criteria
	return c.Search != "" || c.Remote != models.RemoteAll || c.Location != "" ||
		len(c.Tags) > 0 || c.JobType != ""
}

func (s *Store) SetSearch(search string) {
	s.update(func(c *models.Criteria) { c.Search = search })
}

func (s *Store) ClearSearch() {
	s.update(func(c *models.Criteria) { c.Search = "" })
}

func (s *Store) SetRemote(remote models.RemoteFilter) {
	s.update(func(c *models.Criteria) { c.Remote = remote })
}

func (s *Store) SetLocation(location string) {
	s.update(func(c *models.Criteria) { c.Location = location })
}

func (s *Store) SetTags(tags []string) {
	s.update(func(c *models.Criteria) { c.Tags = append([]string{}, tags...) })
}

// AddTag appends tag unless it is already required.
func (s *Store) AddTag(tag string) {
	s.update(func(c *models.Criteria) {
		for _, t := range c.Tags {
			if t == tag {
				return
			}
		}
		c.Tags = append(c.Tags, tag)
	})
}

func (s *Store) RemoveTag(tag string) {
	s.update(func(c *models.Criteria) {
		kept := make([]string, 0, len(c.Tags))
		for _, t := range c.Tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		c.Tags = kept
	})
}

func (s *Store) SetJobType(jobType string) {
	s.update(func(c *models.Criteria) { c.JobType = jobType })
}

func (s *Store) SetViewMode(mode models.ViewMode) {
	s.update(func(c *models.Criteria) { c.ViewMode = mode })
}

// ClearAll resets every criterion except the view mode.
func (s *Store) ClearAll() {
	s.update(func(c *models.Criteria) {
		view := c.ViewMode
		*c = models.DefaultCriteria()
		c.ViewMode = view
	})
}

// update applies fn and bumps the version when the criteria actually changed.
func (s *Store) update(fn func(*models.Criteria)) {
	s.mu.Lock()
	next := s.criteria.Clone()
	fn(&next)
	if next.Equal(s.criteria) {
		s.mu.Unlock()
		return
	}
	s.criteria = next
	s.version++
	snapshot := next.Clone()
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.mu.Unlock()

	s.persist(snapshot)
}

func (s *Store) persist(c models.Criteria) {
	if s.kv == nil {
		return
	}
	if err := storage.SaveJSON(s.kv, StorageKey, c); err != nil {
		s.log.Warn("Failed to persist filters", logger.Error(err))
	}
}
