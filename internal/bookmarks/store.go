// Package bookmarks keeps the user's saved jobs.
package bookmarks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/storage"
)

// StorageKey is the key the bookmark set is persisted under.
const StorageKey = "bookmarks"

// Store is an insertion-ordered set of bookmarks keyed by job ID.
// Every change is written through to the KV collaborator when one is attached.
type Store struct {
	mu        sync.RWMutex
	bookmarks []models.Bookmark
	version   uint64

	// saveMu keeps writes to kv in commit order.
	saveMu sync.Mutex
	kv     storage.KV
	log    logger.Logger
	now    func() time.Time
}

// NewStore creates an empty, unpersisted store.
func NewStore() *Store {
	return &Store{log: logger.NewNop(), now: time.Now}
}

// Open restores the bookmark set from kv and writes every later change back to it.
func Open(ctx context.Context, kv storage.KV, log logger.Logger) (*Store, error) {
	s := NewStore()
	if log != nil {
		s.log = log
	}

	var saved []models.Bookmark
	_, err := storage.LoadJSON(ctx, kv, StorageKey, &saved)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.log.Warn("Saved bookmarks are unreadable, starting empty", logger.Error(err))
		saved = nil
	case err != nil:
		return nil, err
	}
	s.bookmarks = dedupe(saved)
	s.kv = kv

	s.log.Debug("Restored bookmarks", logger.Int("count", len(s.bookmarks)))
	return s, nil
}

// FromJob builds the persisted projection of job, stamped with bookmarkedAt.
func FromJob(job models.Job, bookmarkedAt time.Time) models.Bookmark {
	tags := append([]string{}, job.Tags...)
	return models.Bookmark{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Remote:       job.Remote,
		Tags:         tags,
		JobType:      job.JobType,
		URL:          job.URL,
		CreatedAt:    job.CreatedAt,
		BookmarkedAt: bookmarkedAt.UTC().Format(time.RFC3339),
	}
}

// Add bookmarks job unless a bookmark with the same ID exists.
func (s *Store) Add(job models.Job) {
	s.mu.Lock()
	if s.indexOf(job.ID) >= 0 {
		s.mu.Unlock()
		return
	}
	s.bookmarks = append(s.bookmarks, FromJob(job, s.now()))
	s.commit()
}

// Remove deletes the bookmark with id, if present.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.bookmarks = append(s.bookmarks[:i:i], s.bookmarks[i+1:]...)
	s.commit()
}

// Toggle removes the bookmark for job if present, otherwise adds it.
// It reports whether the job is bookmarked afterwards.
func (s *Store) Toggle(job models.Job) bool {
	s.mu.Lock()
	if i := s.indexOf(job.ID); i >= 0 {
		s.bookmarks = append(s.bookmarks[:i:i], s.bookmarks[i+1:]...)
		s.commit()
		return false
	}
	s.bookmarks = append(s.bookmarks, FromJob(job, s.now()))
	s.commit()
	return true
}

// Clear removes every bookmark.
func (s *Store) Clear() {
	s.mu.Lock()
	if len(s.bookmarks) == 0 {
		s.mu.Unlock()
		return
	}
	s.bookmarks = nil
	s.commit()
}

func (s *Store) IsBookmarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookmarks)
}

// Get returns the bookmark with id.
func (s *Store) Get(id string) (models.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return cloneBookmark(s.bookmarks[i]), true
	}
	return models.Bookmark{}, false
}

// List returns the bookmarks in insertion order.
func (s *Store) List() []models.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Bookmark, len(s.bookmarks))
	for i, b := range s.bookmarks {
		out[i] = cloneBookmark(b)
	}
	return out
}

// IDs returns the set of bookmarked IDs.
func (s *Store) IDs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]struct{}, len(s.bookmarks))
	for _, b := range s.bookmarks {
		ids[b.ID] = struct{}{}
	}
	return ids
}

// Save writes the current set to kv. Mutations already do this; Save lets
// callers retry after a failed write and see the error.
func (s *Store) Save() error {
	s.mu.RLock()
	snapshot := make([]models.Bookmark, len(s.bookmarks))
	copy(snapshot, s.bookmarks)
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.mu.RUnlock()

	if s.kv == nil {
		return nil
	}
	if err := storage.SaveJSON(s.kv, StorageKey, snapshot); err != nil {
		s.log.Warn("Failed to persist bookmarks", logger.Error(err), logger.Int("count", len(snapshot)))
		return err
	}
	return nil
}

// Version increases on every change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) indexOf(id string) int {
	for i, b := range s.bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// commit bumps the version, releases the lock and persists the new set.
// Must be called with s.mu held.
func (s *Store) commit() {
	s.version++
	snapshot := make([]models.Bookmark, len(s.bookmarks))
	copy(snapshot, s.bookmarks)
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.mu.Unlock()

	if s.kv == nil {
		return
	}
	if err := storage.SaveJSON(s.kv, StorageKey, snapshot); err != nil {
		s.log.Warn("Failed to persist bookmarks", logger.Error(err), logger.Int("count", len(snapshot)))
	}
}

func cloneBookmark(b models.Bookmark) models.Bookmark {
	b.Tags = append([]string{}, b.Tags...)
	return b
}

func dedupe(in []models.Bookmark) []models.Bookmark {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Bookmark, 0, len(in))
	for _, b := range in {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}
