// Package app wires configuration, persistence and the stores into a Session.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/fr4nk3nst1ner/jobboard/internal/bookmarks"
	"github.com/fr4nk3nst1ner/jobboard/internal/client"
	"github.com/fr4nk3nst1ner/jobboard/internal/config"
	"github.com/fr4nk3nst1ner/jobboard/internal/filters"
	"github.com/fr4nk3nst1ner/jobboard/internal/jobs"
	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/selectors"
	"github.com/fr4nk3nst1ner/jobboard/internal/source"
	"github.com/fr4nk3nst1ner/jobboard/internal/storage"
)

// Options overrides the collaborators a Session would otherwise build from config.
type Options struct {
	// Offline serves the bundled sample jobs instead of calling the API.
	Offline bool
	// ServerSearch sends the search criterion to the API as well as filtering locally.
	ServerSearch bool
	Source       source.Source
	KV           storage.KV
}

// Session owns the three stores and the selectors over them.
type Session struct {
	Config    *config.Config
	Jobs      *jobs.Store
	Bookmarks *bookmarks.Store
	Filters   *filters.Store
	Selectors *selectors.Selectors

	kv           storage.KV
	ownsKV       bool
	serverSearch bool
	log          logger.Logger
}

// NewSession opens persistence, restores bookmarks and filters, and builds
// the job store over the configured source.
func NewSession(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}

	kv, ownsKV := opts.KV, false
	if kv == nil {
		var err error
		if kv, err = storage.Open(ctx, cfg.StorageOptions()); err != nil {
			return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
		}
		ownsKV = true
	}

	marks, err := bookmarks.Open(ctx, kv, log.With(logger.String("store", "bookmarks")))
	if err != nil {
		closeKV(kv, ownsKV)
		return nil, fmt.Errorf("restore bookmarks: %w", err)
	}
	criteria, err := filters.Open(ctx, kv, log.With(logger.String("store", "filters")))
	if err != nil {
		closeKV(kv, ownsKV)
		return nil, fmt.Errorf("restore filters: %w", err)
	}

	src := opts.Source
	switch {
	case src != nil:
	case opts.Offline:
		src = source.NewFixture()
	default:
		src = newSource(cfg, log)
	}

	jobStore := jobs.NewStore(src, log.With(logger.String("store", "jobs")), jobs.Options{
		PageSize:       cfg.API.PageSize,
		LookupPageSize: cfg.API.LookupPageSize,
	})

	return &Session{
		Config:       cfg,
		Jobs:         jobStore,
		Bookmarks:    marks,
		Filters:      criteria,
		Selectors:    selectors.New(jobStore, marks, criteria),
		kv:           kv,
		ownsKV:       ownsKV,
		serverSearch: opts.ServerSearch,
		log:          log,
	}, nil
}

// Close releases the storage backend when the session opened it.
func (s *Session) Close() error {
	if !s.ownsKV {
		return nil
	}
	return s.kv.Close()
}

// Refresh reloads the first page, replacing whatever was loaded.
func (s *Session) Refresh(ctx context.Context) error {
	return s.Jobs.FetchPage(ctx, 1, s.searchParam())
}

// LoadMore appends the next page if there is one.
func (s *Session) LoadMore(ctx context.Context) (bool, error) {
	return s.Jobs.LoadMore(ctx, s.searchParam())
}

// LoadPages refreshes and then loads up to pages pages in total, stopping
// early when the listing runs out. onPage, if set, is called after each page.
func (s *Session) LoadPages(ctx context.Context, pages int, onPage func(loaded int)) error {
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	if onPage != nil {
		onPage(1)
	}
	for loaded := 1; loaded < pages; loaded++ {
		started, err := s.LoadMore(ctx)
		if err != nil {
			return err
		}
		if !started {
			break
		}
		if onPage != nil {
			onPage(loaded + 1)
		}
	}
	return nil
}

// Job resolves id from loaded jobs first and falls back to the single-job lookup.
func (s *Session) Job(ctx context.Context, id string) (models.AnnotatedJob, error) {
	if job, ok := s.Selectors.JobByID(id); ok {
		return job, nil
	}
	if err := s.Jobs.FetchByID(ctx, id); err != nil {
		return models.AnnotatedJob{}, err
	}
	current := s.Jobs.Snapshot().CurrentJob
	if current == nil {
		return models.AnnotatedJob{}, fmt.Errorf("job %q: %w", id, models.ErrNotFound)
	}
	return models.AnnotatedJob{Job: *current, IsBookmarked: s.Bookmarks.IsBookmarked(current.ID)}, nil
}

// ToggleBookmark flips the bookmark for id. Jobs that are no longer listed
// can still be removed from their saved bookmark.
func (s *Session) ToggleBookmark(ctx context.Context, id string) (bool, error) {
	if s.Bookmarks.IsBookmarked(id) {
		s.Bookmarks.Remove(id)
		return false, nil
	}

	job, err := s.Job(ctx, id)
	if err != nil {
		return false, err
	}
	return s.Bookmarks.Toggle(job.Job), nil
}

// newSource builds the live source for the configured provider.
func newSource(cfg *config.Config, log logger.Logger) source.Source {
	httpClient := client.CreateHTTPClient(client.Options{
		Timeout:  cfg.API.Timeout,
		ProxyURL: cfg.API.ProxyURL,
	})

	switch cfg.API.Provider {
	case source.ProviderGreenhouse:
		return source.NewGreenhouse(cfg.API.Board, cfg.API.BoardURL, httpClient, log)
	case source.ProviderLever:
		return source.NewLever(cfg.API.Board, cfg.API.BoardURL, httpClient, log)
	default:
		return source.NewArbeitnow(cfg.API.BaseURL, httpClient, log)
	}
}

func (s *Session) searchParam() string {
	if !s.serverSearch {
		return ""
	}
	return s.Filters.Criteria().Search
}

func closeKV(kv storage.KV, owned bool) {
	if owned {
		_ = kv.Close()
	}
}

// IsNotFound reports whether err means a job lookup found nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
