package source

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// DefaultBoardTTL is how long a company board listing is reused for later pages.
const DefaultBoardTTL = 5 * time.Minute

// boardCache pages a listing that a company board API only serves whole.
// Page 1 always refetches; later pages reuse the last fetch until it expires.
type boardCache struct {
	fetch func(ctx context.Context) ([]models.Job, error)
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	jobs      []models.Job
	fetchedAt time.Time
}

func newBoardCache(fetch func(ctx context.Context) ([]models.Job, error)) *boardCache {
	return &boardCache{fetch: fetch, ttl: DefaultBoardTTL, now: time.Now}
}

func (b *boardCache) page(ctx context.Context, q Query) (*models.Page, error) {
	jobs, err := b.load(ctx, q.Page <= 1)
	if err != nil {
		return nil, err
	}
	return paginate(Search(jobs, q.Search), q), nil
}

func (b *boardCache) load(ctx context.Context, refresh bool) ([]models.Job, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !refresh && b.jobs != nil && b.now().Sub(b.fetchedAt) < b.ttl {
		return b.jobs, nil
	}

	jobs, err := b.fetch(ctx)
	if err != nil {
		return nil, err
	}
	b.jobs = jobs
	b.fetchedAt = b.now()
	return jobs, nil
}

var companyNames = map[string]string{
	"doordash":   "DoorDash",
	"gitlab":     "GitLab",
	"hashicorp":  "HashiCorp",
	"mongodb":    "MongoDB",
	"dbt":        "dbt Labs",
	"monday":     "monday.com",
	"clickup":    "ClickUp",
	"databricks": "Databricks",
}

// formatCompanyName turns a board slug into a display name.
func formatCompanyName(slug string) string {
	if name, ok := companyNames[slug]; ok {
		return name
	}

	words := strings.Split(slug, "-")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func isRemoteLocation(location string) bool {
	return strings.Contains(strings.ToLower(location), "remote")
}

// utcTimestamp renders t as RFC 3339 UTC, or "" for the zero time.
func utcTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
