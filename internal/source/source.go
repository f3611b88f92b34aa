// Package source provides the job listing collaborators the job store fetches from.
package source

import (
	"context"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

const (
	// DefaultPageSize is the page size the listing API serves.
	DefaultPageSize = 20
	// LookupPageSize is the page size requested when scanning for a single job.
	LookupPageSize = 1000
)

// Providers a source can be built for.
const (
	ProviderArbeitnow  = "arbeitnow"
	ProviderGreenhouse = "greenhouse"
	ProviderLever      = "lever"
)

// Query selects one page of listings.
type Query struct {
	Page    int
	Search  string
	PerPage int // 0 leaves the server default
}

// Source returns normalized pages of job listings.
// Errors wrap models.ErrNetwork or models.ErrMalformed.
type Source interface {
	FetchPage(ctx context.Context, q Query) (*models.Page, error)
}
