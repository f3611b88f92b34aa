package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fr4nk3nst1ner/jobboard/internal/client"
	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// DefaultLeverURL is the public Lever postings API.
const DefaultLeverURL = "https://api.lever.co/v0/postings"

type leverPosting struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	HostedURL     string `json:"hostedUrl"`
	ApplyURL      string `json:"applyUrl"`
	Description   string `json:"description"`
	CreatedAt     int64  `json:"createdAt"` // unix milliseconds
	WorkplaceType string `json:"workplaceType"`
	Categories    struct {
		Commitment string `json:"commitment"`
		Location   string `json:"location"`
		Team       string `json:"team"`
		Department string `json:"department"`
	} `json:"categories"`
	Tags []string `json:"tags"`
}

// Lever serves one company's Lever postings as a paginated listing.
type Lever struct {
	company    string
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
	cache      *boardCache
}

// NewLever creates a source for the company slug. An empty baseURL uses DefaultLeverURL.
func NewLever(company, baseURL string, httpClient *http.Client, log logger.Logger) *Lever {
	if baseURL == "" {
		baseURL = DefaultLeverURL
	}
	if httpClient == nil {
		httpClient = client.CreateHTTPClient(client.Options{})
	}
	if log == nil {
		log = logger.NewNop()
	}
	l := &Lever{
		company:    company,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log.With(logger.String("source", "lever"), logger.String("board", company)),
	}
	l.cache = newBoardCache(l.fetchBoard)
	return l
}

// FetchPage returns one page of the company's postings, searched locally.
func (l *Lever) FetchPage(ctx context.Context, q Query) (*models.Page, error) {
	return l.cache.page(ctx, q)
}

func (l *Lever) fetchBoard(ctx context.Context) ([]models.Job, error) {
	reqURL := fmt.Sprintf("%s/%s?mode=json", l.baseURL, url.PathEscape(l.company))

	body, err := getBody(ctx, l.httpClient, l.log, reqURL)
	if err != nil {
		return nil, err
	}

	var postings []leverPosting
	if err := json.Unmarshal(body, &postings); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", models.ErrMalformed, err)
	}

	company := formatCompanyName(l.company)
	jobs := make([]models.Job, 0, len(postings))
	for _, p := range postings {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: posting %q has no id", models.ErrMalformed, p.Text)
		}
		jobs = append(jobs, p.normalize(company))
	}
	l.log.Debug("Board fetched", logger.Int("jobs", len(jobs)))
	return jobs, nil
}

func (p leverPosting) normalize(company string) models.Job {
	tags := []string{}
	for _, tag := range append([]string{p.Categories.Team, p.Categories.Department}, p.Tags...) {
		if tag != "" && !contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	link := p.HostedURL
	if link == "" {
		link = p.ApplyURL
	}

	var created time.Time
	if p.CreatedAt > 0 {
		created = time.UnixMilli(p.CreatedAt)
	}

	return models.Job{
		ID:          p.ID,
		Title:       p.Text,
		Company:     company,
		Location:    p.Categories.Location,
		Remote:      p.WorkplaceType == "remote" || isRemoteLocation(p.Categories.Location),
		JobType:     p.Categories.Commitment,
		Tags:        tags,
		Description: p.Description,
		URL:         link,
		CreatedAt:   utcTimestamp(created),
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
