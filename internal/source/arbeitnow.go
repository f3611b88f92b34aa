package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fr4nk3nst1ner/jobboard/internal/client"
	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// DefaultBaseURL is the public Arbeitnow job board endpoint.
const DefaultBaseURL = "https://www.arbeitnow.com/api/job-board-api"

// envelope mirrors the listing API response.
type envelope struct {
	Data []models.RawJob `json:"data"`
	Meta *struct {
		CurrentPage int `json:"current_page"`
		LastPage    int `json:"last_page"`
		PerPage     int `json:"per_page"`
		Total       int `json:"total"`
	} `json:"meta"`
	Links *struct {
		Next *string `json:"next"`
	} `json:"links"`
}

// Arbeitnow fetches listings from an Arbeitnow-compatible HTTP API.
type Arbeitnow struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// NewArbeitnow creates a source against baseURL. An empty baseURL uses DefaultBaseURL.
func NewArbeitnow(baseURL string, httpClient *http.Client, log logger.Logger) *Arbeitnow {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = client.CreateHTTPClient(client.Options{})
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Arbeitnow{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log.With(logger.String("source", "arbeitnow")),
	}
}

// FetchPage issues GET <base>?page=<n>[&search=<term>][&per_page=<n>].
func (a *Arbeitnow) FetchPage(ctx context.Context, q Query) (*models.Page, error) {
	reqURL, err := a.pageURL(q)
	if err != nil {
		return nil, err
	}

	body, err := getBody(ctx, a.httpClient, a.log, reqURL)
	if err != nil {
		return nil, err
	}

	return decodePage(body, q)
}

func (a *Arbeitnow) pageURL(q Query) (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base URL %q: %v", models.ErrNetwork, a.baseURL, err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	params := u.Query()
	params.Set("page", strconv.Itoa(page))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

func decodePage(body []byte, q Query) (*models.Page, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", models.ErrMalformed, err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: response has no data array", models.ErrMalformed)
	}
	if env.Meta == nil {
		return nil, fmt.Errorf("%w: response has no meta object", models.ErrMalformed)
	}

	jobs, err := models.NormalizeAll(env.Data)
	if err != nil {
		return nil, err
	}

	page := &models.Page{
		Jobs:        jobs,
		CurrentPage: env.Meta.CurrentPage,
		LastPage:    env.Meta.LastPage,
		PerPage:     env.Meta.PerPage,
		Total:       env.Meta.Total,
	}
	if page.CurrentPage == 0 {
		page.CurrentPage = max(q.Page, 1)
	}
	if env.Links != nil && env.Links.Next != nil && *env.Links.Next != "" {
		page.HasNext = true
	}

	return page, nil
}
