package source

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fr4nk3nst1ner/jobboard/internal/client"
	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// DefaultGreenhouseURL is the public Greenhouse job board API.
const DefaultGreenhouseURL = "https://api.greenhouse.io/v1/boards"

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	AbsoluteURL    string    `json:"absolute_url"`
	CompanyName    string    `json:"company_name"`
	Content        string    `json:"content"`
	UpdatedAt      time.Time `json:"updated_at"`
	FirstPublished time.Time `json:"first_published"`
	Location       struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
	Metadata []struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	} `json:"metadata"`
}

// Greenhouse serves one company's Greenhouse board as a paginated listing.
type Greenhouse struct {
	board      string
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
	cache      *boardCache
}

// NewGreenhouse creates a source for the board slug (for example "gitlab").
// An empty baseURL uses DefaultGreenhouseURL.
func NewGreenhouse(board, baseURL string, httpClient *http.Client, log logger.Logger) *Greenhouse {
	if baseURL == "" {
		baseURL = DefaultGreenhouseURL
	}
	if httpClient == nil {
		httpClient = client.CreateHTTPClient(client.Options{})
	}
	if log == nil {
		log = logger.NewNop()
	}
	g := &Greenhouse{
		board:      board,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log.With(logger.String("source", "greenhouse"), logger.String("board", board)),
	}
	g.cache = newBoardCache(g.fetchBoard)
	return g
}

// FetchPage returns one page of the board, searched locally.
func (g *Greenhouse) FetchPage(ctx context.Context, q Query) (*models.Page, error) {
	return g.cache.page(ctx, q)
}

func (g *Greenhouse) fetchBoard(ctx context.Context) ([]models.Job, error) {
	reqURL := fmt.Sprintf("%s/%s/jobs?content=true", g.baseURL, url.PathEscape(g.board))

	body, err := getBody(ctx, g.httpClient, g.log, reqURL)
	if err != nil {
		return nil, err
	}

	var resp greenhouseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", models.ErrMalformed, err)
	}
	if resp.Jobs == nil {
		return nil, fmt.Errorf("%w: response has no jobs array", models.ErrMalformed)
	}

	jobs := make([]models.Job, 0, len(resp.Jobs))
	for _, raw := range resp.Jobs {
		jobs = append(jobs, g.normalize(raw))
	}
	g.log.Debug("Board fetched", logger.Int("jobs", len(jobs)))
	return jobs, nil
}

func (g *Greenhouse) normalize(raw greenhouseJob) models.Job {
	company := raw.CompanyName
	if company == "" {
		company = formatCompanyName(g.board)
	}

	tags := []string{}
	for _, dept := range raw.Departments {
		if dept.Name != "" {
			tags = append(tags, dept.Name)
		}
	}

	created := raw.FirstPublished
	if created.IsZero() {
		created = raw.UpdatedAt
	}

	return models.Job{
		ID:          strconv.FormatInt(raw.ID, 10),
		NumericID:   raw.ID,
		Title:       raw.Title,
		Company:     company,
		Location:    raw.Location.Name,
		Remote:      isRemoteLocation(raw.Location.Name),
		JobType:     greenhouseJobType(raw),
		Tags:        tags,
		Description: html.UnescapeString(raw.Content),
		URL:         raw.AbsoluteURL,
		CreatedAt:   utcTimestamp(created),
	}
}

// greenhouseJobType reads the employment type from custom metadata, which
// boards name inconsistently.
func greenhouseJobType(raw greenhouseJob) string {
	for _, meta := range raw.Metadata {
		name := strings.ToLower(meta.Name)
		if !strings.Contains(name, "employment") && !strings.Contains(name, "job type") {
			continue
		}
		if value, ok := meta.Value.(string); ok && value != "" {
			return value
		}
	}
	return ""
}
