package models

import "strconv"

// Job represents a job listing in its canonical shape.
// Every source normalizes into this shape before the job reaches a store.
type Job struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug,omitempty"`
	NumericID   int64    `json:"numeric_id,omitempty"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	Remote      bool     `json:"remote"`
	JobType     string   `json:"job_type,omitempty"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url"`
	CreatedAt   string   `json:"created_at"`
}

// HasTag reports whether the job carries the given tag (exact match).
func (j Job) HasTag(tag string) bool {
	for _, t := range j.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesID reports whether id names this job, by ID, slug or numeric id.
func (j Job) MatchesID(id string) bool {
	if id == "" {
		return false
	}
	if j.ID == id || (j.Slug != "" && j.Slug == id) {
		return true
	}
	n, err := strconv.ParseInt(id, 10, 64)
	return err == nil && j.NumericID != 0 && j.NumericID == n
}

// Bookmark is the persisted projection of a Job
type Bookmark struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	Remote       bool     `json:"remote"`
	Tags         []string `json:"tags"`
	JobType      string   `json:"job_type,omitempty"`
	URL          string   `json:"url"`
	CreatedAt    string   `json:"created_at"`
	BookmarkedAt string   `json:"bookmarked_at"`
}

// AnnotatedJob is a Job joined with its bookmark status.
type AnnotatedJob struct {
	Job
	IsBookmarked bool `json:"is_bookmarked"`
}

// Page is one normalized page of a paginated listing.
type Page struct {
	Jobs        []Job `json:"jobs"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page,omitempty"`
	PerPage     int   `json:"per_page,omitempty"`
	Total       int   `json:"total"`
	HasNext     bool  `json:"has_next"`
}

// RemoteFilter is the tri-state remote criterion.
type RemoteFilter string

const (
	RemoteAll    RemoteFilter = "all"
	RemoteOnly   RemoteFilter = "true"
	RemoteOnsite RemoteFilter = "false"
)

// Matches reports whether a job's remote flag satisfies the criterion.
func (r RemoteFilter) Matches(remote bool) bool {
	switch r {
	case RemoteOnly:
		return remote
	case RemoteOnsite:
		return !remote
	default:
		return true
	}
}

// ViewMode selects how listings are laid out.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Criteria holds the active filter criteria.
type Criteria struct {
	Search   string       `json:"search"`
	Remote   RemoteFilter `json:"remote"`
	Location string       `json:"location"`
	Tags     []string     `json:"tags"`
	JobType  string       `json:"job_type"`
	ViewMode ViewMode     `json:"view_mode"`
}

// DefaultCriteria returns the criteria a fresh session starts with.
func DefaultCriteria() Criteria {
	return Criteria{
		Remote:   RemoteAll,
		Tags:     []string{},
		ViewMode: ViewGrid,
	}
}

// Clone returns a copy that shares no slices with c.
func (c Criteria) Clone() Criteria {
	out := c
	out.Tags = append([]string{}, c.Tags...)
	return out
}

// Equal reports whether two criteria are field-for-field identical.
func (c Criteria) Equal(o Criteria) bool {
	if c.Search != o.Search || c.Remote != o.Remote || c.Location != o.Location ||
		c.JobType != o.JobType || c.ViewMode != o.ViewMode || len(c.Tags) != len(o.Tags) {
		return false
	}
	for i := range c.Tags {
		if c.Tags[i] != o.Tags[i] {
			return false
		}
	}
	return true
}

// JobTypes are the job type values offered to users.
var JobTypes = []string{
	"Full-time",
	"Part-time",
	"Contract",
	"Freelance",
	"Internship",
	"Temporary",
}

// RemoteOption labels a RemoteFilter value for display.
type RemoteOption struct {
	Value RemoteFilter
	Label string
}

// RemoteOptions lists the remote choices in display order.
var RemoteOptions = []RemoteOption{
	{Value: RemoteAll, Label: "All Jobs"},
	{Value: RemoteOnly, Label: "Remote Only"},
	{Value: RemoteOnsite, Label: "On-Site Only"},
}

// RemoteLabel returns the display label for r, or r itself when unknown.
func RemoteLabel(r RemoteFilter) string {
	for _, opt := range RemoteOptions {
		if opt.Value == r {
			return opt.Label
		}
	}
	return string(r)
}
