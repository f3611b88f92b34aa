package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawJob mirrors a job as the listing API sends it. Two field-name
// variants exist in the wild (company/company_name, job_type/job_types), and
// ids and timestamps arrive either as numbers or strings.
type RawJob struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Slug        string          `json:"slug,omitempty"`
	Title       string          `json:"title"`
	Company     string          `json:"company,omitempty"`
	CompanyName string          `json:"company_name,omitempty"`
	Location    string          `json:"location,omitempty"`
	Remote      bool            `json:"remote"`
	JobType     string          `json:"job_type,omitempty"`
	JobTypes    []string        `json:"job_types,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url"`
	CreatedAt   json.RawMessage `json:"created_at,omitempty"`
}

// Normalize converts a raw listing into the canonical Job shape.
// The slug is preferred as identifier; a job with neither slug nor id is
// rejected with ErrMalformed.
func Normalize(raw RawJob) (Job, error) {
	numeric, idText, err := parseID(raw.ID)
	if err != nil {
		return Job{}, fmt.Errorf("%w: job %q: %v", ErrMalformed, raw.Title, err)
	}

	id := raw.Slug
	if id == "" {
		id = idText
	}
	if id == "" {
		return Job{}, fmt.Errorf("%w: job %q has no slug or id", ErrMalformed, raw.Title)
	}

	company := raw.Company
	if company == "" {
		company = raw.CompanyName
	}

	jobType := raw.JobType
	if jobType == "" && len(raw.JobTypes) > 0 {
		jobType = raw.JobTypes[0]
	}

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	createdAt, err := parseTimestamp(raw.CreatedAt)
	if err != nil {
		return Job{}, fmt.Errorf("%w: job %q: %v", ErrMalformed, id, err)
	}

	return Job{
		ID:          id,
		Slug:        raw.Slug,
		NumericID:   numeric,
		Title:       raw.Title,
		Company:     company,
		Location:    raw.Location,
		Remote:      raw.Remote,
		JobType:     jobType,
		Tags:        append([]string{}, tags...),
		Description: raw.Description,
		URL:         raw.URL,
		CreatedAt:   createdAt,
	}, nil
}

// NormalizeAll normalizes a batch, failing on the first malformed entry.
func NormalizeAll(raws []RawJob) ([]Job, error) {
	jobs := make([]Job, 0, len(raws))
	for _, raw := range raws {
		job, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func parseID(raw json.RawMessage) (int64, string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, "", fmt.Errorf("invalid id: %v", err)
		}
		n, _ := strconv.ParseInt(s, 10, 64)
		return n, s, nil
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, "", fmt.Errorf("invalid id %s", raw)
	}
	return n, strconv.FormatInt(n, 10), nil
}

// parseTimestamp accepts an ISO 8601 string (kept verbatim) or unix seconds
// (converted to RFC 3339 UTC).
func parseTimestamp(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid created_at: %v", err)
		}
		return strings.TrimSpace(s), nil
	}

	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return "", fmt.Errorf("invalid created_at %s", raw)
	}
	return time.Unix(secs, 0).UTC().Format(time.RFC3339), nil
}
