package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, s string) RawJob {
	t.Helper()
	var raw RawJob
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestNormalize_MockShape(t *testing.T) {
	raw := decodeRaw(t, `{
		"id": 3,
		"title": "DevOps Engineer",
		"company": "Enterprise Solutions",
		"location": "Hamburg, Germany",
		"remote": true,
		"job_type": "Full-time",
		"tags": ["Kubernetes", "Docker"],
		"url": "https://example.com/job/3",
		"created_at": "2024-01-13T09:15:00Z"
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "3", job.ID)
	assert.Equal(t, int64(3), job.NumericID)
	assert.Equal(t, "Enterprise Solutions", job.Company)
	assert.Equal(t, "Full-time", job.JobType)
	assert.Equal(t, "2024-01-13T09:15:00Z", job.CreatedAt)
	assert.Equal(t, []string{"Kubernetes", "Docker"}, job.Tags)
}

func TestNormalize_LiveShape(t *testing.T) {
	raw := decodeRaw(t, `{
		"slug": "backend-engineer-berlin-123",
		"company_name": "Acme GmbH",
		"title": "Backend Engineer",
		"remote": false,
		"job_types": ["Contract", "Full-time"],
		"location": "Berlin",
		"url": "https://www.arbeitnow.com/view/backend-engineer-berlin-123",
		"created_at": 1705312800
	}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "backend-engineer-berlin-123", job.ID)
	assert.Equal(t, "Acme GmbH", job.Company)
	assert.Equal(t, "Contract", job.JobType)
	assert.Equal(t, "2024-01-15T10:00:00Z", job.CreatedAt)
	assert.NotNil(t, job.Tags)
	assert.Empty(t, job.Tags)
}

func TestNormalize_SlugPreferredOverID(t *testing.T) {
	raw := decodeRaw(t, `{"id": 42, "slug": "qa-engineer", "title": "QA Engineer"}`)

	job, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, "qa-engineer", job.ID)
	assert.Equal(t, int64(42), job.NumericID)
}

func TestNormalize_RejectsJobWithoutIdentifier(t *testing.T) {
	raw := decodeRaw(t, `{"title": "Ghost"}`)

	_, err := Normalize(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.True(t, IsFetchFailure(err))
}

func TestNormalize_RejectsBadTimestamp(t *testing.T) {
	raw := decodeRaw(t, `{"id": 1, "title": "X", "created_at": {"nope": true}}`)

	_, err := Normalize(raw)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRemoteFilter_Matches(t *testing.T) {
	tests := []struct {
		filter RemoteFilter
		remote bool
		want   bool
	}{
		{RemoteAll, true, true},
		{RemoteAll, false, true},
		{RemoteOnly, true, true},
		{RemoteOnly, false, false},
		{RemoteOnsite, true, false},
		{RemoteOnsite, false, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.filter.Matches(tt.remote), "%s/%v", tt.filter, tt.remote)
	}
}

func TestCriteria_CloneAndEqual(t *testing.T) {
	c := DefaultCriteria()
	c.Tags = []string{"Go"}

	clone := c.Clone()
	assert.True(t, c.Equal(clone))

	clone.Tags[0] = "Rust"
	assert.Equal(t, "Go", c.Tags[0])
	assert.False(t, c.Equal(clone))
}

func TestJob_MatchesID(t *testing.T) {
	job := Job{ID: "go-dev-berlin", Slug: "go-dev-berlin", NumericID: 42}

	assert.True(t, job.MatchesID("go-dev-berlin"))
	assert.True(t, job.MatchesID("42"))
	assert.False(t, job.MatchesID("43"))
	assert.False(t, job.MatchesID(""))
	assert.False(t, Job{ID: "7"}.MatchesID("0"))
}
