package filters

import (
	"strings"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// Predicate reports whether a job passes one criterion.
type Predicate func(models.Job) bool

// Predicates builds the active predicates for c in evaluation order:
// search, remote, location, tags, job type. Inactive criteria contribute nothing.
//
// Search matches the title only. The wider match (company, description,
// tags) is what the server-side search parameter does; the client side
// narrows what is already loaded.
func Predicates(c models.Criteria) []Predicate {
	var preds []Predicate

	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		preds = append(preds, func(j models.Job) bool {
			return strings.Contains(strings.ToLower(j.Title), needle)
		})
	}

	if c.Remote != "" && c.Remote != models.RemoteAll {
		remote := c.Remote
		preds = append(preds, func(j models.Job) bool {
			return remote.Matches(j.Remote)
		})
	}

	if c.Location != "" {
		needle := strings.ToLower(c.Location)
		preds = append(preds, func(j models.Job) bool {
			return strings.Contains(strings.ToLower(j.Location), needle)
		})
	}

	if len(c.Tags) > 0 {
		required := append([]string{}, c.Tags...)
		preds = append(preds, func(j models.Job) bool {
			for _, tag := range required {
				if j.HasTag(tag) {
					return true
				}
			}
			return false
		})
	}

	if c.JobType != "" {
		jobType := c.JobType
		preds = append(preds, func(j models.Job) bool {
			return j.JobType == jobType
		})
	}

	return preds
}

// Matches reports whether job satisfies every active criterion.
func Matches(job models.Job, c models.Criteria) bool {
	return all(Predicates(c), job)
}

// Apply returns the jobs satisfying every active criterion, in input order.
// The input slice is never modified.
func Apply(jobs []models.Job, c models.Criteria) []models.Job {
	preds := Predicates(c)
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if all(preds, job) {
			out = append(out, job)
		}
	}
	return out
}

// ApplyAnnotated is Apply over jobs already joined with bookmark status.
func ApplyAnnotated(jobs []models.AnnotatedJob, c models.Criteria) []models.AnnotatedJob {
	preds := Predicates(c)
	out := make([]models.AnnotatedJob, 0, len(jobs))
	for _, job := range jobs {
		if all(preds, job.Job) {
			out = append(out, job)
		}
	}
	return out
}

func all(preds []Predicate, job models.Job) bool {
	for _, pred := range preds {
		if !pred(job) {
			return false
		}
	}
	return true
}
