package source

import (
	"strings"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// Search is the wide server-side match: title, company, description and
// tags, case-insensitive. An empty term matches everything.
func Search(jobs []models.Job, term string) []models.Job {
	if term == "" {
		return jobs
	}

	needle := strings.ToLower(term)
	var out []models.Job
	for _, job := range jobs {
		if strings.Contains(strings.ToLower(job.Title), needle) ||
			strings.Contains(strings.ToLower(job.Company), needle) ||
			strings.Contains(strings.ToLower(job.Description), needle) ||
			tagContains(job.Tags, needle) {
			out = append(out, job)
		}
	}
	return out
}

func tagContains(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// paginate cuts one page out of jobs for sources that return a whole board at once.
func paginate(jobs []models.Job, q Query) *models.Page {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	page := max(q.Page, 1)

	total := len(jobs)
	lastPage := max((total+perPage-1)/perPage, 1)

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return &models.Page{
		Jobs:        append([]models.Job{}, jobs[start:end]...),
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
		HasNext:     page < lastPage,
	}
}
