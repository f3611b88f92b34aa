package utils

import (
	"fmt"
	"strings"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// IsValidJobType checks if the job type is one of the offered values.
// The empty string means "any" and is valid.
func IsValidJobType(jobType string) bool {
	if jobType == "" {
		return true
	}
	for _, t := range models.JobTypes {
		if t == jobType {
			return true
		}
	}
	return false
}

// IsValidViewMode checks if the view mode is supported
func IsValidViewMode(mode string) bool {
	validModes := map[string]bool{
		string(models.ViewGrid): true,
		string(models.ViewList): true,
	}
	return validModes[strings.ToLower(mode)]
}

// ParseRemote converts user input into a RemoteFilter.
// Accepts the canonical values plus the words people actually type.
func ParseRemote(value string) (models.RemoteFilter, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all", "any":
		return models.RemoteAll, nil
	case "true", "remote", "yes":
		return models.RemoteOnly, nil
	case "false", "onsite", "on-site", "no":
		return models.RemoteOnsite, nil
	default:
		return "", fmt.Errorf("invalid remote value %q (want all, remote or onsite)", value)
	}
}

// CollectTags returns the distinct non-blank tags of jobs in first-seen order.
func CollectTags(jobs []models.Job) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, job := range jobs {
		for _, tag := range job.Tags {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
