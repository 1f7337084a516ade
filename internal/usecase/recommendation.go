package usecase

import (
	"sort"
	"strings"

	"mancarijo/internal/domain"
)

const (
	NewestLimit      = 6
	RecommendedLimit = 6
)

// OpenJobs keeps the jobs with status open, in list order.
func OpenJobs(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.IsOpen() {
			out = append(out, j)
		}
	}
	return out
}

// NewestJobs returns at most n jobs by posted date, newest first. Jobs
// posted at the same instant keep their fetch order.
func NewestJobs(jobs []domain.Job, n int) []domain.Job {
	sorted := append([]domain.Job(nil), jobs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PostedDate.After(sorted[j].PostedDate.Time)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// PreferenceMatchedJobs returns the first n jobs sharing at least one
// preference with preferenceIDs. Overlap size does not rank.
func PreferenceMatchedJobs(jobs []domain.Job, preferenceIDs []string, n int) []domain.Job {
	out := []domain.Job{}
	if len(preferenceIDs) == 0 {
		return out
	}
	for _, j := range jobs {
		if len(out) == n {
			break
		}
		if j.SharesPreference(preferenceIDs) {
			out = append(out, j)
		}
	}
	return out
}

// SearchJobs matches query against job names, ignoring case. An empty
// query matches nothing; whitespace is matched literally like any other
// character.
func SearchJobs(jobs []domain.Job, query string) []domain.Job {
	out := []domain.Job{}
	q := strings.ToLower(query)
	if q == "" {
		return out
	}
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Name), q) {
			out = append(out, j)
		}
	}
	return out
}
