package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"mancarijo/internal/domain"
	"mancarijo/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobAt(id string, posted time.Time, prefs ...string) domain.Job {
	return domain.Job{
		ID:            id,
		Name:          "Job " + id,
		Status:        domain.JobStatusOpen,
		PostedDate:    domain.NewTimestamp(posted),
		PreferenceIDs: prefs,
	}
}

func ids(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestOpenJobs(t *testing.T) {
	jobs := []domain.Job{
		{ID: "a", Status: domain.JobStatusOpen},
		{ID: "b", Status: domain.JobStatusClosed},
		{ID: "c", Status: domain.JobStatusOpen},
	}
	assert.Equal(t, []string{"a", "c"}, ids(usecase.OpenJobs(jobs)))
}

func TestNewestJobs(t *testing.T) {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("Should sort newest first and cap at six", func(t *testing.T) {
		var jobs []domain.Job
		for i := 0; i < 9; i++ {
			jobs = append(jobs, jobAt(fmt.Sprint(i), base.Add(time.Duration(i)*time.Hour)))
		}
		got := usecase.NewestJobs(jobs, usecase.NewestLimit)
		assert.Equal(t, []string{"8", "7", "6", "5", "4", "3"}, ids(got))
	})

	t.Run("Should keep fetch order for equal dates", func(t *testing.T) {
		jobs := []domain.Job{
			jobAt("first", base),
			jobAt("newer", base.Add(time.Hour)),
			jobAt("second", base),
			jobAt("third", base),
		}
		got := usecase.NewestJobs(jobs, usecase.NewestLimit)
		assert.Equal(t, []string{"newer", "first", "second", "third"}, ids(got))
	})

	t.Run("Should not reorder the input", func(t *testing.T) {
		jobs := []domain.Job{jobAt("old", base), jobAt("new", base.Add(time.Hour))}
		usecase.NewestJobs(jobs, 6)
		assert.Equal(t, []string{"old", "new"}, ids(jobs))
	})
}

func TestPreferenceMatchedJobs(t *testing.T) {
	base := time.Now()

	t.Run("Should keep list order and cap at six", func(t *testing.T) {
		var jobs []domain.Job
		for i := 0; i < 10; i++ {
			pref := "other"
			if i%2 == 0 || i > 5 {
				pref = "driver"
			}
			jobs = append(jobs, jobAt(fmt.Sprint(i), base, pref))
		}
		got := usecase.PreferenceMatchedJobs(jobs, []string{"driver"}, usecase.RecommendedLimit)
		require.Len(t, got, 6)
		assert.Equal(t, []string{"0", "2", "4", "6", "7", "8"}, ids(got))
		for _, j := range got {
			assert.True(t, j.SharesPreference([]string{"driver"}))
		}
	})

	t.Run("Should match on any shared preference", func(t *testing.T) {
		jobs := []domain.Job{
			jobAt("a", base, "x", "y"),
			jobAt("b", base, "z"),
			jobAt("c", base),
		}
		got := usecase.PreferenceMatchedJobs(jobs, []string{"y", "q"}, 6)
		assert.Equal(t, []string{"a"}, ids(got))
	})

	t.Run("Should return nothing without seeker preferences", func(t *testing.T) {
		got := usecase.PreferenceMatchedJobs([]domain.Job{jobAt("a", base, "x")}, nil, 6)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}

func TestSearchJobs(t *testing.T) {
	jobs := []domain.Job{
		{ID: "1", Name: "Driver Pribadi"},
		{ID: "2", Name: "Kasir Toko"},
		{ID: "3", Name: "DRIVER Ojek"},
	}

	t.Run("Should match case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"1", "3"}, ids(usecase.SearchJobs(jobs, "driver")))
	})

	t.Run("Should return nothing for an empty query", func(t *testing.T) {
		assert.Empty(t, usecase.SearchJobs(jobs, ""))
	})

	t.Run("Should treat a blank query as literal text", func(t *testing.T) {
		assert.Equal(t, []string{"1", "2", "3"}, ids(usecase.SearchJobs(jobs, " ")))
		assert.Empty(t, usecase.SearchJobs(jobs, "   "))
	})

	t.Run("Should return nothing when nothing matches", func(t *testing.T) {
		assert.Empty(t, usecase.SearchJobs(jobs, "pilot"))
	})
}
