package usecase

import (
	"context"
	"sort"
	"sync"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthCheck checks one dependency; nil means healthy.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks map[string]HealthCheck
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

// Check runs every check concurrently with a short deadline. The overall
// status is "degraded" when any check fails.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]string, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		i, name := i, name
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := u.checks[name](ctx); err != nil {
				results[i] = "down"
				return
			}
			results[i] = "ok"
		}()
	}
	wg.Wait()

	status := map[string]string{"status": "ok"}
	for i, name := range names {
		status[name] = results[i]
		if results[i] != "ok" {
			status["status"] = "degraded"
		}
	}
	return status
}
