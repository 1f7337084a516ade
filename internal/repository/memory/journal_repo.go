// Package memory holds in-process fallbacks for repositories whose backing
// service is not configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"mancarijo/internal/domain"

	"github.com/google/uuid"
)

type journalRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]domain.JournalEntry
}

// NewJournalRepository keeps the transition journal in process memory.
func NewJournalRepository() domain.JournalRepository {
	return &journalRepo{entries: make(map[uuid.UUID]domain.JournalEntry)}
}

func (r *journalRepo) Begin(_ context.Context, entry *domain.JournalEntry) error {
	now := time.Now().UTC()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Step == "" {
		entry.Step = domain.JournalStarted
	}
	entry.StartedAt = now
	entry.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = *entry
	return nil
}

func (r *journalRepo) Advance(_ context.Context, id uuid.UUID, step domain.JournalStep) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Step = step
	e.UpdatedAt = time.Now().UTC()
	r.entries[id] = e
	return nil
}

func (r *journalRepo) Fail(_ context.Context, id uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Error = reason
	e.UpdatedAt = time.Now().UTC()
	r.entries[id] = e
	return nil
}

func (r *journalRepo) ListDiverged(_ context.Context, jobIDs []string) ([]domain.JournalEntry, error) {
	wanted := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		wanted[id] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.JournalEntry{}
	for _, e := range r.entries {
		if e.Step == domain.JournalSeekerWritten && wanted[e.JobID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}
