package postgres

import (
	"context"
	"fmt"
	"time"

	"mancarijo/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS transition_journal (
	id         UUID PRIMARY KEY,
	kind       TEXT NOT NULL,
	job_id     TEXT NOT NULL,
	seeker_id  TEXT NOT NULL,
	actor_id   TEXT NOT NULL,
	step       TEXT NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	started_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS transition_journal_job_step_idx ON transition_journal (job_id, step);
`

type journalRepo struct {
	db *pgxpool.Pool
}

// NewJournalRepository creates the postgres-backed transition journal.
func NewJournalRepository(db *pgxpool.Pool) domain.JournalRepository {
	return &journalRepo{db: db}
}

// EnsureJournalSchema creates the journal table when it does not exist.
func EnsureJournalSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, journalSchema); err != nil {
		return fmt.Errorf("create transition_journal: %w", err)
	}
	return nil
}

func (r *journalRepo) Begin(ctx context.Context, entry *domain.JournalEntry) error {
	now := time.Now().UTC()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Step == "" {
		entry.Step = domain.JournalStarted
	}
	entry.StartedAt = now
	entry.UpdatedAt = now

	query := `
		INSERT INTO transition_journal (id, kind, job_id, seeker_id, actor_id, step, error, started_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID, string(entry.Kind), entry.JobID, entry.SeekerID, entry.ActorID,
		string(entry.Step), entry.Error, entry.StartedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (r *journalRepo) Advance(ctx context.Context, id uuid.UUID, step domain.JournalStep) error {
	query := `UPDATE transition_journal SET step = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, string(step), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("advance journal entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *journalRepo) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	query := `UPDATE transition_journal SET error = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("fail journal entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListDiverged returns entries of the given jobs that stopped after the
// seeker write, newest first.
func (r *journalRepo) ListDiverged(ctx context.Context, jobIDs []string) ([]domain.JournalEntry, error) {
	if len(jobIDs) == 0 {
		return []domain.JournalEntry{}, nil
	}

	query := `
		SELECT id, kind, job_id, seeker_id, actor_id, step, error, started_at, updated_at
		FROM transition_journal
		WHERE step = $1 AND job_id = ANY($2)
		ORDER BY started_at DESC
	`
	rows, err := r.db.Query(ctx, query, string(domain.JournalSeekerWritten), jobIDs)
	if err != nil {
		return nil, fmt.Errorf("list diverged entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var (
			e          domain.JournalEntry
			kind, step string
		)
		if err := rows.Scan(&e.ID, &kind, &e.JobID, &e.SeekerID, &e.ActorID, &step, &e.Error, &e.StartedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Kind = domain.TransitionKind(kind)
		e.Step = domain.JournalStep(step)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
