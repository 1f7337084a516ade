package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TransitionKind string

const (
	TransitionApply   TransitionKind = "apply"
	TransitionAccept  TransitionKind = "accept"
	TransitionDecline TransitionKind = "decline"
	TransitionStop    TransitionKind = "stop"
)

// JournalStep is how far a two-step transition got. An entry left at
// JournalSeekerWritten means the seeker record was written but the job
// record was not: the two collections disagree. A failure keeps the step
// it happened at and records the error.
type JournalStep string

const (
	JournalStarted       JournalStep = "started"
	JournalSeekerWritten JournalStep = "seeker_written"
	JournalJobWritten    JournalStep = "job_written"
	JournalCompleted     JournalStep = "completed"
)

type JournalEntry struct {
	ID        uuid.UUID      `json:"id"`
	Kind      TransitionKind `json:"kind"`
	JobID     string         `json:"jobId"`
	SeekerID  string         `json:"seekerId"`
	ActorID   string         `json:"actorId"`
	Step      JournalStep    `json:"step"`
	Error     string         `json:"error,omitempty"`
	StartedAt time.Time      `json:"startedAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// JournalRepository records workflow transitions. It is advisory: callers
// log its failures and carry on.
type JournalRepository interface {
	Begin(ctx context.Context, entry *JournalEntry) error
	Advance(ctx context.Context, id uuid.UUID, step JournalStep) error
	Fail(ctx context.Context, id uuid.UUID, reason string) error
	ListDiverged(ctx context.Context, jobIDs []string) ([]JournalEntry, error)
}
