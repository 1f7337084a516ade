package usecase

import (
	"context"
	"time"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/logger"
	"mancarijo/pkg/metrics"
)

type applicationUsecase struct {
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	journal  domain.JournalRepository
	metrics  *metrics.Metrics
}

// NewApplicationUsecase creates the application workflow. Each transition
// writes the seeker record, then the job record, then re-reads the job.
// The remote API has no transactions, so a failure between the two writes
// leaves them disagreeing; the journal records every such case.
func NewApplicationUsecase(
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	journal domain.JournalRepository,
	m *metrics.Metrics,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		journal:  journal,
		metrics:  m,
	}
}

func (uc *applicationUsecase) Apply(ctx context.Context, session domain.Session, jobID string) (*domain.TransitionResult, error) {
	if err := requireSeeker(session); err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, lookupError(err, "Job")
	}
	seeker, err := uc.seeker(ctx, session.UserID())
	if err != nil {
		return nil, err
	}

	newJob, newSeeker, err := domain.ApplyTransition(*job, *seeker, time.Now())
	if err != nil {
		return nil, uc.refused(domain.TransitionApply, err)
	}
	return uc.commit(ctx, domain.TransitionApply, session, newJob, newSeeker)
}

func (uc *applicationUsecase) Accept(ctx context.Context, session domain.Session, jobID, seekerID string) (*domain.TransitionResult, error) {
	job, seeker, err := uc.load(ctx, session, jobID, seekerID)
	if err != nil {
		return nil, err
	}

	newJob, newSeeker, err := domain.AcceptTransition(*job, *seeker, time.Now())
	if err != nil {
		return nil, uc.refused(domain.TransitionAccept, err)
	}
	return uc.commit(ctx, domain.TransitionAccept, session, newJob, newSeeker)
}

func (uc *applicationUsecase) Decline(ctx context.Context, session domain.Session, jobID, seekerID string) (*domain.TransitionResult, error) {
	job, seeker, err := uc.load(ctx, session, jobID, seekerID)
	if err != nil {
		return nil, err
	}

	newJob, newSeeker, err := domain.DeclineTransition(*job, *seeker)
	if err != nil {
		return nil, uc.refused(domain.TransitionDecline, err)
	}
	return uc.commit(ctx, domain.TransitionDecline, session, newJob, newSeeker)
}

// Stop ends a working employment and records it, rated, in the seeker's
// experience. Without a rating of 1 to 5 nothing is read or written.
func (uc *applicationUsecase) Stop(ctx context.Context, session domain.Session, jobID, seekerID string, rating int) (*domain.TransitionResult, error) {
	if err := requireProvider(session); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, uc.refused(domain.TransitionStop, domain.ErrInvalidRating)
	}

	job, seeker, err := uc.load(ctx, session, jobID, seekerID)
	if err != nil {
		return nil, err
	}
	provider, err := uc.userRepo.GetByID(ctx, job.PostedBy)
	if err != nil {
		return nil, lookupError(err, "Provider")
	}

	newJob, newSeeker, err := domain.StopTransition(*job, *seeker, provider.Name, rating, time.Now())
	if err != nil {
		return nil, uc.refused(domain.TransitionStop, err)
	}
	return uc.commit(ctx, domain.TransitionStop, session, newJob, newSeeker)
}

func (uc *applicationUsecase) AcknowledgeApplicants(ctx context.Context, session domain.Session, jobID string) (*domain.Job, error) {
	job, err := loadOwnedJob(ctx, uc.jobRepo, session, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsNewApplicantExist {
		return job, nil
	}
	return acknowledgeApplicants(ctx, uc.jobRepo, job)
}

// DivergedTransitions lists journal entries on the provider's jobs where
// the seeker was written but the job was not.
func (uc *applicationUsecase) DivergedTransitions(ctx context.Context, session domain.Session) ([]domain.JournalEntry, error) {
	if err := requireProvider(session); err != nil {
		return nil, err
	}

	jobs, err := uc.jobRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for _, j := range jobs {
		if j.PostedBy == session.UserID() {
			ids = append(ids, j.ID)
		}
	}

	entries, err := uc.journal.ListDiverged(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}

// load reads the provider's job and the seeker it acts on.
func (uc *applicationUsecase) load(ctx context.Context, session domain.Session, jobID, seekerID string) (*domain.Job, *domain.User, error) {
	job, err := loadOwnedJob(ctx, uc.jobRepo, session, jobID)
	if err != nil {
		return nil, nil, err
	}
	seeker, err := uc.seeker(ctx, seekerID)
	if err != nil {
		return nil, nil, err
	}
	return job, seeker, nil
}

func (uc *applicationUsecase) seeker(ctx context.Context, id string) (*domain.User, error) {
	seeker, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Job seeker")
	}
	if seeker.Role != "" && seeker.Role != domain.RoleJobSeeker {
		return nil, apperror.BadRequest("User is not a job seeker")
	}
	return seeker, nil
}

func (uc *applicationUsecase) refused(kind domain.TransitionKind, err error) error {
	uc.metrics.ObserveTransition(string(kind), "refused")
	return transitionError(err)
}

// commit performs the two writes and the re-read. Journal bookkeeping uses
// a context that outlives the request so a disconnect between the writes
// is still recorded.
func (uc *applicationUsecase) commit(ctx context.Context, kind domain.TransitionKind, session domain.Session, job domain.Job, seeker domain.User) (*domain.TransitionResult, error) {
	journalCtx := context.WithoutCancel(ctx)
	entry := &domain.JournalEntry{
		Kind:     kind,
		JobID:    job.ID,
		SeekerID: seeker.ID,
		ActorID:  session.UserID(),
	}
	if err := uc.journal.Begin(journalCtx, entry); err != nil {
		logger.Log.Warn("Failed to open journal entry", "kind", kind, "job_id", job.ID, "error", err)
		entry = nil
	}

	if err := uc.userRepo.Update(ctx, &seeker); err != nil {
		uc.fail(journalCtx, entry, err)
		uc.metrics.ObserveTransition(string(kind), "failed")
		return nil, err
	}
	uc.advance(journalCtx, entry, domain.JournalSeekerWritten)

	if err := uc.jobRepo.Update(ctx, &job); err != nil {
		uc.fail(journalCtx, entry, err)
		uc.metrics.ObserveTransition(string(kind), "diverged")
		uc.metrics.IncrementDiverged()
		logger.Log.Error("Seeker written but job write failed, records diverged",
			"kind", kind,
			"job_id", job.ID,
			"seeker_id", seeker.ID,
			"error", err,
		)
		return nil, err
	}
	uc.advance(journalCtx, entry, domain.JournalJobWritten)

	fresh, err := uc.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		logSwallowed("re-read job", err)
		fresh = &job
	}
	uc.advance(journalCtx, entry, domain.JournalCompleted)
	uc.metrics.ObserveTransition(string(kind), "ok")

	logger.Log.Info("Application transition completed",
		"kind", kind,
		"job_id", job.ID,
		"seeker_id", seeker.ID,
		"actor_id", session.UserID(),
	)

	return &domain.TransitionResult{
		Job:   fresh,
		State: domain.ApplicationStateOf(fresh, seeker.ID),
	}, nil
}

func (uc *applicationUsecase) advance(ctx context.Context, entry *domain.JournalEntry, step domain.JournalStep) {
	if entry == nil {
		return
	}
	if err := uc.journal.Advance(ctx, entry.ID, step); err != nil {
		logger.Log.Warn("Failed to advance journal entry", "entry_id", entry.ID, "step", step, "error", err)
	}
}

func (uc *applicationUsecase) fail(ctx context.Context, entry *domain.JournalEntry, cause error) {
	if entry == nil {
		return
	}
	if err := uc.journal.Fail(ctx, entry.ID, cause.Error()); err != nil {
		logger.Log.Warn("Failed to record journal failure", "entry_id", entry.ID, "error", err)
	}
}
