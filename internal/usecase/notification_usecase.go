package usecase

import (
	"context"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/logger"
)

type notificationUsecase struct {
	jobRepo domain.JobRepository
}

func NewNotificationUsecase(jobRepo domain.JobRepository) domain.NotificationUsecase {
	return &notificationUsecase{jobRepo: jobRepo}
}

// Check reports whether the seeker has an acceptance message not yet read.
func (u *notificationUsecase) Check(ctx context.Context, session domain.Session) (*domain.NotificationStatus, error) {
	if err := requireSeeker(session); err != nil {
		return nil, err
	}

	jobs, err := u.jobRepo.List(ctx)
	if err != nil {
		logSwallowed("notification check", err)
		return &domain.NotificationStatus{}, nil
	}

	unread, ok := domain.FindUnreadAcceptance(jobs, session.UserID())
	if !ok {
		return &domain.NotificationStatus{}, nil
	}
	return &domain.NotificationStatus{
		Unread:  true,
		JobID:   unread.JobID,
		JobName: unread.JobName,
	}, nil
}

// Read returns the unread message once and marks it read on the job.
func (u *notificationUsecase) Read(ctx context.Context, session domain.Session) (*domain.NotificationMessage, error) {
	if err := requireSeeker(session); err != nil {
		return nil, err
	}

	jobs, err := u.jobRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	unread, ok := domain.FindUnreadAcceptance(jobs, session.UserID())
	if !ok {
		return nil, apperror.NotFound("No unread message")
	}

	// Mark on a fresh copy so the whole-record write carries the latest job.
	job, err := u.jobRepo.GetByID(ctx, unread.JobID)
	if err != nil {
		return nil, lookupError(err, "Job")
	}
	updated, message, ok := domain.MarkNotificationRead(*job, session.UserID())
	if !ok {
		return nil, apperror.NotFound("No unread message")
	}
	if err := u.jobRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	logger.Log.Info("Acceptance message read", "job_id", job.ID, "seeker_id", session.UserID())
	return &domain.NotificationMessage{JobID: job.ID, Message: message}, nil
}
