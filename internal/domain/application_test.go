package domain_test

import (
	"testing"
	"time"

	"mancarijo/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJob() domain.Job {
	return domain.Job{
		ID:       "job-1",
		PostedBy: "provider-1",
		Name:     "Driver Pribadi",
		Status:   domain.JobStatusOpen,
	}
}

func seeker() domain.User {
	return domain.User{ID: "seeker-1", Name: "Andi", Role: domain.RoleJobSeeker}
}

func TestApplyTransition(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("Should add applicant and application id", func(t *testing.T) {
		job, user, err := domain.ApplyTransition(openJob(), seeker(), now)
		require.NoError(t, err)

		assert.True(t, job.HasApplicant("seeker-1"))
		assert.True(t, job.IsNewApplicantExist)
		assert.Equal(t, []string{"job-1"}, user.ApplicationIDs)
		assert.Equal(t, domain.StateApplied, domain.ApplicationStateOf(&job, "seeker-1"))
	})

	t.Run("Should reject closed job", func(t *testing.T) {
		closed := openJob()
		closed.Status = domain.JobStatusClosed

		_, _, err := domain.ApplyTransition(closed, seeker(), now)
		assert.ErrorIs(t, err, domain.ErrJobClosed)
	})

	t.Run("Should reject seeker already applied or accepted", func(t *testing.T) {
		applied := openJob()
		applied.Applicants = []domain.Applicant{{SeekerID: "seeker-1"}}
		_, _, err := domain.ApplyTransition(applied, seeker(), now)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		accepted := openJob()
		accepted.Accepted = []domain.AcceptedEntry{{SeekerID: "seeker-1", WorkStatus: domain.WorkStatusWorking}}
		_, _, err = domain.ApplyTransition(accepted, seeker(), now)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Should not mutate the input snapshot", func(t *testing.T) {
		original := openJob()
		_, _, err := domain.ApplyTransition(original, seeker(), now)
		require.NoError(t, err)
		assert.Empty(t, original.Applicants)
	})
}

func TestWorkflowEndToEnd(t *testing.T) {
	applyAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	acceptAt := applyAt.Add(24 * time.Hour)
	stopAt := acceptAt.Add(30 * 24 * time.Hour)

	job, user, err := domain.ApplyTransition(openJob(), seeker(), applyAt)
	require.NoError(t, err)
	assert.True(t, domain.SeekerPlacementValid(&job, user.ID))

	job, user, err = domain.AcceptTransition(job, user, acceptAt)
	require.NoError(t, err)
	assert.False(t, job.HasApplicant(user.ID))
	entry := job.AcceptedEntryFor(user.ID)
	require.NotNil(t, entry)
	assert.Equal(t, domain.WorkStatusWorking, entry.WorkStatus)
	assert.False(t, entry.IsNotificationRead)
	assert.Equal(t, "Selamat anda diterima untuk bekerja sebagai Driver Pribadi.", entry.NotificationMessage)
	assert.NotContains(t, user.ApplicationIDs, job.ID)
	assert.True(t, domain.SeekerPlacementValid(&job, user.ID))

	job, user, err = domain.StopTransition(job, user, "PT Minahasa", 4, stopAt)
	require.NoError(t, err)
	assert.Equal(t, domain.StateStopped, domain.ApplicationStateOf(&job, user.ID))
	require.Len(t, user.Experiences, 1)
	exp := user.Experiences[0]
	assert.Equal(t, 4, exp.Rating)
	assert.Equal(t, "PT Minahasa", exp.CompanyName)
	assert.True(t, exp.Period.Start.Equal(acceptAt))
	assert.True(t, exp.Period.End.Equal(stopAt))
}

func TestDeclineTransition(t *testing.T) {
	job, user, err := domain.ApplyTransition(openJob(), seeker(), time.Now())
	require.NoError(t, err)

	job, user, err = domain.DeclineTransition(job, user)
	require.NoError(t, err)

	assert.False(t, job.HasApplicant(user.ID))
	assert.Equal(t, []string{"seeker-1"}, job.Declined)
	assert.Empty(t, user.ApplicationIDs)
	assert.Equal(t, domain.StateDeclined, domain.ApplicationStateOf(&job, user.ID))

	t.Run("Should not allow re-apply after decline", func(t *testing.T) {
		_, _, err := domain.ApplyTransition(job, user, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestStopTransitionGuards(t *testing.T) {
	job, user, err := domain.ApplyTransition(openJob(), seeker(), time.Now())
	require.NoError(t, err)

	t.Run("Should reject stop before acceptance", func(t *testing.T) {
		_, _, err := domain.StopTransition(job, user, "PT", 3, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	job, user, err = domain.AcceptTransition(job, user, time.Now())
	require.NoError(t, err)

	for _, rating := range []int{0, -1, 6} {
		_, _, err := domain.StopTransition(job, user, "PT", rating, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidRating, "rating %d", rating)
	}
	assert.Equal(t, domain.StateWorking, domain.ApplicationStateOf(&job, user.ID))
	assert.Empty(t, user.Experiences)
}

func TestToggleStatus(t *testing.T) {
	job := domain.ToggleStatus(openJob())
	assert.Equal(t, domain.JobStatusClosed, job.Status)
	assert.Equal(t, domain.JobStatusOpen, domain.ToggleStatus(job).Status)
}
