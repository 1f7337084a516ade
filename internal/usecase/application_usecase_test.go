package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mancarijo/internal/domain"
	"mancarijo/internal/repository/memory"
	"mancarijo/internal/usecase"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workflowFixture() (*fakeJobs, *fakeUsers) {
	jobs := newFakeJobs(
		domain.Job{ID: "j1", PostedBy: "p1", Name: "Driver Pribadi", Status: domain.JobStatusOpen},
		domain.Job{ID: "j2", PostedBy: "p1", Name: "Kasir", Status: domain.JobStatusClosed},
		domain.Job{ID: "j3", PostedBy: "p2", Name: "Satpam", Status: domain.JobStatusOpen},
	)
	users := newFakeUsers(
		domain.User{ID: "s1", Name: "Budi", Role: domain.RoleJobSeeker},
		domain.User{ID: "p1", Name: "PT Maju Jaya", Role: domain.RoleJobProvider},
		domain.User{ID: "p2", Name: "CV Sentosa", Role: domain.RoleJobProvider},
	)
	return jobs, users
}

func TestApplicationWorkflowEndToEnd(t *testing.T) {
	ctx := context.Background()
	jobs, users := workflowFixture()
	journal := memory.NewJournalRepository()
	m := metrics.New(prometheus.NewRegistry())
	uc := usecase.NewApplicationUsecase(jobs, users, journal, m)

	before := time.Now()

	t.Run("Should apply to an open job", func(t *testing.T) {
		res, err := uc.Apply(ctx, seekerSession("s1"), "j1")
		require.NoError(t, err)
		assert.Equal(t, domain.StateApplied, res.State)

		job := jobs.get("j1")
		assert.True(t, job.HasApplicant("s1"))
		assert.True(t, job.IsNewApplicantExist)
		seeker := users.get("s1")
		assert.Equal(t, []string{"j1"}, seeker.ApplicationIDs)
	})

	t.Run("Should accept the applicant", func(t *testing.T) {
		res, err := uc.Accept(ctx, providerSession("p1"), "j1", "s1")
		require.NoError(t, err)
		assert.Equal(t, domain.StateWorking, res.State)

		job := jobs.get("j1")
		assert.False(t, job.HasApplicant("s1"))
		entry := job.AcceptedEntryFor("s1")
		require.NotNil(t, entry)
		assert.Equal(t, domain.WorkStatusWorking, entry.WorkStatus)
		assert.False(t, entry.IsNotificationRead)
		assert.Equal(t, "Selamat anda diterima untuk bekerja sebagai Driver Pribadi.", entry.NotificationMessage)
		assert.True(t, domain.SeekerPlacementValid(&job, "s1"))
	})

	t.Run("Should stop the employee with a rating", func(t *testing.T) {
		res, err := uc.Stop(ctx, providerSession("p1"), "j1", "s1", 4)
		require.NoError(t, err)
		assert.Equal(t, domain.StateStopped, res.State)

		seeker := users.get("s1")
		require.Len(t, seeker.Experiences, 1)
		exp := seeker.Experiences[0]
		assert.Equal(t, 4, exp.Rating)
		assert.Equal(t, "PT Maju Jaya", exp.CompanyName)
		assert.False(t, exp.Period.End.Before(before))

		job := jobs.get("j1")
		assert.Equal(t, domain.WorkStatusStopped, job.AcceptedEntryFor("s1").WorkStatus)
	})

	t.Run("Should leave nothing flagged in the journal", func(t *testing.T) {
		entries, err := uc.DivergedTransitions(ctx, providerSession("p1"))
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("stop", "ok")))
	})
}

func TestApplicationGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse to apply to a closed job without writing", func(t *testing.T) {
		jobs, users := workflowFixture()
		uc := usecase.NewApplicationUsecase(jobs, users, memory.NewJournalRepository(), nil)

		_, err := uc.Apply(ctx, seekerSession("s1"), "j2")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.Zero(t, jobs.writes)
		assert.Zero(t, users.writes)
	})

	t.Run("Should refuse to apply twice", func(t *testing.T) {
		jobs, users := workflowFixture()
		uc := usecase.NewApplicationUsecase(jobs, users, memory.NewJournalRepository(), nil)

		_, err := uc.Apply(ctx, seekerSession("s1"), "j1")
		require.NoError(t, err)
		_, err = uc.Apply(ctx, seekerSession("s1"), "j1")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("Should refuse a provider applying", func(t *testing.T) {
		jobs, users := workflowFixture()
		uc := usecase.NewApplicationUsecase(jobs, users, memory.NewJournalRepository(), nil)

		_, err := uc.Apply(ctx, providerSession("p1"), "j1")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("Should refuse to let another provider accept", func(t *testing.T) {
		jobs, users := workflowFixture()
		uc := usecase.NewApplicationUsecase(jobs, users, memory.NewJournalRepository(), nil)

		_, err := uc.Apply(ctx, seekerSession("s1"), "j1")
		require.NoError(t, err)
		_, err = uc.Accept(ctx, providerSession("p2"), "j1", "s1")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("Should not re-apply after being declined", func(t *testing.T) {
		jobs, users := workflowFixture()
		uc := usecase.NewApplicationUsecase(jobs, users, memory.NewJournalRepository(), nil)

		_, err := uc.Apply(ctx, seekerSession("s1"), "j1")
		require.NoError(t, err)
		res, err := uc.Decline(ctx, providerSession("p1"), "j1", "s1")
		require.NoError(t, err)
		assert.Equal(t, domain.StateDeclined, res.State)
		assert.Empty(t, users.get("s1").ApplicationIDs)

		_, err = uc.Apply(ctx, seekerSession("s1"), "j1")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("Should abort stop without a rating before any write", func(t *testing.T) {
		jobs, users := workflowFixture()
		uc := usecase.NewApplicationUsecase(jobs, users, memory.NewJournalRepository(), nil)

		_, err := uc.Apply(ctx, seekerSession("s1"), "j1")
		require.NoError(t, err)
		_, err = uc.Accept(ctx, providerSession("p1"), "j1", "s1")
		require.NoError(t, err)
		jobWrites, userWrites := jobs.writes, users.writes

		for _, rating := range []int{0, -1, 6} {
			_, err = uc.Stop(ctx, providerSession("p1"), "j1", "s1", rating)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		}
		assert.Equal(t, jobWrites, jobs.writes)
		assert.Equal(t, userWrites, users.writes)
		assert.Empty(t, users.get("s1").Experiences)
	})

	t.Run("Should report an unknown job as not found", func(t *testing.T) {
		jobs, users := workflowFixture()
		uc := usecase.NewApplicationUsecase(jobs, users, memory.NewJournalRepository(), nil)

		_, err := uc.Apply(ctx, seekerSession("s1"), "nope")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestApplicationDivergence(t *testing.T) {
	ctx := context.Background()
	jobs, users := workflowFixture()
	journal := memory.NewJournalRepository()
	m := metrics.New(prometheus.NewRegistry())
	uc := usecase.NewApplicationUsecase(jobs, users, journal, m)

	jobs.failWrite = apperror.Transport("PATCH /job/j1", errors.New("connection reset"))

	_, err := uc.Apply(ctx, seekerSession("s1"), "j1")
	require.Error(t, err)
	assert.Equal(t, apperror.KindTransport, apperror.KindOf(err))

	t.Run("Should leave the seeker written and the job untouched", func(t *testing.T) {
		assert.Equal(t, []string{"j1"}, users.get("s1").ApplicationIDs)
		job := jobs.get("j1")
		assert.False(t, job.HasApplicant("s1"))
	})

	t.Run("Should flag the divergence in the journal", func(t *testing.T) {
		entries, err := uc.DivergedTransitions(ctx, providerSession("p1"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.TransitionApply, entries[0].Kind)
		assert.Equal(t, "s1", entries[0].SeekerID)
		assert.Contains(t, entries[0].Error, "connection reset")
		assert.Equal(t, 1.0, testutil.ToFloat64(m.DivergedEntries))
	})

	t.Run("Should not show the entry to another provider", func(t *testing.T) {
		entries, err := uc.DivergedTransitions(ctx, providerSession("p2"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestAcknowledgeApplicants(t *testing.T) {
	ctx := context.Background()
	jobs, users := workflowFixture()
	uc := usecase.NewApplicationUsecase(jobs, users, memory.NewJournalRepository(), nil)

	_, err := uc.Apply(ctx, seekerSession("s1"), "j1")
	require.NoError(t, err)
	require.True(t, jobs.get("j1").IsNewApplicantExist)

	job, err := uc.AcknowledgeApplicants(ctx, providerSession("p1"), "j1")
	require.NoError(t, err)
	assert.False(t, job.IsNewApplicantExist)
	assert.True(t, job.HasApplicant("s1"))
}
