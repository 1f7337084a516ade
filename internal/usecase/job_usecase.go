package usecase

import (
	"context"
	"strings"
	"time"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/format"
	"mancarijo/pkg/logger"
)

type jobUsecase struct {
	jobRepo     domain.JobRepository
	userRepo    domain.UserRepository
	prefRepo    domain.PreferenceRepository
	preferences domain.PreferenceUsecase
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	prefRepo domain.PreferenceRepository,
	preferences domain.PreferenceUsecase,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		prefRepo:    prefRepo,
		preferences: preferences,
	}
}

// JobList builds the landing page. Every part is computed from a fresh
// snapshot; a part whose read fails is rendered empty.
func (u *jobUsecase) JobList(ctx context.Context, session domain.Session) (*domain.JobListPage, error) {
	jobs, err := u.jobRepo.List(ctx)
	if err != nil {
		logSwallowed("job list", err)
		jobs = nil
	}
	catalogue := u.catalogue(ctx)
	open := OpenJobs(jobs)

	page := &domain.JobListPage{
		Jobs:          summarize(open, catalogue),
		Newest:        summarize(NewestJobs(open, NewestLimit), catalogue),
		Recommended:   []domain.JobSummary{},
		SearchQuery:   session.SearchQuery,
		SearchResults: summarize(SearchJobs(open, session.SearchQuery), catalogue),
		Testimonies:   []domain.Testimony{},
	}

	if session.IsSeeker() {
		seeker, err := u.userRepo.GetByID(ctx, session.UserID())
		if err != nil {
			logSwallowed("seeker preferences", err)
		} else {
			page.Recommended = summarize(PreferenceMatchedJobs(open, seeker.PreferenceIDs, RecommendedLimit), catalogue)
		}
	}

	users, err := u.userRepo.List(ctx)
	if err != nil {
		logSwallowed("testimonies", err)
	} else {
		page.Testimonies = domain.Testimonies(users)
	}

	return page, nil
}

func (u *jobUsecase) SeekerJobDetail(ctx context.Context, session domain.Session, id string) (*domain.SeekerJobDetail, error) {
	if err := requireSeeker(session); err != nil {
		return nil, err
	}

	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Job")
	}

	detail := &domain.SeekerJobDetail{
		Job:         job,
		Preferences: domain.PreferenceNames(u.catalogue(ctx), job.PreferenceIDs),
		Salary:      format.Salary(job.Salary),
		PostedDate:  format.Date(job.PostedDate.Time),
		State:       domain.ApplicationStateOf(job, session.UserID()),
	}
	detail.CanApply = job.IsOpen() && detail.State == domain.StateNotApplied

	creator, err := u.userRepo.GetByID(ctx, job.PostedBy)
	if err != nil {
		logSwallowed("job creator", err)
	} else {
		detail.CreatorName = creator.Name
	}

	return detail, nil
}

// ProviderJobDetail opens a job for its owner. Opening it acknowledges any
// new applicants.
func (u *jobUsecase) ProviderJobDetail(ctx context.Context, session domain.Session, id string) (*domain.ProviderJobDetail, error) {
	job, err := u.ownedJob(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if job.IsNewApplicantExist {
		acknowledged, err := acknowledgeApplicants(ctx, u.jobRepo, job)
		if err != nil {
			logSwallowed("acknowledge applicants", err)
		} else {
			job = acknowledged
		}
	}

	people, err := loadJobPeople(ctx, u.userRepo, job)
	if err != nil {
		logSwallowed("job applicants", err)
		people = emptyJobPeople()
	}

	return &domain.ProviderJobDetail{
		Job:              job,
		Preferences:      domain.PreferenceNames(u.catalogue(ctx), job.PreferenceIDs),
		Salary:           format.Salary(job.Salary),
		PostedDate:       format.Date(job.PostedDate.Time),
		Applicants:       people.applicants,
		WorkingEmployees: people.working,
		StoppedEmployees: people.stopped,
	}, nil
}

func (u *jobUsecase) PostJob(ctx context.Context, session domain.Session, input domain.PostJobInput) (*domain.Job, error) {
	if err := requireProvider(session); err != nil {
		return nil, err
	}

	start, end := padClock(input.WorkHoursStart), padClock(input.WorkHoursEnd)
	if start > end {
		return nil, apperror.BadRequest("Work hours cannot end before they start")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.BadRequest("Job name is required")
	}

	preferenceIDs, err := u.preferences.Resolve(ctx, input.Preferences)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		PostedBy:      session.UserID(),
		PostedDate:    domain.NewTimestamp(time.Now()),
		Name:          strings.TrimSpace(input.Name),
		PreferenceIDs: preferenceIDs,
		Requirements:  input.Requirements,
		Location:      domain.Location{Description: input.Address},
		Salary:        input.Salary,
		WorkHours:     domain.TimeRange{Start: start, End: end},
		Status:        domain.JobStatusOpen,
	}
	if input.WorkDaysStart != "" {
		job.WorkDays = &domain.TimeRange{Start: input.WorkDaysStart, End: input.WorkDaysEnd}
	}

	created, err := u.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Job posted", "job_id", created.ID, "provider_id", session.UserID())
	return created, nil
}

func (u *jobUsecase) PostedJobs(ctx context.Context, session domain.Session) ([]domain.JobSummary, error) {
	if err := requireProvider(session); err != nil {
		return nil, err
	}

	jobs, err := u.jobRepo.List(ctx)
	if err != nil {
		logSwallowed("posted jobs", err)
		return []domain.JobSummary{}, nil
	}

	posted := make([]domain.Job, 0)
	for _, j := range jobs {
		if j.PostedBy == session.UserID() {
			posted = append(posted, j)
		}
	}
	return summarize(posted, u.catalogue(ctx)), nil
}

// AppliedJobs lists the jobs in the seeker's application list, and the
// jobs that declined the seeker, found by scanning every job.
func (u *jobUsecase) AppliedJobs(ctx context.Context, session domain.Session) (*domain.AppliedJobsPage, error) {
	if err := requireSeeker(session); err != nil {
		return nil, err
	}

	page := &domain.AppliedJobsPage{
		Applied:  []domain.JobSummary{},
		Declined: []domain.JobSummary{},
	}

	seeker, err := u.userRepo.GetByID(ctx, session.UserID())
	if err != nil {
		logSwallowed("applied jobs seeker", err)
		return page, nil
	}
	jobs, err := u.jobRepo.List(ctx)
	if err != nil {
		logSwallowed("applied jobs", err)
		return page, nil
	}

	var applied, declined []domain.Job
	for _, j := range jobs {
		if seeker.HasApplication(j.ID) {
			applied = append(applied, j)
		}
		if j.HasDeclined(seeker.ID) {
			declined = append(declined, j)
		}
	}

	catalogue := u.catalogue(ctx)
	page.Applied = summarize(applied, catalogue)
	page.Declined = summarize(declined, catalogue)
	return page, nil
}

func (u *jobUsecase) ToggleStatus(ctx context.Context, session domain.Session, id string) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, session, id)
	if err != nil {
		return nil, err
	}

	toggled := domain.ToggleStatus(*job)
	if err := u.jobRepo.Update(ctx, &toggled); err != nil {
		return nil, err
	}
	logger.Log.Info("Job status changed", "job_id", id, "status", toggled.Status)

	return u.reread(ctx, &toggled), nil
}

func (u *jobUsecase) ownedJob(ctx context.Context, session domain.Session, id string) (*domain.Job, error) {
	return loadOwnedJob(ctx, u.jobRepo, session, id)
}

// loadOwnedJob loads a job and checks the session's provider posted it.
func loadOwnedJob(ctx context.Context, repo domain.JobRepository, session domain.Session, id string) (*domain.Job, error) {
	if err := requireProvider(session); err != nil {
		return nil, err
	}
	job, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Job")
	}
	if err := requireOwner(session, job); err != nil {
		return nil, err
	}
	return job, nil
}

// reread fetches the job after a write. When the read fails the written
// copy is returned.
func (u *jobUsecase) reread(ctx context.Context, written *domain.Job) *domain.Job {
	fresh, err := u.jobRepo.GetByID(ctx, written.ID)
	if err != nil {
		logSwallowed("re-read job", err)
		return written
	}
	return fresh
}

func (u *jobUsecase) catalogue(ctx context.Context) []domain.JobPreference {
	prefs, err := u.prefRepo.List(ctx)
	if err != nil {
		logSwallowed("preference catalogue", err)
		return nil
	}
	return prefs
}

// acknowledgeApplicants clears the new-applicant flag and returns the job
// as re-read after the write.
func acknowledgeApplicants(ctx context.Context, repo domain.JobRepository, job *domain.Job) (*domain.Job, error) {
	cleared := job.Clone()
	cleared.IsNewApplicantExist = false
	if err := repo.Update(ctx, &cleared); err != nil {
		return nil, err
	}
	fresh, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		logSwallowed("re-read job", err)
		return &cleared, nil
	}
	return fresh, nil
}

func summarize(jobs []domain.Job, catalogue []domain.JobPreference) []domain.JobSummary {
	out := make([]domain.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		s := domain.JobSummary{
			ID:             j.ID,
			Name:           j.Name,
			Requirements:   j.Requirements,
			Location:       j.Location.Description,
			Salary:         format.Salary(j.Salary),
			WorkHours:      j.WorkHours.Start + " - " + j.WorkHours.End,
			Preferences:    domain.PreferenceNames(catalogue, j.PreferenceIDs),
			Status:         string(j.Status),
			PostedDate:     format.Date(j.PostedDate.Time),
			NewApplicant:   j.IsNewApplicantExist,
			ApplicantCount: len(j.Applicants),
		}
		if j.WorkDays != nil {
			s.WorkDays = j.WorkDays.Start + " - " + j.WorkDays.End
		}
		for _, a := range j.Accepted {
			if a.WorkStatus == domain.WorkStatusWorking {
				s.EmployeeCount++
			}
		}
		out = append(out, s)
	}
	return out
}

// padClock turns "8:00" into "08:00" so clock strings compare in order.
func padClock(s string) string {
	if i := strings.IndexByte(s, ':'); i == 1 {
		return "0" + s
	}
	return s
}
