package domain

import (
	"context"
	"fmt"
	"time"
)

// ApplicationState is a seeker's relationship to a single job:
//
//	not_applied -> applied -> working -> stopped
//	                       \-> declined
type ApplicationState string

const (
	StateNotApplied ApplicationState = "not_applied"
	StateApplied    ApplicationState = "applied"
	StateWorking    ApplicationState = "working"
	StateStopped    ApplicationState = "stopped"
	StateDeclined   ApplicationState = "declined"
)

// Accepted reports whether the state is one of the accepted states.
func (s ApplicationState) Accepted() bool {
	return s == StateWorking || s == StateStopped
}

// ApplicationStateOf derives the state from a job snapshot.
func ApplicationStateOf(job *Job, seekerID string) ApplicationState {
	if entry := job.AcceptedEntryFor(seekerID); entry != nil {
		if entry.WorkStatus == WorkStatusStopped {
			return StateStopped
		}
		return StateWorking
	}
	if job.HasApplicant(seekerID) {
		return StateApplied
	}
	if job.HasDeclined(seekerID) {
		return StateDeclined
	}
	return StateNotApplied
}

// SeekerPlacementValid reports the invariant that a seeker is listed in at
// most one of applicants and accepted.
func SeekerPlacementValid(job *Job, seekerID string) bool {
	return !(job.HasApplicant(seekerID) && job.AcceptedEntryFor(seekerID) != nil)
}

// AcceptanceMessage is the congratulation sent to an accepted seeker.
func AcceptanceMessage(jobName string) string {
	return fmt.Sprintf("Selamat anda diterima untuk bekerja sebagai %s.", jobName)
}

// The transitions below are pure: they check the guard and return updated
// copies of the seeker and the job. Nothing is written here.

func ApplyTransition(job Job, seeker User, at time.Time) (Job, User, error) {
	if !job.IsOpen() {
		return Job{}, User{}, ErrJobClosed
	}
	if ApplicationStateOf(&job, seeker.ID) != StateNotApplied {
		return Job{}, User{}, ErrInvalidTransition
	}

	newSeeker := seeker.Clone()
	if !newSeeker.HasApplication(job.ID) {
		newSeeker.ApplicationIDs = append(newSeeker.ApplicationIDs, job.ID)
	}

	newJob := job.Clone()
	newJob.Applicants = append(newJob.Applicants, Applicant{
		SeekerID:  seeker.ID,
		ApplyDate: NewTimestamp(at),
	})
	newJob.IsNewApplicantExist = true

	return newJob, newSeeker, nil
}

func AcceptTransition(job Job, seeker User, at time.Time) (Job, User, error) {
	if ApplicationStateOf(&job, seeker.ID) != StateApplied {
		return Job{}, User{}, ErrInvalidTransition
	}

	newSeeker := seeker.Clone()
	newSeeker.ApplicationIDs = without(newSeeker.ApplicationIDs, job.ID)

	newJob := job.Clone()
	newJob.Applicants = withoutApplicant(newJob.Applicants, seeker.ID)
	newJob.Accepted = append(newJob.Accepted, AcceptedEntry{
		SeekerID:            seeker.ID,
		NotificationMessage: AcceptanceMessage(job.Name),
		IsNotificationRead:  false,
		WorkStatus:          WorkStatusWorking,
		AcceptedDate:        NewTimestamp(at),
	})

	return newJob, newSeeker, nil
}

func DeclineTransition(job Job, seeker User) (Job, User, error) {
	if ApplicationStateOf(&job, seeker.ID) != StateApplied {
		return Job{}, User{}, ErrInvalidTransition
	}

	newSeeker := seeker.Clone()
	newSeeker.ApplicationIDs = without(newSeeker.ApplicationIDs, job.ID)

	newJob := job.Clone()
	newJob.Applicants = withoutApplicant(newJob.Applicants, seeker.ID)
	if !newJob.HasDeclined(seeker.ID) {
		newJob.Declined = append(newJob.Declined, seeker.ID)
	}

	return newJob, newSeeker, nil
}

// StopTransition ends a working employment. companyName is the display
// name of the provider who posted the job.
func StopTransition(job Job, seeker User, companyName string, rating int, at time.Time) (Job, User, error) {
	if rating < 1 || rating > 5 {
		return Job{}, User{}, ErrInvalidRating
	}
	if ApplicationStateOf(&job, seeker.ID) != StateWorking {
		return Job{}, User{}, ErrInvalidTransition
	}

	newJob := job.Clone()
	entry := newJob.AcceptedEntryFor(seeker.ID)
	entry.WorkStatus = WorkStatusStopped

	newSeeker := seeker.Clone()
	newSeeker.Experiences = append(newSeeker.Experiences, Experience{
		CompanyName: companyName,
		Period: Period{
			Start: entry.AcceptedDate,
			End:   NewTimestamp(at),
		},
		Rating: rating,
	})

	return newJob, newSeeker, nil
}

// ToggleStatus flips a job between open and closed.
func ToggleStatus(job Job) Job {
	out := job.Clone()
	if out.Status == JobStatusOpen {
		out.Status = JobStatusClosed
	} else {
		out.Status = JobStatusOpen
	}
	return out
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func withoutApplicant(applicants []Applicant, seekerID string) []Applicant {
	out := applicants[:0]
	for _, a := range applicants {
		if a.SeekerID != seekerID {
			out = append(out, a)
		}
	}
	return out
}

// TransitionResult is returned by every workflow operation: the job as
// re-read from the remote API after both writes.
type TransitionResult struct {
	Job   *Job             `json:"job"`
	State ApplicationState `json:"state"`
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, session Session, jobID string) (*TransitionResult, error)
	Accept(ctx context.Context, session Session, jobID, seekerID string) (*TransitionResult, error)
	Decline(ctx context.Context, session Session, jobID, seekerID string) (*TransitionResult, error)
	Stop(ctx context.Context, session Session, jobID, seekerID string, rating int) (*TransitionResult, error)
	AcknowledgeApplicants(ctx context.Context, session Session, jobID string) (*Job, error)
	DivergedTransitions(ctx context.Context, session Session) ([]JournalEntry, error)
}
