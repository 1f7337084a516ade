package domain

import (
	"context"
	"errors"
)

// Common domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrJobClosed         = errors.New("job is closed")
	ErrInvalidTransition = errors.New("transition not allowed from current state")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

type WorkStatus string

const (
	WorkStatusWorking WorkStatus = "working"
	WorkStatusStopped WorkStatus = "stopped"
)

type Location struct {
	Description string  `json:"deskripsi"`
	Map         *string `json:"map"`
}

// TimeRange is a start/end pair: "HH:MM" for work hours, day names for work days.
type TimeRange struct {
	Start string `json:"awal"`
	End   string `json:"akhir"`
}

type Applicant struct {
	SeekerID  string    `json:"_id"`
	ApplyDate Timestamp `json:"tanggal"`
}

// AcceptedEntry is a job's record of a hired seeker. It carries the
// one-shot acceptance notification and the employment status.
type AcceptedEntry struct {
	SeekerID            string     `json:"idPelamar"`
	NotificationMessage string     `json:"pesanNotifikasi"`
	IsNotificationRead  bool       `json:"statusBacaNotifikasi"`
	WorkStatus          WorkStatus `json:"statusKerja"`
	AcceptedDate        Timestamp  `json:"tanggal"`
}

type Job struct {
	ID                  string          `json:"_id"`
	PostedBy            string          `json:"penerbit"`
	PostedDate          Timestamp       `json:"tanggalTerbit"`
	Name                string          `json:"nama"`
	PreferenceIDs       []string        `json:"preferensi"`
	Requirements        string          `json:"syarat"`
	Location            Location        `json:"lokasi"`
	Salary              int64           `json:"gaji"`
	WorkHours           TimeRange       `json:"jamKerja"`
	WorkDays            *TimeRange      `json:"hariKerja"`
	Status              JobStatus       `json:"status"`
	IsNewApplicantExist bool            `json:"adaPelamarBaru"`
	Applicants          []Applicant     `json:"pelamar"`
	Accepted            []AcceptedEntry `json:"diterima"`
	Declined            []string        `json:"ditolak"`

	Extras Extras `json:"-"`
}

type jobFields Job

func (j *Job) UnmarshalJSON(data []byte) error {
	var f jobFields
	extras, err := decodeWithExtras(data, &f)
	if err != nil {
		return err
	}
	*j = Job(f)
	j.Extras = extras
	return nil
}

func (j Job) MarshalJSON() ([]byte, error) {
	f := jobFields(j)
	if f.PreferenceIDs == nil {
		f.PreferenceIDs = []string{}
	}
	if f.Applicants == nil {
		f.Applicants = []Applicant{}
	}
	if f.Accepted == nil {
		f.Accepted = []AcceptedEntry{}
	}
	if f.Declined == nil {
		f.Declined = []string{}
	}
	return encodeWithExtras(f, j.Extras)
}

func (j *Job) IsOpen() bool {
	return j.Status == JobStatusOpen
}

func (j *Job) HasApplicant(seekerID string) bool {
	for _, a := range j.Applicants {
		if a.SeekerID == seekerID {
			return true
		}
	}
	return false
}

// AcceptedEntryFor returns the seeker's accepted entry, or nil.
func (j *Job) AcceptedEntryFor(seekerID string) *AcceptedEntry {
	for i := range j.Accepted {
		if j.Accepted[i].SeekerID == seekerID {
			return &j.Accepted[i]
		}
	}
	return nil
}

func (j *Job) HasDeclined(seekerID string) bool {
	for _, id := range j.Declined {
		if id == seekerID {
			return true
		}
	}
	return false
}

func (j *Job) SharesPreference(preferenceIDs []string) bool {
	for _, want := range preferenceIDs {
		for _, have := range j.PreferenceIDs {
			if want == have {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy so a transition never mutates a snapshot.
func (j Job) Clone() Job {
	out := j
	out.PreferenceIDs = append([]string(nil), j.PreferenceIDs...)
	out.Applicants = append([]Applicant(nil), j.Applicants...)
	out.Accepted = append([]AcceptedEntry(nil), j.Accepted...)
	out.Declined = append([]string(nil), j.Declined...)
	if j.WorkDays != nil {
		wd := *j.WorkDays
		out.WorkDays = &wd
	}
	out.Extras = j.Extras.clone()
	return out
}

// JobSummary is a list row shown on the posted, applied and declined lists.
type JobSummary struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Requirements   string   `json:"requirements"`
	Location       string   `json:"location"`
	Salary         string   `json:"salary"`
	WorkHours      string   `json:"workHours"`
	WorkDays       string   `json:"workDays,omitempty"`
	Preferences    []string `json:"preferences"`
	Status         string   `json:"status"`
	PostedDate     string   `json:"postedDate"`
	NewApplicant   bool     `json:"newApplicant"`
	ApplicantCount int      `json:"applicantCount"`
	EmployeeCount  int      `json:"employeeCount"`
}

// JobListPage is the payload of the job-list route.
type JobListPage struct {
	Jobs          []JobSummary `json:"jobs"`
	Newest        []JobSummary `json:"newest"`
	Recommended   []JobSummary `json:"recommended"`
	SearchQuery   string       `json:"searchQuery"`
	SearchResults []JobSummary `json:"searchResults"`
	Testimonies   []Testimony  `json:"testimonies"`
}

type SeekerJobDetail struct {
	Job         *Job             `json:"job"`
	CreatorName string           `json:"creatorName"`
	Preferences []string         `json:"preferences"`
	Salary      string           `json:"salary"`
	PostedDate  string           `json:"postedDate"`
	State       ApplicationState `json:"state"`
	CanApply    bool             `json:"canApply"`
}

// PersonRow is an applicant or employee as listed on the provider job
// detail. Date is the apply or acceptance date.
type PersonRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
	Rating         int    `json:"rating"`
	Date           string `json:"date"`
}

type ProviderJobDetail struct {
	Job              *Job        `json:"job"`
	Preferences      []string    `json:"preferences"`
	Salary           string      `json:"salary"`
	PostedDate       string      `json:"postedDate"`
	Applicants       []PersonRow `json:"applicants"`
	WorkingEmployees []PersonRow `json:"workingEmployees"`
	StoppedEmployees []PersonRow `json:"stoppedEmployees"`
}

type AppliedJobsPage struct {
	Applied  []JobSummary `json:"applied"`
	Declined []JobSummary `json:"declined"`
}

// PreferenceInput names a preference tag. An empty ID means the tag does
// not exist yet and is created on submit.
type PreferenceInput struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required_without=ID,max=60"`
}

type PostJobInput struct {
	Name           string            `json:"name" binding:"required,max=120"`
	Preferences    []PreferenceInput `json:"preferences" binding:"required,min=1,dive"`
	Requirements   string            `json:"requirements" binding:"required"`
	Address        string            `json:"address" binding:"required"`
	Salary         int64             `json:"salary" binding:"required,gt=0"`
	WorkHoursStart string            `json:"workHoursStart" binding:"required,clock"`
	WorkHoursEnd   string            `json:"workHoursEnd" binding:"required,clock"`
	WorkDaysStart  string            `json:"workDaysStart"`
	WorkDaysEnd    string            `json:"workDaysEnd" binding:"required_with=WorkDaysStart"`
}

type JobRepository interface {
	List(ctx context.Context) ([]Job, error)
	GetByID(ctx context.Context, id string) (*Job, error)
	Create(ctx context.Context, job *Job) (*Job, error)
	Update(ctx context.Context, job *Job) error
}

type JobUsecase interface {
	JobList(ctx context.Context, session Session) (*JobListPage, error)
	SeekerJobDetail(ctx context.Context, session Session, id string) (*SeekerJobDetail, error)
	ProviderJobDetail(ctx context.Context, session Session, id string) (*ProviderJobDetail, error)
	PostJob(ctx context.Context, session Session, input PostJobInput) (*Job, error)
	PostedJobs(ctx context.Context, session Session) ([]JobSummary, error)
	AppliedJobs(ctx context.Context, session Session) (*AppliedJobsPage, error)
	ToggleStatus(ctx context.Context, session Session, id string) (*Job, error)
	ExportApplicants(ctx context.Context, session Session, id string) ([]byte, error)
}
