package domain

import "context"

// UnreadAcceptance points at the job holding a seeker's unread acceptance.
type UnreadAcceptance struct {
	JobID   string `json:"jobId"`
	JobName string `json:"jobName"`
	Message string `json:"message"`
}

// FindUnreadAcceptance scans every job's accepted list for an entry of the
// seeker that has not been read. The first match in list order wins.
func FindUnreadAcceptance(jobs []Job, seekerID string) (UnreadAcceptance, bool) {
	for _, job := range jobs {
		for _, entry := range job.Accepted {
			if entry.SeekerID == seekerID && !entry.IsNotificationRead {
				return UnreadAcceptance{
					JobID:   job.ID,
					JobName: job.Name,
					Message: entry.NotificationMessage,
				}, true
			}
		}
	}
	return UnreadAcceptance{}, false
}

// MarkNotificationRead returns a copy of job with the seeker's entry marked
// read, together with its message. ok is false when the seeker has no
// accepted entry on job.
func MarkNotificationRead(job Job, seekerID string) (updated Job, message string, ok bool) {
	updated = job.Clone()
	entry := updated.AcceptedEntryFor(seekerID)
	if entry == nil {
		return job, "", false
	}
	entry.IsNotificationRead = true
	return updated, entry.NotificationMessage, true
}

type NotificationStatus struct {
	Unread  bool   `json:"unread"`
	JobID   string `json:"jobId,omitempty"`
	JobName string `json:"jobName,omitempty"`
}

type NotificationMessage struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}

type NotificationUsecase interface {
	Check(ctx context.Context, session Session) (*NotificationStatus, error)
	Read(ctx context.Context, session Session) (*NotificationMessage, error)
}
