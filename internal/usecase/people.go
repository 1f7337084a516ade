package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/format"
	"mancarijo/pkg/logger"
)

const peopleFetchLimit = 8

// fetchUsers reads the given users concurrently. The result is aligned with
// ids; a user the API no longer has is left nil. Any other failure cancels
// the remaining reads and is returned.
func fetchUsers(ctx context.Context, repo domain.UserRepository, ids []string) ([]*domain.User, error) {
	users := make([]*domain.User, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(peopleFetchLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			user, err := repo.GetByID(gctx, id)
			if err != nil {
				if apperror.KindOf(err) == apperror.KindNotFound {
					logger.Log.Warn("Referenced user no longer exists", "user_id", id)
					return nil
				}
				return err
			}
			users[i] = user
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}

// jobPeople splits a job's applicants and employees into display rows.
type jobPeople struct {
	applicants []domain.PersonRow
	working    []domain.PersonRow
	stopped    []domain.PersonRow
	users      map[string]*domain.User
}

func loadJobPeople(ctx context.Context, repo domain.UserRepository, job *domain.Job) (*jobPeople, error) {
	ids := make([]string, 0, len(job.Applicants)+len(job.Accepted))
	for _, a := range job.Applicants {
		ids = append(ids, a.SeekerID)
	}
	for _, a := range job.Accepted {
		ids = append(ids, a.SeekerID)
	}

	users, err := fetchUsers(ctx, repo, ids)
	if err != nil {
		return nil, err
	}

	out := emptyJobPeople()
	for i, a := range job.Applicants {
		if u := users[i]; u != nil {
			out.users[u.ID] = u
			out.applicants = append(out.applicants, personRow(u, a.ApplyDate))
		}
	}
	offset := len(job.Applicants)
	for i, a := range job.Accepted {
		u := users[offset+i]
		if u == nil {
			continue
		}
		out.users[u.ID] = u
		row := personRow(u, a.AcceptedDate)
		if a.WorkStatus == domain.WorkStatusStopped {
			out.stopped = append(out.stopped, row)
		} else {
			out.working = append(out.working, row)
		}
	}
	return out, nil
}

func emptyJobPeople() *jobPeople {
	return &jobPeople{
		applicants: []domain.PersonRow{},
		working:    []domain.PersonRow{},
		stopped:    []domain.PersonRow{},
		users:      map[string]*domain.User{},
	}
}

func personRow(u *domain.User, date domain.Timestamp) domain.PersonRow {
	row := domain.PersonRow{
		ID:     u.ID,
		Name:   u.Name,
		Rating: domain.SeekerRating(u.Experiences),
		Date:   format.Date(date.Time),
	}
	if u.ProfilePicture != nil {
		row.ProfilePicture = *u.ProfilePicture
	}
	return row
}
