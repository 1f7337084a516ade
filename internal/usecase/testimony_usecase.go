package usecase

import (
	"context"
	"strings"

	"mancarijo/internal/domain"
)

type testimonyUsecase struct {
	userRepo domain.UserRepository
}

func NewTestimonyUsecase(userRepo domain.UserRepository) domain.TestimonyUsecase {
	return &testimonyUsecase{userRepo: userRepo}
}

func (u *testimonyUsecase) List(ctx context.Context) ([]domain.Testimony, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		logSwallowed("testimonies", err)
		return []domain.Testimony{}, nil
	}
	return domain.Testimonies(users), nil
}

func (u *testimonyUsecase) Get(ctx context.Context, session domain.Session) (string, error) {
	if err := requireSignedIn(session); err != nil {
		return "", err
	}
	user, err := u.userRepo.GetByID(ctx, session.UserID())
	if err != nil {
		logSwallowed("testimony", err)
		return "", nil
	}
	return deref(user.Testimony), nil
}

// Set stores the trimmed testimony; an empty one clears it.
func (u *testimonyUsecase) Set(ctx context.Context, session domain.Session, content string) (string, error) {
	if err := requireSignedIn(session); err != nil {
		return "", err
	}

	current, err := u.userRepo.GetByID(ctx, session.UserID())
	if err != nil {
		return "", lookupError(err, "User")
	}

	user := current.Clone()
	content = strings.TrimSpace(content)
	if content == "" {
		user.Testimony = nil
	} else {
		user.Testimony = &content
	}
	if err := u.userRepo.Update(ctx, &user); err != nil {
		return "", err
	}

	fresh, err := u.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		logSwallowed("re-read user", err)
		return content, nil
	}
	return deref(fresh.Testimony), nil
}
