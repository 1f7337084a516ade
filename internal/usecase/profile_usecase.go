package usecase

import (
	"context"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/format"
	"mancarijo/pkg/imaging"
	"mancarijo/pkg/logger"
)

type profileUsecase struct {
	userRepo     domain.UserRepository
	pictures     domain.PictureStore
	sessions     domain.SessionUsecase
	maxDimension int
}

// NewProfileUsecase creates the profile use case. Uploaded pictures are
// scaled to fit maxDimension before they are stored. sessions is told
// about username changes so the signed-in identity stays current.
func NewProfileUsecase(userRepo domain.UserRepository, pictures domain.PictureStore, sessions domain.SessionUsecase, maxDimension int) domain.ProfileUsecase {
	return &profileUsecase{
		userRepo:     userRepo,
		pictures:     pictures,
		sessions:     sessions,
		maxDimension: maxDimension,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	return toProfile(user), nil
}

// UpdateProfile writes the edit-profile form over the current user record.
// A provider only has a name and picture; the seeker fields are ignored.
func (u *profileUsecase) UpdateProfile(ctx context.Context, session domain.Session, update domain.ProfileUpdate) (*domain.Profile, error) {
	if err := requireSignedIn(session); err != nil {
		return nil, err
	}
	if update.Password != update.PasswordConfirmation {
		return nil, apperror.BadRequest("Password confirmation does not match")
	}

	current, err := u.userRepo.GetByID(ctx, session.UserID())
	if err != nil {
		return nil, lookupError(err, "User")
	}

	user := current.Clone()
	user.Username = update.Username
	user.Name = update.Name
	user.SetPassword(update.Password)
	if user.Role == domain.RoleJobSeeker {
		user.BirthPlace = &update.BirthPlace
		user.BirthDate = &update.BirthDate
		user.LastEducation = &update.LastEducation
	}

	if len(update.ProfilePicture) > 0 {
		picture, err := imaging.Compress(update.ProfilePicture, u.maxDimension, imaging.DefaultQuality)
		if err != nil {
			return nil, apperror.BadRequest("Profile picture must be a JPEG, PNG, GIF or WebP image")
		}
		ref, err := u.pictures.Store(ctx, user.ID, picture)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.ProfilePicture = &ref
	}

	if err := u.userRepo.Update(ctx, &user); err != nil {
		return nil, err
	}
	logger.Log.Info("Profile updated", "user_id", user.ID)

	if user.Username != session.Identity.Username {
		identity := *session.Identity
		identity.Username = user.Username
		if err := u.sessions.Refresh(ctx, session.Token, identity); err != nil {
			logger.Log.Warn("Failed to refresh session identity", "user_id", user.ID, "error", err)
		}
	}

	fresh, err := u.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		logSwallowed("re-read user", err)
		fresh = &user
	}
	return toProfile(fresh), nil
}

func toProfile(user *domain.User) *domain.Profile {
	p := &domain.Profile{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}
	if user.ProfilePicture != nil {
		p.ProfilePicture = *user.ProfilePicture
	}
	if user.Role != domain.RoleJobSeeker {
		return p
	}

	p.Rating = domain.SeekerRating(user.Experiences)
	p.BirthPlace = deref(user.BirthPlace)
	p.BirthDate = deref(user.BirthDate)
	p.LastEducation = deref(user.LastEducation)
	p.Experiences = make([]domain.ExperienceView, 0, len(user.Experiences))
	for _, e := range user.Experiences {
		p.Experiences = append(p.Experiences, domain.ExperienceView{
			CompanyName: e.CompanyName,
			PeriodStart: format.Date(e.Period.Start.Time),
			PeriodEnd:   format.Date(e.Period.End.Time),
			Rating:      e.Rating,
		})
	}
	return p
}
