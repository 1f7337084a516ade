package usecase

import (
	"context"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
)

type authUsecase struct {
	authRepo domain.AuthRepository
	sessions domain.SessionUsecase
}

func NewAuthUsecase(authRepo domain.AuthRepository, sessions domain.SessionUsecase) domain.AuthUsecase {
	return &authUsecase{
		authRepo: authRepo,
		sessions: sessions,
	}
}

// SignIn verifies credentials against the remote API and stores the
// identity it returns. Remember-me picks the durable tier.
func (u *authUsecase) SignIn(ctx context.Context, token string, req domain.SignInRequest) (domain.Session, error) {
	identity, err := u.authRepo.Login(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindRejected {
			return domain.Session{}, apperror.Unauthorized("Invalid username or password")
		}
		return domain.Session{}, err
	}

	persistence := domain.PersistenceEphemeral
	if req.RememberMe {
		persistence = domain.PersistenceDurable
	}
	return u.sessions.SignIn(ctx, token, *identity, persistence)
}

func (u *authUsecase) SignUp(ctx context.Context, reg domain.Registration) error {
	if reg.Password != reg.PasswordConfirmation {
		return apperror.BadRequest("Password confirmation does not match")
	}
	if reg.Role == domain.RoleJobProvider {
		// Providers only have a display name.
		reg.BirthPlace, reg.BirthDate, reg.Address, reg.LastEducation = "", "", "", ""
	}
	return u.authRepo.Register(ctx, reg)
}

func (u *authUsecase) LookupUsername(ctx context.Context, username string, role domain.Role) (*domain.UsernameLookup, error) {
	if username == "" || !role.Valid() {
		return nil, apperror.BadRequest("Username and role are required")
	}
	lookup, err := u.authRepo.CheckUsername(ctx, username, role)
	if err != nil {
		return nil, lookupError(err, "Username")
	}
	return lookup, nil
}

func (u *authUsecase) AnswerSecurityQuestion(ctx context.Context, answer domain.SecurityAnswer) error {
	if err := u.authRepo.AnswerSecurityQuestion(ctx, answer); err != nil {
		if apperror.KindOf(err) == apperror.KindRejected {
			return apperror.Forbidden("Wrong answer")
		}
		return err
	}
	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, reset domain.PasswordReset) error {
	if reset.Password != reset.PasswordConfirmation {
		return apperror.BadRequest("Password confirmation does not match")
	}
	return u.authRepo.ChangePassword(ctx, reset.ID, reset.Role, reset.Password)
}
