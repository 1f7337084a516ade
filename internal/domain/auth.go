package domain

import "context"

type SignInRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Role       Role   `json:"role" binding:"required,role"`
	RememberMe bool   `json:"rememberMe"`
}

type Registration struct {
	Username             string `json:"username" binding:"required,max=50"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required,eqfield=Password"`
	Name                 string `json:"name" binding:"required,valid_name,max=100"`
	BirthPlace           string `json:"birthPlace" binding:"max=100"`
	BirthDate            string `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	Address              string `json:"address" binding:"max=255"`
	LastEducation        string `json:"lastEducation" binding:"omitempty,education"`
	Role                 Role   `json:"role" binding:"required,role"`
}

// UsernameLookup is the result of the first forgot-password step. A
// non-empty SecurityQuestion must be answered before the reset.
type UsernameLookup struct {
	ID               string `json:"id"`
	SecurityQuestion string `json:"securityQuestion,omitempty"`
}

type PasswordReset struct {
	ID                   string `json:"id" binding:"required"`
	Role                 Role   `json:"role" binding:"required,role"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required,eqfield=Password"`
}

type SecurityAnswer struct {
	ID     string `json:"id" binding:"required"`
	Role   Role   `json:"role" binding:"required,role"`
	Answer string `json:"answer" binding:"required"`
}

type AuthRepository interface {
	Login(ctx context.Context, username, password string, role Role) (*Identity, error)
	Register(ctx context.Context, reg Registration) error
	CheckUsername(ctx context.Context, username string, role Role) (*UsernameLookup, error)
	AnswerSecurityQuestion(ctx context.Context, answer SecurityAnswer) error
	ChangePassword(ctx context.Context, id string, role Role, password string) error
}

type AuthUsecase interface {
	SignIn(ctx context.Context, token string, req SignInRequest) (Session, error)
	SignUp(ctx context.Context, reg Registration) error
	LookupUsername(ctx context.Context, username string, role Role) (*UsernameLookup, error)
	AnswerSecurityQuestion(ctx context.Context, answer SecurityAnswer) error
	ResetPassword(ctx context.Context, reset PasswordReset) error
}
