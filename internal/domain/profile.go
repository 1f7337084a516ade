package domain

import "context"

// Education levels accepted for lastEducation.
var EducationLevels = []string{"SD", "SMP", "SMA", "Diploma"}

type ExperienceView struct {
	CompanyName string `json:"companyName"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	Rating      int    `json:"rating"`
}

// Profile is the public profile page. Seeker-only fields are empty for a
// provider.
type Profile struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Role           Role             `json:"role"`
	ProfilePicture string           `json:"profilePicture"`
	Rating         int              `json:"rating"`
	BirthPlace     string           `json:"birthPlace,omitempty"`
	BirthDate      string           `json:"birthDate,omitempty"`
	LastEducation  string           `json:"lastEducation,omitempty"`
	Experiences    []ExperienceView `json:"experiences,omitempty"`
}

type ProfileUpdate struct {
	Username             string `json:"username" form:"username" binding:"required,max=50"`
	Password             string `json:"password" form:"password" binding:"required"`
	PasswordConfirmation string `json:"passwordConfirmation" form:"passwordConfirmation" binding:"required,eqfield=Password"`
	Name                 string `json:"name" form:"name" binding:"required,valid_name,max=100"`
	BirthPlace           string `json:"birthPlace" form:"birthPlace" binding:"max=100"`
	BirthDate            string `json:"birthDate" form:"birthDate" binding:"omitempty,datetime=2006-01-02"`
	LastEducation        string `json:"lastEducation" form:"lastEducation" binding:"omitempty,education"`
	// ProfilePicture is raw image bytes from a multipart upload, or nil to
	// keep the current picture.
	ProfilePicture []byte `json:"-" form:"-"`
}

// PictureStore persists a processed profile picture and returns the value
// stored in the user's fotoProfil field.
type PictureStore interface {
	Store(ctx context.Context, userID string, jpeg []byte) (string, error)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, id string) (*Profile, error)
	UpdateProfile(ctx context.Context, session Session, update ProfileUpdate) (*Profile, error)
}
