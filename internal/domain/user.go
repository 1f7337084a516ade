package domain

import (
	"context"
	"encoding/json"
	"math"
)

type Period struct {
	Start Timestamp `json:"awal"`
	End   Timestamp `json:"akhir"`
}

// Experience is a finished employment, written when a provider stops a
// working seeker.
type Experience struct {
	CompanyName string `json:"namaPerusahaan"`
	Period      Period `json:"durasi"`
	Rating      int    `json:"rating"`
}

// User is a record of the remote user collection. Seekers and providers
// share the collection; seeker-only fields stay empty for providers.
type User struct {
	ID             string       `json:"_id"`
	Username       string       `json:"namaPengguna"`
	Name           string       `json:"nama"`
	Role           Role         `json:"role"`
	BirthPlace     *string      `json:"tempatLahir"`
	BirthDate      *string      `json:"tanggalLahir"`
	Address        *string      `json:"alamat"`
	LastEducation  *string      `json:"pendidikanTerakhir"`
	ProfilePicture *string      `json:"fotoProfil"`
	PreferenceIDs  []string     `json:"preferensiPekerjaan"`
	ApplicationIDs []string     `json:"lamaran"`
	Experiences    []Experience `json:"pengalamanKerja"`
	Testimony      *string      `json:"testimoni"`

	Extras Extras `json:"-"`
}

type userFields User

func (u *User) UnmarshalJSON(data []byte) error {
	var f userFields
	extras, err := decodeWithExtras(data, &f)
	if err != nil {
		return err
	}
	*u = User(f)
	u.Extras = extras
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	f := userFields(u)
	if f.PreferenceIDs == nil {
		f.PreferenceIDs = []string{}
	}
	if f.ApplicationIDs == nil {
		f.ApplicationIDs = []string{}
	}
	if f.Experiences == nil {
		f.Experiences = []Experience{}
	}
	return encodeWithExtras(f, u.Extras)
}

// SetPassword stages a new password for the next whole-record write. The
// remote API keeps it under kataSandi; it is never read back.
func (u *User) SetPassword(password string) {
	raw, _ := json.Marshal(password)
	if u.Extras == nil {
		u.Extras = Extras{}
	}
	u.Extras["kataSandi"] = raw
}

func (u *User) HasApplication(jobID string) bool {
	for _, id := range u.ApplicationIDs {
		if id == jobID {
			return true
		}
	}
	return false
}

func (u User) Clone() User {
	out := u
	out.PreferenceIDs = append([]string(nil), u.PreferenceIDs...)
	out.ApplicationIDs = append([]string(nil), u.ApplicationIDs...)
	out.Experiences = append([]Experience(nil), u.Experiences...)
	out.Extras = u.Extras.clone()
	return out
}

// SeekerRating is the star rating shown on a seeker profile: the ceiling
// of the mean experience rating, 0 when there is no experience.
func SeekerRating(experiences []Experience) int {
	if len(experiences) == 0 {
		return 0
	}
	total := 0
	for _, e := range experiences {
		total += e.Rating
	}
	rating := int(math.Ceil(float64(total) / float64(len(experiences))))
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}
