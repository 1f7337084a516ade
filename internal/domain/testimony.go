package domain

import "context"

type Testimony struct {
	By             string `json:"by"`
	Content        string `json:"content"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Testimonies lists every user that left a testimony, in collection order.
func Testimonies(users []User) []Testimony {
	out := []Testimony{}
	for _, u := range users {
		if u.Testimony == nil || *u.Testimony == "" {
			continue
		}
		t := Testimony{By: u.Name, Content: *u.Testimony}
		if u.ProfilePicture != nil {
			t.ProfilePicture = *u.ProfilePicture
		}
		out = append(out, t)
	}
	return out
}

type TestimonyUsecase interface {
	List(ctx context.Context) ([]Testimony, error)
	Get(ctx context.Context, session Session) (string, error)
	Set(ctx context.Context, session Session, content string) (string, error)
}
