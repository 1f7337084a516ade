package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
)

const collectionAuth = "auth"

type authRepo struct {
	client *Client
}

func NewAuthRepository(client *Client) domain.AuthRepository {
	return &authRepo{client: client}
}

type loginPayload struct {
	Username string      `json:"namaPengguna"`
	Password string      `json:"kataSandi"`
	Role     domain.Role `json:"role"`
}

func (r *authRepo) Login(ctx context.Context, username, password string, role domain.Role) (*domain.Identity, error) {
	env, err := r.client.call(ctx, http.MethodPost, collectionAuth, "/auth/login", nil, loginPayload{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	payload := env.User
	if len(payload) == 0 {
		payload = env.Data
	}
	var identity domain.Identity
	if err := decodeInto("POST /auth/login", payload, &identity); err != nil {
		return nil, err
	}
	if identity.ID == "" {
		return nil, apperror.Rejected("POST /auth/login", errors.New("login returned no user id"))
	}
	if identity.Role == "" {
		identity.Role = role
	}
	return &identity, nil
}

type registerPayload struct {
	Username      string      `json:"namaPengguna"`
	Password      string      `json:"kataSandi"`
	Name          string      `json:"nama"`
	BirthPlace    string      `json:"tempatLahir"`
	BirthDate     string      `json:"tanggalLahir"`
	Address       string      `json:"alamat"`
	LastEducation string      `json:"pendidikanTerakhir"`
	Role          domain.Role `json:"role"`
}

func (r *authRepo) Register(ctx context.Context, reg domain.Registration) error {
	return r.client.post(ctx, collectionAuth, "/auth/register", registerPayload{
		Username:      reg.Username,
		Password:      reg.Password,
		Name:          reg.Name,
		BirthPlace:    reg.BirthPlace,
		BirthDate:     reg.BirthDate,
		Address:       reg.Address,
		LastEducation: reg.LastEducation,
		Role:          reg.Role,
	}, nil)
}

// CheckUsername resolves a username to a user id. The API answers with the
// bare id, or with an object that also carries a security question.
func (r *authRepo) CheckUsername(ctx context.Context, username string, role domain.Role) (*domain.UsernameLookup, error) {
	query := url.Values{}
	query.Set("namaPengguna", username)
	query.Set("role", string(role))

	env, err := r.client.call(ctx, http.MethodGet, collectionAuth, "/auth/check-username", query, nil)
	if err != nil {
		return nil, err
	}

	const op = "GET /auth/check-username"
	var id string
	if err := json.Unmarshal(env.Data, &id); err == nil && id != "" {
		return &domain.UsernameLookup{ID: id}, nil
	}

	var detailed struct {
		ID               string `json:"_id"`
		AltID            string `json:"id"`
		SecurityQuestion string `json:"pertanyaanKeamanan"`
	}
	if err := decodeInto(op, env.Data, &detailed); err != nil {
		return nil, err
	}
	if detailed.ID == "" {
		detailed.ID = detailed.AltID
	}
	if detailed.ID == "" {
		return nil, apperror.Rejected(op, errors.New("no user id in response"))
	}
	return &domain.UsernameLookup{ID: detailed.ID, SecurityQuestion: detailed.SecurityQuestion}, nil
}

func (r *authRepo) AnswerSecurityQuestion(ctx context.Context, answer domain.SecurityAnswer) error {
	return r.client.post(ctx, collectionAuth, "/auth/security-question", map[string]string{
		"id":      answer.ID,
		"role":    string(answer.Role),
		"jawaban": answer.Answer,
	}, nil)
}

func (r *authRepo) ChangePassword(ctx context.Context, id string, role domain.Role, password string) error {
	return r.client.patch(ctx, collectionAuth, "/auth/change-password", map[string]string{
		"id":       id,
		"password": password,
		"role":     string(role),
	})
}
