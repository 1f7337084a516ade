package remote

import (
	"context"

	"mancarijo/internal/domain"
)

const collectionPreference = "job-preferences"

type preferenceRepo struct {
	client *Client
}

func NewPreferenceRepository(client *Client) domain.PreferenceRepository {
	return &preferenceRepo{client: client}
}

func (r *preferenceRepo) List(ctx context.Context) ([]domain.JobPreference, error) {
	var prefs []domain.JobPreference
	if err := r.client.get(ctx, collectionPreference, "/"+collectionPreference, nil, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *preferenceRepo) Create(ctx context.Context, name string) (*domain.JobPreference, error) {
	var created domain.JobPreference
	body := map[string]string{"nama": name}
	if err := r.client.post(ctx, collectionPreference, "/"+collectionPreference, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
