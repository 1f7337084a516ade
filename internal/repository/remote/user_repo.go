package remote

import (
	"context"

	"mancarijo/internal/domain"
)

const collectionUser = "user"

type userRepo struct {
	client *Client
}

func NewUserRepository(client *Client) domain.UserRepository {
	return &userRepo{client: client}
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.client.get(ctx, collectionUser, "/"+collectionUser, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.client.get(ctx, collectionUser, itemPath(collectionUser, id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update replaces the whole user record.
func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	return r.client.patch(ctx, collectionUser, itemPath(collectionUser, user.ID), user)
}
