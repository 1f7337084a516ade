package remote

import (
	"context"
	"encoding/json"
	"net/http"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
)

const collectionJob = "job"

type jobRepo struct {
	client *Client
}

func NewJobRepository(client *Client) domain.JobRepository {
	return &jobRepo{client: client}
}

func (r *jobRepo) List(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.client.get(ctx, collectionJob, "/"+collectionJob, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	if err := r.client.get(ctx, collectionJob, itemPath(collectionJob, id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Create posts a new job. The API assigns the id; when it echoes the
// created record back that record is returned, otherwise the input.
func (r *jobRepo) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	body, err := withoutID(job)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	env, err := r.client.call(ctx, http.MethodPost, collectionJob, "/"+collectionJob, nil, body)
	if err != nil {
		return nil, err
	}

	var created domain.Job
	if decodeInto("POST /job", env.Data, &created) == nil && created.ID != "" {
		return &created, nil
	}
	return job, nil
}

// Update replaces the whole job record.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	return r.client.patch(ctx, collectionJob, itemPath(collectionJob, job.ID), job)
}

// withoutID serialises v and drops an empty "_id" so the API assigns one.
func withoutID(v any) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if id, ok := fields["_id"]; ok && string(id) == `""` {
		delete(fields, "_id")
	}
	return fields, nil
}
