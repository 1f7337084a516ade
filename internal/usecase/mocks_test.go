package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) List(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockPreferenceRepo struct {
	mock.Mock
}

func (m *MockPreferenceRepo) List(ctx context.Context) ([]domain.JobPreference, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobPreference), args.Error(1)
}

func (m *MockPreferenceRepo) Create(ctx context.Context, name string) (*domain.JobPreference, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPreference), args.Error(1)
}

type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) Login(ctx context.Context, username, password string, role domain.Role) (*domain.Identity, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockAuthRepo) Register(ctx context.Context, reg domain.Registration) error {
	return m.Called(ctx, reg).Error(0)
}

func (m *MockAuthRepo) CheckUsername(ctx context.Context, username string, role domain.Role) (*domain.UsernameLookup, error) {
	args := m.Called(ctx, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsernameLookup), args.Error(1)
}

func (m *MockAuthRepo) AnswerSecurityQuestion(ctx context.Context, answer domain.SecurityAnswer) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *MockAuthRepo) ChangePassword(ctx context.Context, id string, role domain.Role, password string) error {
	return m.Called(ctx, id, role, password).Error(0)
}

// fakeJobs and fakeUsers stand in for the remote collections in workflow
// scenarios: every read returns a copy, every write replaces the record.
type fakeJobs struct {
	mu        sync.Mutex
	jobs      map[string]domain.Job
	order     []string
	failWrite error
	writes    int
}

func newFakeJobs(jobs ...domain.Job) *fakeJobs {
	f := &fakeJobs{jobs: map[string]domain.Job{}}
	for _, j := range jobs {
		f.jobs[j.ID] = j.Clone()
		f.order = append(f.order, j.ID)
	}
	return f
}

func (f *fakeJobs) List(ctx context.Context) ([]domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Job, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.jobs[id].Clone())
	}
	return out, nil
}

func (f *fakeJobs) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperror.New(http.StatusNotFound, apperror.KindNotFound, "GET /job/"+id, nil)
	}
	c := j.Clone()
	return &c, nil
}

func (f *fakeJobs) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := job.Clone()
	c.ID = fmt.Sprintf("job-%d", len(f.order)+1)
	f.jobs[c.ID] = c
	f.order = append(f.order, c.ID)
	out := c.Clone()
	return &out, nil
}

func (f *fakeJobs) Update(ctx context.Context, job *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	f.writes++
	f.jobs[job.ID] = job.Clone()
	return nil
}

func (f *fakeJobs) get(id string) domain.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id].Clone()
}

type fakeUsers struct {
	mu     sync.Mutex
	users  map[string]domain.User
	writes int
}

func newFakeUsers(users ...domain.User) *fakeUsers {
	f := &fakeUsers{users: map[string]domain.User{}}
	for _, u := range users {
		f.users[u.ID] = u.Clone()
	}
	return f
}

func (f *fakeUsers) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.users[id].Clone())
	}
	return out, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.New(http.StatusNotFound, apperror.KindNotFound, "GET /user/"+id, nil)
	}
	c := u.Clone()
	return &c, nil
}

func (f *fakeUsers) Update(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.users[user.ID] = user.Clone()
	return nil
}

func (f *fakeUsers) get(id string) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].Clone()
}

func seekerSession(id string) domain.Session {
	return domain.Session{Token: "tok-" + id, Identity: &domain.Identity{ID: id, Username: id, Role: domain.RoleJobSeeker}}
}

func providerSession(id string) domain.Session {
	return domain.Session{Token: "tok-" + id, Identity: &domain.Identity{ID: id, Username: id, Role: domain.RoleJobProvider}}
}
