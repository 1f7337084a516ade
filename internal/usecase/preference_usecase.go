package usecase

import (
	"context"
	"strings"

	"mancarijo/internal/domain"
	"mancarijo/pkg/apperror"
	"mancarijo/pkg/logger"
)

type preferenceUsecase struct {
	prefRepo domain.PreferenceRepository
	userRepo domain.UserRepository
}

func NewPreferenceUsecase(prefRepo domain.PreferenceRepository, userRepo domain.UserRepository) domain.PreferenceUsecase {
	return &preferenceUsecase{
		prefRepo: prefRepo,
		userRepo: userRepo,
	}
}

func (u *preferenceUsecase) ListAll(ctx context.Context) ([]domain.JobPreference, error) {
	prefs, err := u.prefRepo.List(ctx)
	if err != nil {
		logSwallowed("preference list", err)
		return []domain.JobPreference{}, nil
	}
	return prefs, nil
}

func (u *preferenceUsecase) SeekerPreferences(ctx context.Context, session domain.Session) ([]domain.JobPreference, error) {
	if err := requireSeeker(session); err != nil {
		return nil, err
	}

	seeker, err := u.userRepo.GetByID(ctx, session.UserID())
	if err != nil {
		logSwallowed("seeker preferences", err)
		return []domain.JobPreference{}, nil
	}
	catalogue, err := u.prefRepo.List(ctx)
	if err != nil {
		logSwallowed("preference list", err)
		return []domain.JobPreference{}, nil
	}
	return pick(catalogue, seeker.PreferenceIDs), nil
}

// UpdateSeekerPreferences creates any new tags and replaces the seeker's
// preference list with the submitted one.
func (u *preferenceUsecase) UpdateSeekerPreferences(ctx context.Context, session domain.Session, inputs []domain.PreferenceInput) ([]domain.JobPreference, error) {
	if err := requireSeeker(session); err != nil {
		return nil, err
	}

	seeker, err := u.userRepo.GetByID(ctx, session.UserID())
	if err != nil {
		return nil, lookupError(err, "User")
	}
	ids, err := u.Resolve(ctx, inputs)
	if err != nil {
		return nil, err
	}

	updated := seeker.Clone()
	updated.PreferenceIDs = ids
	if err := u.userRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	catalogue, err := u.prefRepo.List(ctx)
	if err != nil {
		logSwallowed("preference list", err)
		return []domain.JobPreference{}, nil
	}
	return pick(catalogue, ids), nil
}

// Resolve returns the ids of inputs in order, without duplicates. A name
// without id that matches an existing tag, ignoring case, reuses it;
// otherwise the tag is created.
func (u *preferenceUsecase) Resolve(ctx context.Context, inputs []domain.PreferenceInput) ([]string, error) {
	catalogue, err := u.prefRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(catalogue))
	for _, p := range catalogue {
		byName[strings.ToLower(strings.TrimSpace(p.Name))] = p.ID
	}

	ids := make([]string, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		id := in.ID
		if id == "" {
			name := strings.TrimSpace(in.Name)
			if name == "" {
				return nil, apperror.BadRequest("Preference name is required")
			}
			key := strings.ToLower(name)
			if existing, ok := byName[key]; ok {
				id = existing
			} else {
				created, err := u.prefRepo.Create(ctx, name)
				if err != nil {
					return nil, err
				}
				logger.Log.Info("Preference created", "preference_id", created.ID, "name", name)
				id = created.ID
				byName[key] = id
			}
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// pick returns the catalogue entries for ids, in the order of ids.
func pick(catalogue []domain.JobPreference, ids []string) []domain.JobPreference {
	byID := make(map[string]domain.JobPreference, len(catalogue))
	for _, p := range catalogue {
		byID[p.ID] = p
	}
	out := make([]domain.JobPreference, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
