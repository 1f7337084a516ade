package domain

import "context"

// JobPreference is a free-form tag shared by seekers and jobs.
type JobPreference struct {
	ID   string `json:"_id"`
	Name string `json:"nama"`
}

type PreferenceRepository interface {
	List(ctx context.Context) ([]JobPreference, error)
	Create(ctx context.Context, name string) (*JobPreference, error)
}

type PreferenceUsecase interface {
	ListAll(ctx context.Context) ([]JobPreference, error)
	SeekerPreferences(ctx context.Context, session Session) ([]JobPreference, error)
	UpdateSeekerPreferences(ctx context.Context, session Session, inputs []PreferenceInput) ([]JobPreference, error)
	// Resolve creates the tags that have no id yet and returns the ids of
	// all inputs in order.
	Resolve(ctx context.Context, inputs []PreferenceInput) ([]string, error)
}

// PreferenceNames maps ids to names using the given catalogue, skipping
// unknown ids.
func PreferenceNames(catalogue []JobPreference, ids []string) []string {
	byID := make(map[string]string, len(catalogue))
	for _, p := range catalogue {
		byID[p.ID] = p.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
