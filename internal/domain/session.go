package domain

import "context"

type Role string

const (
	RoleJobSeeker   Role = "jobSeeker"
	RoleJobProvider Role = "jobProvider"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleJobProvider
}

// Persistence selects the session storage tier at sign-in ("remember me").
type Persistence string

const (
	PersistenceDurable   Persistence = "durable"
	PersistenceEphemeral Persistence = "ephemeral"
)

// Identity is what gets persisted for a signed-in user. There is no
// password, token, signature or expiry.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Session is resolved once per request and handed to every use case that
// needs to know who is asking. A nil Identity means anonymous.
type Session struct {
	Token       string    `json:"-"`
	Identity    *Identity `json:"user"`
	SearchQuery string    `json:"searchQuery"`
}

func (s Session) SignedIn() bool {
	return s.Identity != nil && s.Identity.ID != ""
}

func (s Session) UserID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.ID
}

func (s Session) IsSeeker() bool {
	return s.SignedIn() && s.Identity.Role == RoleJobSeeker
}

func (s Session) IsProvider() bool {
	return s.SignedIn() && s.Identity.Role == RoleJobProvider
}

// SessionTier is one storage area for identities. Load returns nil, nil
// when nothing is stored under token; Delete of an absent key is a no-op.
type SessionTier interface {
	Name() string
	Load(ctx context.Context, token string) (*Identity, error)
	Save(ctx context.Context, token string, identity Identity) error
	Delete(ctx context.Context, token string) error
}

type SessionUsecase interface {
	SignIn(ctx context.Context, token string, identity Identity, persistence Persistence) (Session, error)
	// SignOut never fails; tier errors are logged.
	SignOut(ctx context.Context, token string)
	// Refresh replaces the stored identity in whichever tier holds token.
	Refresh(ctx context.Context, token string, identity Identity) error
	Current(ctx context.Context, token string) Session
	SetSearchQuery(token, query string)
}
