package ports

import (
	"context"

	"github.com/taskboard/core/internal/domain/entities"
)

// StoreGateway persists one serialized store per user. Implementations
// return errors; the policy for them lives above this interface: a
// failed Load degrades to an empty store, a failed Save is reported to
// the user but never rolls back the in-memory mutation.
type StoreGateway interface {
	// Load returns the user's persisted store, or an empty store when
	// nothing has been persisted yet.
	Load(ctx context.Context, userID string) (*entities.Store, error)
	// Save overwrites the user's persisted store.
	Save(ctx context.Context, userID string, store *entities.Store) error
}

// UserDirectory is the fixed, pre-seeded list of permitted users.
// It is immutable at runtime; there is no registration.
type UserDirectory interface {
	// FindByDisplayName matches case-insensitively and returns
	// entities.ErrUserNotFound when no user has the name.
	FindByDisplayName(displayName string) (*entities.User, error)
	List() []*entities.User
}
