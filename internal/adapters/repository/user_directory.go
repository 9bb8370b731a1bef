package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/config"
	"github.com/taskboard/core/internal/ports"
)

const joinDateLayout = "2006-01-02"

// StaticUserDirectory is the fixed list of permitted users, seeded
// from configuration at startup and immutable afterward.
type StaticUserDirectory struct {
	users []*entities.User
}

// NewStaticUserDirectory builds the directory from the seeded config
// entries.
func NewStaticUserDirectory(seeds []config.SeedUser) (ports.UserDirectory, error) {
	users := make([]*entities.User, 0, len(seeds))
	for _, seed := range seeds {
		if strings.TrimSpace(seed.ID) == "" || strings.TrimSpace(seed.DisplayName) == "" {
			return nil, fmt.Errorf("seeded user needs both id and display name")
		}
		joined, err := time.Parse(joinDateLayout, seed.JoinDate)
		if err != nil {
			return nil, fmt.Errorf("invalid join date for user %s: %w", seed.ID, err)
		}
		users = append(users, &entities.User{
			ID:          seed.ID,
			DisplayName: seed.DisplayName,
			JoinDate:    joined,
		})
	}
	return &StaticUserDirectory{users: users}, nil
}

func (d *StaticUserDirectory) FindByDisplayName(displayName string) (*entities.User, error) {
	for _, u := range d.users {
		if strings.EqualFold(u.DisplayName, strings.TrimSpace(displayName)) {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (d *StaticUserDirectory) List() []*entities.User {
	out := make([]*entities.User, len(d.users))
	copy(out, d.users)
	return out
}
