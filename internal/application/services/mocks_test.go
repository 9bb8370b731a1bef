package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/taskboard/core/internal/domain/entities"
)

// memoryGateway emulates the persistence gateway with a JSON
// round-trip per save, so tests exercise the same serialization the
// real gateway relies on.
type memoryGateway struct {
	mu      sync.Mutex
	stores  map[string][]byte
	saveErr error
	loadErr error
	saves   int
}

func newMemoryGateway() *memoryGateway {
	return &memoryGateway{stores: map[string][]byte{}}
}

func (g *memoryGateway) Load(ctx context.Context, userID string) (*entities.Store, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.loadErr != nil {
		return nil, g.loadErr
	}
	raw, ok := g.stores[userID]
	if !ok {
		return entities.NewStore(), nil
	}
	var store entities.Store
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (g *memoryGateway) Save(ctx context.Context, userID string, store *entities.Store) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.saveErr != nil {
		return g.saveErr
	}
	raw, err := json.Marshal(store)
	if err != nil {
		return err
	}
	g.stores[userID] = raw
	g.saves++
	return nil
}

func (g *memoryGateway) saveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}

// fakeDirectory is a fixed in-memory user directory.
type fakeDirectory struct {
	users []*entities.User
}

func newFakeDirectory(names ...string) *fakeDirectory {
	d := &fakeDirectory{}
	for _, name := range names {
		d.users = append(d.users, &entities.User{
			ID:          "u-" + strings.ToLower(name),
			DisplayName: name,
			JoinDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return d
}

func (d *fakeDirectory) FindByDisplayName(displayName string) (*entities.User, error) {
	for _, u := range d.users {
		if strings.EqualFold(u.DisplayName, strings.TrimSpace(displayName)) {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (d *fakeDirectory) List() []*entities.User {
	return d.users
}
