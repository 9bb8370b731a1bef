package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

// StoreRepositoryImpl persists one serialized store per user in a
// single key-value table. The JSON round-trip preserves ids, fields
// and sibling ordering.
type StoreRepositoryImpl struct {
	db *sqlx.DB
}

// NewStoreRepository creates a new store gateway backed by Postgres
func NewStoreRepository(db *sqlx.DB) ports.StoreGateway {
	return &StoreRepositoryImpl{db: db}
}

func (r *StoreRepositoryImpl) Load(ctx context.Context, userID string) (*entities.Store, error) {
	query := `SELECT data FROM stores WHERE user_id = $1`

	var raw []byte
	err := r.db.GetContext(ctx, &raw, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Nothing persisted yet: a fresh user starts empty.
			return entities.NewStore(), nil
		}
		return nil, fmt.Errorf("load store: %w", err)
	}

	var store entities.Store
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}
	normalize(&store)

	return &store, nil
}

func (r *StoreRepositoryImpl) Save(ctx context.Context, userID string, store *entities.Store) error {
	raw, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	query := `
		INSERT INTO stores (user_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET data = $2, updated_at = $3`

	if _, err := r.db.ExecContext(ctx, query, userID, raw, time.Now()); err != nil {
		return fmt.Errorf("save store: %w", err)
	}

	return nil
}

// normalize replaces nil child sequences with empty ones so the rest
// of the code never null-checks.
func normalize(store *entities.Store) {
	if store.Boards == nil {
		store.Boards = []*entities.Board{}
	}
	for _, b := range store.Boards {
		if b.Folders == nil {
			b.Folders = []*entities.Folder{}
		}
		for _, f := range b.Folders {
			if f.Tasks == nil {
				f.Tasks = []*entities.Task{}
			}
		}
	}
}
