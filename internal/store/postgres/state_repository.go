// Copyright 2026 The GPS Message Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mobilebiz/gps-message/internal/state"
)

// StateRepository implements state.Store on top of the app_state table.
type StateRepository struct {
	db *DB
}

// NewStateRepository creates a new state repository.
func NewStateRepository(db *DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get returns the JSON document stored under key.
func (r *StateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.pool.QueryRow(ctx, `
		SELECT value FROM app_state WHERE key = $1
	`, key).Scan(&value)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state key %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous document.
func (r *StateRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)

	if err != nil {
		return fmt.Errorf("failed to write state key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an absent key is not an error.
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.pool.Exec(ctx, `
		DELETE FROM app_state WHERE key = $1
	`, key)

	if err != nil {
		return fmt.Errorf("failed to delete state key %s: %w", key, err)
	}
	return nil
}
