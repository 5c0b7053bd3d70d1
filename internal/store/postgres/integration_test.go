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

//go:build integration
// +build integration

package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/mobilebiz/gps-message/internal/state"
)

func testEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestPurpose: Validates the app_state repository against a real PostgreSQL
// instance: upsert semantics, readback and deletion.
// Scope: Database Integration Test
// Expected: Set creates and fully replaces values; Get returns the stored
// bytes; Delete removes the row and subsequent Get reports absence.
func TestStateRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		Host:         testEnv("DB_HOST", "localhost"),
		Port:         testEnv("DB_PORT", "5432"),
		User:         testEnv("DB_USER", "gpsmessage"),
		Password:     testEnv("DB_PASSWORD", "gpsmessage_dev_password"),
		Database:     testEnv("DB_NAME", "gpsmessage"),
		SSLMode:      testEnv("DB_SSLMODE", "disable"),
		MaxOpenConns: 5,
		MaxIdleConns: 5,
	}

	db, err := New(ctx, cfg)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx, InitialSchema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	repo := NewStateRepository(db)
	key := "user:integration-test"
	defer db.Pool().Exec(ctx, "DELETE FROM app_state WHERE key = $1", key)

	// Absent key
	_, err = repo.Get(ctx, key)
	if err != state.ErrNotFound {
		t.Fatalf("expected ErrNotFound for absent key, got %v", err)
	}

	type record struct {
		Subdomain   string `json:"subdomain"`
		PhoneNumber string `json:"phoneNumber"`
		IsActive    bool   `json:"isActive"`
	}

	// Create
	first := []byte(`{"subdomain":"integration-test","phoneNumber":"+819011112222","isActive":true}`)
	if err := repo.Set(ctx, key, first); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	raw, err := repo.Get(ctx, key)
	if err != nil {
		t.Fatalf("failed to get value: %v", err)
	}

	// JSONB does not preserve the input bytes, compare decoded values.
	var got record
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("failed to decode stored value: %v", err)
	}
	if got.PhoneNumber != "+819011112222" || !got.IsActive {
		t.Errorf("unexpected stored value: %+v", got)
	}

	// Full replace
	second := []byte(`{"subdomain":"integration-test","phoneNumber":"+819033334444","isActive":false}`)
	if err := repo.Set(ctx, key, second); err != nil {
		t.Fatalf("failed to overwrite value: %v", err)
	}

	raw, err = repo.Get(ctx, key)
	if err != nil {
		t.Fatalf("failed to get overwritten value: %v", err)
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("failed to decode overwritten value: %v", err)
	}
	if got.PhoneNumber != "+819033334444" || got.IsActive {
		t.Errorf("unexpected overwritten value: %+v", got)
	}

	// Delete
	if err := repo.Delete(ctx, key); err != nil {
		t.Fatalf("failed to delete value: %v", err)
	}
	if _, err = repo.Get(ctx, key); err != state.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
