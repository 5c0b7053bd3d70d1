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

package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mobilebiz/gps-message/internal/observability/logger"
)

// Client wraps a Store with the service's availability policy:
//
//   - Reads degrade to "absent" on any backend failure, so callers treat
//     "not found" and "lookup failed" uniformly. A store outage must not
//     fail request handling, only produce conservative fallbacks.
//   - Best-effort writes are logged and swallowed; the webhook caller
//     cannot act on a persistence failure, and retrying the whole webhook
//     would re-trigger notification logic.
//
// Values round-trip through JSON so the memory and Postgres backends
// store the same documents.
type Client struct {
	store Store
}

// NewClient creates a policy client over a Store.
func NewClient(store Store) *Client {
	return &Client{store: store}
}

// Lookup reads key into out and reports whether a value was present.
// Backend failures and malformed documents degrade to absence.
func (c *Client) Lookup(ctx context.Context, key string, out any) bool {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if err != ErrNotFound {
			slog.WarnContext(ctx, "state read failed, treating as absent",
				logger.Key(key), logger.Error(err))
		}
		return false
	}
	if len(raw) == 0 || string(raw) == "null" {
		// A null marker is how a failed delete is papered over (see Remove
		// fallback in the registry); it counts as absent.
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.WarnContext(ctx, "state value is malformed, treating as absent",
			logger.Key(key), logger.Error(err))
		return false
	}
	return true
}

// Put marshals v and writes it under key, returning any backend error.
func (c *Client) Put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state value for %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write state key %s: %w", key, err)
	}
	return nil
}

// PutBestEffort writes under the best-effort policy: a failure is logged
// at WARN and otherwise ignored.
func (c *Client) PutBestEffort(ctx context.Context, key string, v any) {
	if err := c.Put(ctx, key, v); err != nil {
		slog.WarnContext(ctx, "best-effort state write failed",
			logger.Key(key), logger.Error(err))
	}
}

// Delete removes key, returning any backend error. Deleting an absent
// key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to delete state key %s: %w", key, err)
	}
	return nil
}
