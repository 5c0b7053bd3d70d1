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

// Package state defines the key/value instance-state contract and the
// availability policy applied on top of it. The external store is the only
// persistence boundary; nothing is cached in memory across requests.
package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when a key has no value.
var ErrNotFound = errors.New("state: key not found")

// Store defines the interface for the external key/value state backend.
// Values are opaque JSON documents. Every operation may fail with a
// backend or network error; callers decide how much they care (see Client).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
