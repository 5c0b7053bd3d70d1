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

// Package cooldown throttles repeat notifications per tenant.
//
// The gate keeps a single mark per subdomain, the epoch-millisecond
// timestamp of the last dispatch attempt. There is no read-modify-write
// atomicity between Status and Record: two concurrent events for the same
// tenant can both observe "not throttled" and both dispatch. The store
// contract offers no conditional write to close that window.
package cooldown

import (
	"context"
	"time"

	"github.com/mobilebiz/gps-message/internal/state"
)

// Gate decides whether a tenant is still inside its cooldown window.
type Gate struct {
	state  *state.Client
	window time.Duration
}

// NewGate creates a gate with the given window. The window applies to
// every tenant; marks are tenant-scoped, so tenants never interact.
func NewGate(stateClient *state.Client, window time.Duration) *Gate {
	return &Gate{state: stateClient, window: window}
}

func markKey(subdomain string) string {
	return "state:" + subdomain + ":last_sent"
}

// Status reports whether subdomain is throttled at instant now, and how
// much of the window remains. A missing or unreadable mark counts as not
// throttled.
func (g *Gate) Status(ctx context.Context, subdomain string, now time.Time) (bool, time.Duration) {
	var markMillis int64
	if !g.state.Lookup(ctx, markKey(subdomain), &markMillis) {
		return false, 0
	}

	elapsed := now.Sub(time.UnixMilli(markMillis))
	if elapsed >= g.window {
		return false, 0
	}
	return true, g.window - elapsed
}

// Record overwrites the mark for subdomain unconditionally. The write is
// best-effort: a store failure leaves the previous mark in place.
func (g *Gate) Record(ctx context.Context, subdomain string, now time.Time) {
	g.state.PutBestEffort(ctx, markKey(subdomain), now.UnixMilli())
}

// RemainingMinutes converts a remaining duration to the whole minutes
// surfaced to webhook callers, rounded up.
func RemainingMinutes(remaining time.Duration) int64 {
	minutes := remaining / time.Minute
	if remaining%time.Minute != 0 {
		minutes++
	}
	return int64(minutes)
}
