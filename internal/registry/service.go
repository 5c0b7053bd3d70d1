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

// Package registry maintains the set of configured tenants over the
// instance-state store.
package registry

import (
	"context"
	"log/slog"

	"github.com/mobilebiz/gps-message/internal/audit"
	"github.com/mobilebiz/gps-message/internal/observability/logger"
	"github.com/mobilebiz/gps-message/internal/state"
)

// Service provides tenant registry business logic.
type Service struct {
	state       *state.Client
	auditLogger audit.Logger
}

// NewService creates a new registry service.
func NewService(stateClient *state.Client, auditLogger audit.Logger) *Service {
	return &Service{
		state:       stateClient,
		auditLogger: auditLogger,
	}
}

// Resolve looks up a tenant record directly, without touching the index.
// Absence covers both "never registered" and "store lookup failed".
func (s *Service) Resolve(ctx context.Context, subdomain string) (*Tenant, bool) {
	var t Tenant
	if !s.state.Lookup(ctx, recordKey(subdomain), &t) {
		return nil, false
	}
	return &t, true
}

// ListAll enumerates every tenant known to the index. Index entries whose
// record is missing from the store are skipped, the index may be stale
// relative to records.
func (s *Service) ListAll(ctx context.Context) []Tenant {
	var index []string
	s.state.Lookup(ctx, indexKey, &index)

	tenants := make([]Tenant, 0, len(index))
	for _, subdomain := range index {
		var t Tenant
		if !s.state.Lookup(ctx, recordKey(subdomain), &t) {
			slog.DebugContext(ctx, "index entry has no record, skipping",
				logger.Subdomain(subdomain))
			continue
		}
		tenants = append(tenants, t)
	}
	return tenants
}

// Upsert creates or fully replaces a tenant record, then appends the
// subdomain to the index if it is not already present. The record write
// happens before the index mutation: a crash in between leaves an orphan
// record, which ListAll tolerates, rather than a dangling index entry.
func (s *Service) Upsert(ctx context.Context, subdomain, phoneNumber string, isActive bool) (*Tenant, error) {
	if subdomain == "" {
		return nil, ErrSubdomainRequired
	}
	if phoneNumber == "" {
		return nil, ErrPhoneRequired
	}

	t := Tenant{
		Subdomain:   subdomain,
		PhoneNumber: phoneNumber,
		IsActive:    isActive,
	}
	s.state.PutBestEffort(ctx, recordKey(subdomain), t)

	var index []string
	s.state.Lookup(ctx, indexKey, &index)
	if !contains(index, subdomain) {
		index = append(index, subdomain)
		s.state.PutBestEffort(ctx, indexKey, index)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeTenantUpserted,
		Subdomain: subdomain,
		Metadata:  map[string]any{"is_active": isActive},
	})

	return &t, nil
}

// Remove deletes a tenant. The subdomain is removed from the index first;
// afterwards the record delete is attempted, falling back to a null marker
// write when the delete fails. Removing an unknown subdomain is a no-op.
func (s *Service) Remove(ctx context.Context, subdomain string) error {
	var index []string
	s.state.Lookup(ctx, indexKey, &index)

	filtered := make([]string, 0, len(index))
	for _, entry := range index {
		if entry != subdomain {
			filtered = append(filtered, entry)
		}
	}
	if err := s.state.Put(ctx, indexKey, filtered); err != nil {
		return err
	}

	if err := s.state.Delete(ctx, recordKey(subdomain)); err != nil {
		// Record removal may silently fail without invalidating the index
		// removal; overwrite with a null marker so lookups see absence.
		slog.WarnContext(ctx, "record delete failed, writing null marker",
			logger.Subdomain(subdomain), logger.Error(err))
		s.state.PutBestEffort(ctx, recordKey(subdomain), nil)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeTenantRemoved,
		Subdomain: subdomain,
	})

	return nil
}

func contains(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}
