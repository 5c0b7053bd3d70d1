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

// Package dispatch runs the geofenced notification pipeline: resolve the
// tenant from the event source, gate on the cooldown, evaluate the fence,
// send, record.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mobilebiz/gps-message/internal/audit"
	"github.com/mobilebiz/gps-message/internal/cooldown"
	"github.com/mobilebiz/gps-message/internal/geo"
	"github.com/mobilebiz/gps-message/internal/observability/logger"
	"github.com/mobilebiz/gps-message/internal/registry"
	"github.com/mobilebiz/gps-message/internal/sms"
)

// Config holds the message options applied to every dispatch.
type Config struct {
	SenderID    string
	MessageBody string
}

// Pipeline orchestrates one location event to its terminal outcome.
type Pipeline struct {
	registry    *registry.Service
	gate        *cooldown.Gate
	fence       geo.Fence
	sender      sms.Sender
	cfg         Config
	auditLogger audit.Logger
	metrics     *Metrics
	now         func() time.Time
}

// NewPipeline creates a dispatch pipeline. metrics may be nil.
func NewPipeline(
	reg *registry.Service,
	gate *cooldown.Gate,
	fence geo.Fence,
	sender sms.Sender,
	cfg Config,
	auditLogger audit.Logger,
	m *Metrics,
) *Pipeline {
	return &Pipeline{
		registry:    reg,
		gate:        gate,
		fence:       fence,
		sender:      sender,
		cfg:         cfg,
		auditLogger: auditLogger,
		metrics:     m,
		now:         time.Now,
	}
}

// Handle runs the pipeline for one event and returns its terminal outcome.
// Store and transport failures never abort the run; they degrade per the
// availability policy, so the only non-2xx outcome is ResultBadRequest.
func (p *Pipeline) Handle(ctx context.Context, event LocationEvent) Outcome {
	dispatchID := uuid.NewString()

	// Parse: extract the tenant identity from the source URL.
	subdomain, ok := subdomainFromURL(event.SourceURL)
	if !ok {
		slog.ErrorContext(ctx, "subdomain extraction failed",
			logger.DispatchID(dispatchID), logger.SourceURL(event.SourceURL))
		p.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeWebhookRejected,
			Resource: event.SourceURL,
		})
		return p.finish(ctx, Outcome{Result: ResultBadRequest})
	}

	// Resolve: unconfigured or inactive tenants are a normal no-op.
	tenant, ok := p.registry.Resolve(ctx, subdomain)
	if !ok || !tenant.IsActive || tenant.PhoneNumber == "" {
		slog.InfoContext(ctx, "tenant not configured or inactive",
			logger.DispatchID(dispatchID), logger.Subdomain(subdomain))
		return p.finish(ctx, Outcome{Result: ResultNotConfigured, Subdomain: subdomain})
	}

	// Cooldown gate.
	now := p.now()
	throttled, remaining := p.gate.Status(ctx, subdomain, now)
	if throttled {
		minutes := cooldown.RemainingMinutes(remaining)
		slog.InfoContext(ctx, "cooldown active, suppressing notification",
			logger.DispatchID(dispatchID), logger.Subdomain(subdomain),
			slog.Int64("remaining_min", minutes))
		p.auditLogger.Log(ctx, audit.Event{
			Type:      audit.TypeNotificationSuppressed,
			Subdomain: subdomain,
			Metadata:  map[string]any{"remaining_min": minutes},
		})
		return p.finish(ctx, Outcome{
			Result:           ResultSuppressed,
			Subdomain:        subdomain,
			RemainingMinutes: minutes,
		})
	}

	// Geofence evaluation.
	distance, inside := p.fence.Evaluate(event.Coordinate)
	slog.InfoContext(ctx, "geofence evaluated",
		logger.DispatchID(dispatchID), logger.Subdomain(subdomain),
		logger.DistanceMeters(distance), logger.RadiusMeters(p.fence.RadiusMeters))
	if !inside {
		p.auditLogger.Log(ctx, audit.Event{
			Type:      audit.TypeNotificationOutOfFence,
			Subdomain: subdomain,
			Metadata:  map[string]any{"distance_m": distance},
		})
		return p.finish(ctx, Outcome{Result: ResultOutsideFence, Subdomain: subdomain})
	}

	// Dispatch. A transport failure does not roll back the run: the mark
	// is recorded either way, so a tenant gets at most one attempt per
	// window regardless of transport outcome.
	if err := p.sender.Send(ctx, tenant.PhoneNumber, p.cfg.SenderID, p.cfg.MessageBody); err != nil {
		slog.ErrorContext(ctx, "sms send failed",
			logger.DispatchID(dispatchID), logger.Subdomain(subdomain),
			logger.Phone(tenant.PhoneNumber), logger.Error(err))
		p.auditLogger.Log(ctx, audit.Event{
			Type:      audit.TypeNotificationSendFailed,
			Subdomain: subdomain,
		})
		p.metrics.recordSendFailure(ctx)
	} else {
		slog.InfoContext(ctx, "sms sent",
			logger.DispatchID(dispatchID), logger.Subdomain(subdomain),
			logger.Phone(tenant.PhoneNumber))
		p.auditLogger.Log(ctx, audit.Event{
			Type:      audit.TypeNotificationSent,
			Subdomain: subdomain,
		})
	}

	// Record the cooldown mark with the dispatch timestamp.
	p.gate.Record(ctx, subdomain, now)

	return p.finish(ctx, Outcome{Result: ResultSent, Subdomain: subdomain})
}

func (p *Pipeline) finish(ctx context.Context, o Outcome) Outcome {
	slog.DebugContext(ctx, "dispatch finished", logger.Outcome(o.Result.String()))
	p.metrics.recordOutcome(ctx, o.Result)
	return o
}
