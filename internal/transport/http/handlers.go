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

// Package http exposes the webhook, the tenant admin API and the embedded
// admin UI.
package http

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mobilebiz/gps-message/internal/dispatch"
	"github.com/mobilebiz/gps-message/internal/registry"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	pipeline *dispatch.Pipeline
	registry *registry.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(pipeline *dispatch.Pipeline, reg *registry.Service) *Handler {
	return &Handler{
		pipeline: pipeline,
		registry: reg,
	}
}

// NewRouter creates a new HTTP router. staticFS serves the admin UI at /;
// pass nil to disable it.
func NewRouter(h *Handler, rateLimiter *RateLimiter, staticFS fs.FS) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check aliases; the managed runtime probes /_/health.
	r.Get("/health", h.HealthCheck)
	r.Get("/_health", h.HealthCheck)
	r.Get("/_/health", h.HealthCheck)

	// Inbound location webhook
	r.Post("/webhook/location", h.HandleLocationWebhook)

	// Tenant admin API, consumed by the admin UI
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.UpsertUser)
		r.Delete("/{subdomain}", h.DeleteUser)
	})

	// Admin UI
	if staticFS != nil {
		r.Handle("/*", StaticHandler{FS: staticFS})
	}

	return r
}

// HealthCheck reports liveness. No state access.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondText(w, http.StatusOK, "OK")
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func respondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
