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

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mobilebiz/gps-message/internal/registry"
)

// UpsertUserRequest represents tenant registration data
type UpsertUserRequest struct {
	Subdomain   string `json:"subdomain"`
	PhoneNumber string `json:"phoneNumber"`
	IsActive    bool   `json:"isActive"`
}

// ListUsers returns every registered tenant.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.registry.ListAll(r.Context()))
}

// UpsertUser creates or fully replaces a tenant record.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req UpsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tenant, err := h.registry.Upsert(r.Context(), req.Subdomain, req.PhoneNumber, req.IsActive)
	if err != nil {
		if errors.Is(err, registry.ErrSubdomainRequired) || errors.Is(err, registry.ErrPhoneRequired) {
			respondError(w, http.StatusBadRequest, "Subdomain and phone number are required")
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusCreated, tenant)
}

// DeleteUser removes a tenant. Idempotent, removing an unknown subdomain
// still responds 200.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	subdomain := chi.URLParam(r, "subdomain")

	if err := h.registry.Remove(r.Context(), subdomain); err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.WriteHeader(http.StatusOK)
}
