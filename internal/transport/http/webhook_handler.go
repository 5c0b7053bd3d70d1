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
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mobilebiz/gps-message/internal/dispatch"
	"github.com/mobilebiz/gps-message/internal/geo"
	"github.com/mobilebiz/gps-message/internal/observability/logger"
)

// Webhook sources nest coordinate values as {"value": "<string>"}.
type coordinateField struct {
	Value string `json:"value"`
}

type webhookRecord struct {
	Lat coordinateField `json:"lat"`
	Lon coordinateField `json:"lon"`
}

type webhookRequest struct {
	URL    string         `json:"url"`
	Record *webhookRecord `json:"record"`
}

// HandleLocationWebhook accepts a location update and runs the dispatch
// pipeline. Every business outcome acknowledges with 200, webhook sources
// retry on non-2xx; only a malformed payload or an unresolvable subdomain
// is a client error.
func (h *Handler) HandleLocationWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "invalid webhook payload", logger.Error(err))
		respondText(w, http.StatusBadRequest, "Invalid Payload")
		return
	}
	if req.URL == "" || req.Record == nil {
		slog.ErrorContext(r.Context(), "invalid webhook payload: missing url or record")
		respondText(w, http.StatusBadRequest, "Invalid Payload")
		return
	}

	lat, latErr := strconv.ParseFloat(req.Record.Lat.Value, 64)
	lon, lonErr := strconv.ParseFloat(req.Record.Lon.Value, 64)
	if latErr != nil || lonErr != nil {
		slog.ErrorContext(r.Context(), "invalid webhook payload: unparseable coordinates",
			logger.SourceURL(req.URL))
		respondText(w, http.StatusBadRequest, "Invalid Payload")
		return
	}

	slog.InfoContext(r.Context(), "webhook received", logger.SourceURL(req.URL))

	outcome := h.pipeline.Handle(r.Context(), dispatch.LocationEvent{
		SourceURL:  req.URL,
		Coordinate: geo.Point{Lat: lat, Lon: lon},
	})

	status := http.StatusOK
	if outcome.Result == dispatch.ResultBadRequest {
		status = http.StatusBadRequest
	}
	respondText(w, status, outcome.Message())
}
