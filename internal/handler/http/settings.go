// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 dsdgdxxx

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dsdgdxxx/grok2api/internal/config"
)

const redacted = "[REDACTED]"

// configView is the JSON shape returned by GET and PUT /api/config: the
// resolved snapshots of both sections with secrets masked.
type configView struct {
	Global map[string]any `json:"global"`
	Grok   map[string]any `json:"grok"`
}

// updateRequest carries the partial mappings to upsert. Either section may
// be omitted.
type updateRequest struct {
	Global map[string]any `json:"global,omitempty"`
	Grok   map[string]any `json:"grok,omitempty"`
}

// getConfig returns the current resolved configuration of both sections.
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.currentView())
}

// updateConfig upserts the supplied partial mappings through the resolver
// and returns the refreshed resolved view.
func (h *Handler) updateConfig(w http.ResponseWriter, r *http.Request) {
	req, err := decodeUpdateRequest(r.Body)
	if err != nil {
		h.logger.Err(err).Msg("error decoding config update request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Global) == 0 && len(req.Grok) == 0 {
		http.Error(w, ErrEmptyUpdate.Error(), http.StatusBadRequest)
		return
	}

	if err := h.resolver.Save(r.Context(), req.Global, req.Grok); err != nil {
		h.logger.Err(err).Msg("error saving configuration")
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrConfigPersist) {
			status = http.StatusBadGateway
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.writeJSON(w, http.StatusOK, h.currentView())
}

// currentView copies both live snapshots and masks secret values so they
// never leave the process through the admin API.
func (h *Handler) currentView() configView {
	view := configView{
		Global: copyValues(h.resolver.Global()),
		Grok:   copyValues(h.resolver.Service()),
	}

	maskSecret(view.Global, "admin_password")
	maskSecret(view.Grok, "api_key")
	maskSecret(view.Grok, "cf_clearance")

	return view
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Err(err).Msg("error encoding response")
	}
}

// decodeUpdateRequest parses the request body keeping integer values
// integral: a plain json.Decoder would deliver every number as float64 and
// the persisted document would drift from integer to float on the next
// save.
func decodeUpdateRequest(r io.Reader) (updateRequest, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var req updateRequest
	if err := dec.Decode(&req); err != nil {
		return updateRequest{}, err
	}

	normalizeNumbers(req.Global)
	normalizeNumbers(req.Grok)
	return req, nil
}

func normalizeNumbers(values map[string]any) {
	for k, v := range values {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			values[k] = i
			continue
		}
		if f, err := n.Float64(); err == nil {
			values[k] = f
		}
	}
}

func copyValues(snap config.Snapshot) map[string]any {
	out := make(map[string]any, len(snap))
	for k, v := range snap {
		out[k] = v
	}
	return out
}

func maskSecret(values map[string]any, key string) {
	if v, ok := values[key].(string); ok && v != "" {
		values[key] = redacted
	}
}
