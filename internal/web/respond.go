// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/samber/oops"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   string              `json:"error"`
	Code    string              `json:"code,omitempty"`
	Details []string            `json:"detalhes,omitempty"`
	Fields  map[string][]string `json:"campos,omitempty"`
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "status", status, "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	writeJSON(w, status, resp)
}

// decodeJSON reads one JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return oops.Code("WEB_INVALID_JSON").Wrap(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return oops.Code("WEB_INVALID_JSON").Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeBadJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", Code: "WEB_INVALID_JSON"})
}
