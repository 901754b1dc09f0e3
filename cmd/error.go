// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string `json:"message"`
}

// writeError maps application errors to HTTP statuses and writes the error
// body. ParentResolution maps to 502: the upstream hierarchy reported
// inconsistent data, the request itself was fine.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {

	status := http.StatusInternalServerError
	switch err.(type) {
	case errors.Validation:
		status = http.StatusBadRequest
	case errors.NotFound:
		status = http.StatusNotFound
	case errors.ParentResolution:
		status = http.StatusBadGateway
	case errors.ServiceUnavailable:
		status = http.StatusServiceUnavailable
	}

	slog.ErrorContext(ctx, "request failed",
		"status", status,
		"error", err,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(errorBody{Message: err.Error()}); encodeErr != nil {
		slog.ErrorContext(ctx, "failed to encode error body", "error", encodeErr)
	}
}
