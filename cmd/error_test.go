// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "validation maps to bad request",
			err:            errors.NewValidation("an account ID must be provided"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found maps to not found",
			err:            errors.NewNotFound("organizational unit ou-missing not found"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "parent resolution maps to bad gateway",
			err:            errors.NewParentResolution("expected exactly one parent for 111111111111, got 0"),
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "service unavailable maps to service unavailable",
			err:            errors.NewServiceUnavailable("organizations API is not reachable"),
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "unexpected maps to internal server error",
			err:            errors.NewUnexpected("unable to determine name for OU ou-anonymous"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "unknown errors map to internal server error",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			writeError(context.Background(), rec, tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body.Message)
		})
	}
}
