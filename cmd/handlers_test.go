// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/service"
)

func newTestService() (*querySvc, *mock.MockOrganizationReader) {
	reader := mock.NewMockOrganizationReader()
	return &querySvc{
		membership: service.NewAccountMembership(reader),
		hierarchy:  service.NewHierarchyAssembly(reader),
	}, reader
}

func newTestMux(svc *querySvc) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /query/orgs/hierarchy", svc.handleOrgHierarchy)
	mux.HandleFunc("GET /query/orgs/accounts/{accountID}/membership", svc.handleAccountMembership)
	mux.HandleFunc("GET /livez", svc.handleLivez)
	mux.HandleFunc("GET /readyz", svc.handleReadyz)
	return mux
}

func TestHandleOrgHierarchy(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		validate       func(*testing.T, map[string]json.RawMessage)
	}{
		{
			name:           "defaults to the organization root",
			target:         "/query/orgs/hierarchy",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]json.RawMessage) {
				assert.Contains(t, body, "r-root")
			},
		},
		{
			name:           "explicit parent",
			target:         "/query/orgs/hierarchy?parent=ou-sandbox",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]json.RawMessage) {
				assert.Contains(t, body, "ou-sandbox")
			},
		},
		{
			name:           "direct descendants only",
			target:         "/query/orgs/hierarchy?parent=r-root&direct_descendants_only=true",
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]json.RawMessage) {
				assert.Contains(t, body, "r-root")
			},
		},
		{
			name:           "malformed boolean parameter",
			target:         "/query/orgs/hierarchy?direct_descendants_only=maybe",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			mux := newTestMux(svc)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.validate != nil {
				var body map[string]json.RawMessage
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				tt.validate(t, body)
			}
		})
	}
}

func TestHandleAccountMembership(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedFound  bool
	}{
		{
			name:           "account found via ancestry",
			target:         "/query/orgs/accounts/111111111111/membership?haystack=ou-sandbox",
			expectedStatus: http.StatusOK,
			expectedFound:  true,
		},
		{
			name:           "account found via repeated haystack parameters",
			target:         "/query/orgs/accounts/222222222222/membership?haystack=ou-workloads&haystack=ou-sandbox",
			expectedStatus: http.StatusOK,
			expectedFound:  true,
		},
		{
			name:           "account not found",
			target:         "/query/orgs/accounts/111111111111/membership?haystack=ou-workloads",
			expectedStatus: http.StatusOK,
			expectedFound:  false,
		},
		{
			name:           "direct descendant restriction rejects a grandparent",
			target:         "/query/orgs/accounts/222222222222/membership?haystack=ou-sandbox&require_direct_descendant=true",
			expectedStatus: http.StatusOK,
			expectedFound:  false,
		},
		{
			name:           "missing haystack",
			target:         "/query/orgs/accounts/111111111111/membership",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed boolean parameter",
			target:         "/query/orgs/accounts/111111111111/membership?haystack=ou-sandbox&require_direct_descendant=maybe",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			mux := newTestMux(svc)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result accountMembershipResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, tt.expectedFound, result.Found)
			assert.NotEmpty(t, result.AccountID)
		})
	}
}

func TestHandleProbes(t *testing.T) {
	svc, _ := newTestService()
	mux := newTestMux(svc)

	for _, target := range []string{"/livez", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "OK", rec.Body.String(), target)
	}
}
