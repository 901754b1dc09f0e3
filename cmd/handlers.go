// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/errors"
)

// querySvc holds the query use cases the HTTP surface exposes.
type querySvc struct {
	membership service.AccountMembershipChecker
	hierarchy  service.HierarchyAssembler
}

// accountMembershipResult is the response body of the membership endpoint.
type accountMembershipResult struct {
	AccountID string `json:"account_id"`
	Found     bool   `json:"found"`
}

// handleOrgHierarchy serves GET /query/orgs/hierarchy.
func (s *querySvc) handleOrgHierarchy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	parentID := r.URL.Query().Get("parent")
	directOnly, err := boolQueryParam(r, "direct_descendants_only")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	slog.DebugContext(ctx, "querySvc.org-hierarchy",
		"parent", parentID,
		"direct_descendants_only", directOnly,
	)

	hierarchy, err := s.hierarchy.OrgHierarchy(ctx, parentID, directOnly)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, hierarchy)
}

// handleAccountMembership serves
// GET /query/orgs/accounts/{accountID}/membership.
func (s *querySvc) handleAccountMembership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID := r.PathValue("accountID")
	haystack := r.URL.Query()["haystack"]
	requireDirect, err := boolQueryParam(r, "require_direct_descendant")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if len(haystack) == 0 {
		writeError(ctx, w, errors.NewValidation("at least one haystack node ID must be provided"))
		return
	}

	slog.DebugContext(ctx, "querySvc.account-membership",
		"account_id", accountID,
		"haystack_size", len(haystack),
		"require_direct_descendant", requireDirect,
	)

	found, err := s.membership.AccountInHaystack(ctx, accountID, haystack, requireDirect)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, accountMembershipResult{
		AccountID: accountID,
		Found:     found,
	})
}

// handleLivez serves GET /livez.
func (s *querySvc) handleLivez(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReadyz serves GET /readyz; readiness delegates to the hierarchy source.
func (s *querySvc) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.hierarchy.IsReady(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// boolQueryParam parses an optional boolean query parameter, defaulting to
// false when absent.
func boolQueryParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewValidation("invalid boolean value for "+name, err)
	}
	return value, nil
}

// writeJSON serializes a response body with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "failed to encode response body", "error", err)
	}
}
