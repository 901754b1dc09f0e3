// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/errors"
)

// AccountMembershipChecker defines the interface for account ancestry
// membership operations
type AccountMembershipChecker interface {
	// AccountInHaystack reports whether the account, or any of its ancestors,
	// is in the haystack of node IDs
	AccountInHaystack(ctx context.Context, accountID string, haystack []string, requireDirectDescendant bool) (bool, error)

	// IsReady checks if the hierarchy source is ready
	IsReady(ctx context.Context) error
}

// AccountMembership handles account ancestry business operations
// It depends on abstractions (interfaces) rather than concrete implementations
type AccountMembership struct {
	reader port.OrganizationReader
}

// AccountInHaystack walks upward from an account through its parent chain,
// checking each encountered node ID against the haystack. The walk
// short-circuits on the first match and is bounded by the maximum nesting
// depth AWS Organizations supports, so an ancestor chain that never matches
// is a defined false, not an error. With requireDirectDescendant only the
// account itself and its immediate parent are considered.
func (s *AccountMembership) AccountInHaystack(ctx context.Context, accountID string, haystack []string, requireDirectDescendant bool) (bool, error) {

	slog.DebugContext(ctx, "starting account membership check",
		"account_id", accountID,
		"haystack_size", len(haystack),
		"require_direct_descendant", requireDirectDescendant,
	)

	if accountID == "" {
		return false, errors.NewValidation("an account ID must be provided")
	}

	if len(haystack) == 0 {
		// Nothing can match; skip the provider round-trips entirely.
		return false, nil
	}

	needles := make(map[string]struct{}, len(haystack))
	for _, nodeID := range haystack {
		needles[nodeID] = struct{}{}
	}

	currentID := accountID
	for i := 0; i < constants.MaxHierarchyDepth; i++ {
		if _, ok := needles[currentID]; ok {
			slog.DebugContext(ctx, "account membership check matched",
				"account_id", accountID,
				"matched_node", currentID,
				"distance", i,
			)
			return true, nil
		}

		// Only the immediate parent matters in direct-descendant mode.
		if requireDirectDescendant && i == 1 {
			break
		}

		// The chain ends at the organization root.
		if model.IsRootID(currentID) {
			break
		}

		parentID, err := s.reader.GetParent(ctx, currentID)
		if err != nil {
			slog.ErrorContext(ctx, "account membership check failed while resolving parent",
				"account_id", accountID,
				"node_id", currentID,
				"error", err,
			)
			return false, err
		}
		if parentID == "" {
			// Broken chain reported by the provider; treat as exhausted.
			break
		}

		currentID = parentID
	}

	slog.DebugContext(ctx, "account membership check exhausted without match",
		"account_id", accountID,
	)

	return false, nil
}

// IsReady checks if the underlying hierarchy source is ready
func (s *AccountMembership) IsReady(ctx context.Context) error {
	return s.reader.IsReady(ctx)
}

// NewAccountMembership creates a new AccountMembership instance
func NewAccountMembership(reader port.OrganizationReader) AccountMembershipChecker {
	return &AccountMembership{
		reader: reader,
	}
}
