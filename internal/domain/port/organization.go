// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/model"
)

// OrganizationReader defines the read operations over an organization
// hierarchy. This abstraction allows different hierarchy implementations
// (AWS Organizations, mocks) without the domain layer knowing about specific
// implementations. Implementations hide pagination: list operations return
// fully exhausted result sets.
type OrganizationReader interface {
	// GetParent returns the single parent node ID of the given node. A node
	// with zero or multiple parents is a data-integrity error
	// (errors.ParentResolution). An empty ID with a nil error marks a broken
	// chain the caller may treat as exhausted.
	GetParent(ctx context.Context, childID string) (string, error)

	// GetRoot returns the organization's root node ID.
	GetRoot(ctx context.Context) (string, error)

	// DescribeOrgUnit returns descriptive metadata for an organizational unit.
	DescribeOrgUnit(ctx context.Context, ouID string) (model.OrgUnitSummary, error)

	// ListAccounts returns all accounts directly under the given parent node.
	ListAccounts(ctx context.Context, parentID string) ([]model.Account, error)

	// ListChildUnits returns the node IDs of all organizational units directly
	// under the given parent node.
	ListChildUnits(ctx context.Context, parentID string) ([]string, error)

	// IsReady checks if the hierarchy source is reachable
	IsReady(ctx context.Context) error
}
