// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/errors"
)

// HierarchyAssembler defines the interface for OU hierarchy operations
type HierarchyAssembler interface {
	// OrgHierarchy builds the tree of organizational units and accounts
	// rooted at the given parent node
	OrgHierarchy(ctx context.Context, parentID string, directDescendantsOnly bool) (*model.Hierarchy, error)

	// IsReady checks if the hierarchy source is ready
	IsReady(ctx context.Context) error
}

// HierarchyAssembly handles OU hierarchy business operations
// It depends on abstractions (interfaces) rather than concrete implementations
type HierarchyAssembly struct {
	reader port.OrganizationReader
}

// OrgHierarchy builds a nested representation of OUs and accounts under a
// parent node. An empty parentID starts at the organization root. In
// direct-descendants-only mode child units carry just their name, with empty
// accounts and child maps, and no listing calls are made for them; otherwise
// the full subtree is assembled recursively.
func (s *HierarchyAssembly) OrgHierarchy(ctx context.Context, parentID string, directDescendantsOnly bool) (*model.Hierarchy, error) {

	slog.DebugContext(ctx, "starting hierarchy assembly",
		"parent_id", parentID,
		"direct_descendants_only", directDescendantsOnly,
	)

	var parentName string
	switch {
	case parentID == "":
		rootID, err := s.reader.GetRoot(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "hierarchy assembly failed while resolving root", "error", err)
			return nil, err
		}
		parentID = rootID
		parentName = constants.OrganizationRootLabel

	case model.IsRootID(parentID):
		// Roots have no describable name of their own.
		parentName = constants.OrganizationRootLabel

	default:
		name, err := s.orgUnitName(ctx, parentID)
		if err != nil {
			return nil, err
		}
		parentName = name
	}

	node, err := s.buildNode(ctx, parentID, parentName, directDescendantsOnly)
	if err != nil {
		return nil, err
	}

	hierarchy := &model.Hierarchy{
		ParentID: parentID,
		Node:     node,
	}

	slog.DebugContext(ctx, "hierarchy assembly completed",
		"parent_id", parentID,
		"account_count", len(hierarchy.Accounts()),
	)

	return hierarchy, nil
}

// buildNode assembles one hierarchy node: its direct accounts, its direct
// child units and, unless directDescendantsOnly is set, their subtrees.
func (s *HierarchyAssembly) buildNode(ctx context.Context, nodeID, nodeName string, directDescendantsOnly bool) (*model.OrgUnit, error) {
	accounts, err := s.reader.ListAccounts(ctx, nodeID)
	if err != nil {
		slog.ErrorContext(ctx, "hierarchy assembly failed while listing accounts",
			"node_id", nodeID,
			"error", err,
		)
		return nil, err
	}

	childIDs, err := s.reader.ListChildUnits(ctx, nodeID)
	if err != nil {
		slog.ErrorContext(ctx, "hierarchy assembly failed while listing child units",
			"node_id", nodeID,
			"error", err,
		)
		return nil, err
	}

	node := &model.OrgUnit{
		Name:     nodeName,
		Accounts: accounts,
		OrgUnits: make(map[string]*model.OrgUnit, len(childIDs)),
	}

	for _, childID := range childIDs {
		childName, err := s.orgUnitName(ctx, childID)
		if err != nil {
			return nil, err
		}

		if directDescendantsOnly {
			node.OrgUnits[childID] = &model.OrgUnit{
				Name:     childName,
				Accounts: []model.Account{},
				OrgUnits: map[string]*model.OrgUnit{},
			}
			continue
		}

		child, err := s.buildNode(ctx, childID, childName, false)
		if err != nil {
			return nil, err
		}
		node.OrgUnits[childID] = child
	}

	return node, nil
}

// orgUnitName resolves the display name of an organizational unit. A unit
// without a name aborts the assembly rather than producing an anonymous node.
func (s *HierarchyAssembly) orgUnitName(ctx context.Context, ouID string) (string, error) {
	summary, err := s.reader.DescribeOrgUnit(ctx, ouID)
	if err != nil {
		slog.ErrorContext(ctx, "hierarchy assembly failed while describing unit",
			"ou_id", ouID,
			"error", err,
		)
		return "", err
	}

	if summary.Name == "" {
		return "", errors.NewUnexpected(fmt.Sprintf("unable to determine name for OU %s", ouID))
	}

	return summary.Name, nil
}

// IsReady checks if the underlying hierarchy source is ready
func (s *HierarchyAssembly) IsReady(ctx context.Context) error {
	return s.reader.IsReady(ctx)
}

// NewHierarchyAssembly creates a new HierarchyAssembly instance
func NewHierarchyAssembly(reader port.OrganizationReader) HierarchyAssembler {
	return &HierarchyAssembly{
		reader: reader,
	}
}
