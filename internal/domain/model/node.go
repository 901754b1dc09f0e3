// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"strings"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/constants"
)

// Node IDs come in three disjoint lexical classes: roots ("r-..."),
// organizational units ("ou-...") and 12-digit account IDs. Traversal treats
// them uniformly except where the prefix matters.

// IsRootID reports whether the given node ID identifies an organization root.
func IsRootID(nodeID string) bool {
	return strings.HasPrefix(nodeID, constants.RootIDPrefix)
}

// IsOrgUnitID reports whether the given node ID identifies an organizational unit.
func IsOrgUnitID(nodeID string) bool {
	return strings.HasPrefix(nodeID, constants.OrgUnitIDPrefix)
}

// IsAccountID reports whether the given node ID looks like an account ID.
func IsAccountID(nodeID string) bool {
	if len(nodeID) != 12 {
		return false
	}
	for _, r := range nodeID {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
