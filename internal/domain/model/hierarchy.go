// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"sort"
)

// OrgUnit is one node of an organizational hierarchy: a root or an
// organizational unit together with its direct accounts and child units.
// Each OrgUnit exclusively owns its subtree; trees are built once and
// returned immutable to the caller.
type OrgUnit struct {
	// Node display name
	Name string `json:"name"`
	// Accounts directly under this node
	Accounts []Account `json:"accounts"`
	// Child organizational units keyed by their node ID
	OrgUnits map[string]*OrgUnit `json:"org_units"`
}

// Hierarchy is the result of a hierarchy query: the requested parent node ID
// mapped to its assembled subtree. It is a dedicated value type rather than a
// bare map so that derived traversals live next to the data they walk.
type Hierarchy struct {
	// ParentID is the root/OU node the hierarchy was built from
	ParentID string
	// Node is the assembled subtree
	Node *OrgUnit
}

// Accounts returns every account attached to any node of the hierarchy as a
// single flat list. The order is deterministic per build: pre-order
// depth-first, accounts in provider return order within a node, child units
// visited in ascending node-ID order.
func (h *Hierarchy) Accounts() []Account {
	if h == nil || h.Node == nil {
		return nil
	}
	return collectAccounts(h.Node)
}

func collectAccounts(unit *OrgUnit) []Account {
	accounts := make([]Account, 0, len(unit.Accounts))
	accounts = append(accounts, unit.Accounts...)

	childIDs := make([]string, 0, len(unit.OrgUnits))
	for id := range unit.OrgUnits {
		childIDs = append(childIDs, id)
	}
	sort.Strings(childIDs)

	for _, id := range childIDs {
		accounts = append(accounts, collectAccounts(unit.OrgUnits[id])...)
	}

	return accounts
}

// MarshalJSON emits the single-entry {parentID: node} mapping.
func (h *Hierarchy) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]*OrgUnit{h.ParentID: h.Node})
}

// UnmarshalJSON restores a Hierarchy from its single-entry mapping form.
func (h *Hierarchy) UnmarshalJSON(data []byte) error {
	var m map[string]*OrgUnit
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for id, node := range m {
		h.ParentID = id
		h.Node = node
	}
	return nil
}
