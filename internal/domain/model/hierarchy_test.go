// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHierarchy() *Hierarchy {
	return &Hierarchy{
		ParentID: "r-root",
		Node: &OrgUnit{
			Name:     "Organization Root",
			Accounts: []Account{{ID: "999999999999", Name: "management"}},
			OrgUnits: map[string]*OrgUnit{
				"ou-workloads": {
					Name: "Workloads",
					Accounts: []Account{
						{ID: "333333333333", Name: "prod"},
						{ID: "444444444444", Name: "staging"},
					},
					OrgUnits: map[string]*OrgUnit{},
				},
				"ou-sandbox": {
					Name:     "Sandbox",
					Accounts: []Account{{ID: "111111111111", Name: "scratch"}},
					OrgUnits: map[string]*OrgUnit{
						"ou-sandbox-dev": {
							Name:     "Sandbox Dev",
							Accounts: []Account{{ID: "222222222222", Name: "dev-scratch"}},
							OrgUnits: map[string]*OrgUnit{},
						},
					},
				},
			},
		},
	}
}

func TestHierarchyAccounts(t *testing.T) {
	tests := []struct {
		name        string
		hierarchy   *Hierarchy
		expectedIDs []string
	}{
		{
			name:      "flattens pre-order with children in ascending ID order",
			hierarchy: sampleHierarchy(),
			expectedIDs: []string{
				"999999999999",
				"111111111111",
				"222222222222",
				"333333333333",
				"444444444444",
			},
		},
		{
			name: "empty tree flattens to nothing",
			hierarchy: &Hierarchy{
				ParentID: "r-root",
				Node:     &OrgUnit{Name: "Organization Root", Accounts: []Account{}, OrgUnits: map[string]*OrgUnit{}},
			},
			expectedIDs: []string{},
		},
		{
			name:        "nil hierarchy flattens to nothing",
			hierarchy:   nil,
			expectedIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, 0)
			for _, account := range tt.hierarchy.Accounts() {
				ids = append(ids, account.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestHierarchyAccountsIsDeterministic(t *testing.T) {
	hierarchy := sampleHierarchy()

	first := hierarchy.Accounts()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, hierarchy.Accounts())
	}
}

func TestHierarchyJSONShape(t *testing.T) {
	hierarchy := &Hierarchy{
		ParentID: "ou-sandbox",
		Node: &OrgUnit{
			Name:     "Sandbox",
			Accounts: []Account{{ID: "111111111111", Name: "scratch", Status: "ACTIVE"}},
			OrgUnits: map[string]*OrgUnit{},
		},
	}

	data, err := json.Marshal(hierarchy)
	require.NoError(t, err)

	// The wire form is a single-entry mapping from the parent node ID.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Contains(t, raw, "ou-sandbox")

	var restored Hierarchy
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, hierarchy.ParentID, restored.ParentID)
	assert.Equal(t, hierarchy.Node.Name, restored.Node.Name)
	assert.Equal(t, hierarchy.Node.Accounts, restored.Node.Accounts)
}
