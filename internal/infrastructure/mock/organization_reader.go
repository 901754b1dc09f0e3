// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/port"
)

// ReaderCalls counts provider-level calls per operation so tests can assert
// the short-circuit and caching properties of the query services.
type ReaderCalls struct {
	GetParent       []string
	GetRoot         int
	DescribeOrgUnit []string
	ListAccounts    []string
	ListChildUnits  []string
}

// MockOrganizationReader is an in-memory implementation of
// port.OrganizationReader. It plays the role the real AWS Organizations API
// plays in production: tests and the local data source configure a small
// organization and the query services walk it.
type MockOrganizationReader struct {
	rootID     string
	parents    map[string]string
	names      map[string]string
	accounts   map[string][]model.Account
	childUnits map[string][]string
	parentErrs map[string]error

	// Calls records every provider-level invocation
	Calls ReaderCalls
}

// NewMockOrganizationReader creates a mock reader with a small sample
// organization:
//
//	r-root
//	├── ou-sandbox "Sandbox"            accounts: 111111111111
//	│   └── ou-sandbox-dev "Sandbox Dev" accounts: 222222222222
//	└── ou-workloads "Workloads"        accounts: 333333333333, 444444444444
func NewMockOrganizationReader() *MockOrganizationReader {
	r := NewEmptyMockOrganizationReader("r-root")

	r.SetOrgUnit("ou-sandbox", "Sandbox", "r-root")
	r.SetOrgUnit("ou-sandbox-dev", "Sandbox Dev", "ou-sandbox")
	r.SetOrgUnit("ou-workloads", "Workloads", "r-root")

	r.SetAccount(model.Account{ID: "111111111111", Name: "sandbox-scratch", Status: "ACTIVE"}, "ou-sandbox")
	r.SetAccount(model.Account{ID: "222222222222", Name: "sandbox-dev-scratch", Status: "ACTIVE"}, "ou-sandbox-dev")
	r.SetAccount(model.Account{ID: "333333333333", Name: "workloads-prod", Status: "ACTIVE"}, "ou-workloads")
	r.SetAccount(model.Account{ID: "444444444444", Name: "workloads-staging", Status: "SUSPENDED"}, "ou-workloads")

	return r
}

// NewEmptyMockOrganizationReader creates a mock reader holding only a root
// node, for tests that build their own organization shape.
func NewEmptyMockOrganizationReader(rootID string) *MockOrganizationReader {
	return &MockOrganizationReader{
		rootID:     rootID,
		parents:    map[string]string{},
		names:      map[string]string{},
		accounts:   map[string][]model.Account{},
		childUnits: map[string][]string{},
		parentErrs: map[string]error{},
	}
}

// SetOrgUnit registers an organizational unit with its name and parent.
func (m *MockOrganizationReader) SetOrgUnit(ouID, name, parentID string) {
	m.names[ouID] = name
	m.parents[ouID] = parentID
	m.childUnits[parentID] = append(m.childUnits[parentID], ouID)
}

// SetAccount places an account under the given parent node.
func (m *MockOrganizationReader) SetAccount(account model.Account, parentID string) {
	m.accounts[parentID] = append(m.accounts[parentID], account)
	m.parents[account.ID] = parentID
}

// SetParent overrides the parent of a node. An empty parent simulates a
// broken chain (a parent entry the provider returned without an ID).
func (m *MockOrganizationReader) SetParent(childID, parentID string) {
	m.parents[childID] = parentID
}

// SetParentError makes GetParent fail for the given child, simulating a
// zero-or-multiple-parents data-integrity error.
func (m *MockOrganizationReader) SetParentError(childID string, err error) {
	m.parentErrs[childID] = err
}

// GetParent implements port.OrganizationReader with mock data.
func (m *MockOrganizationReader) GetParent(ctx context.Context, childID string) (string, error) {
	m.Calls.GetParent = append(m.Calls.GetParent, childID)

	if err, ok := m.parentErrs[childID]; ok {
		return "", err
	}
	if parentID, ok := m.parents[childID]; ok {
		return parentID, nil
	}

	// Unknown nodes hang off the root, which keeps ad-hoc queries against the
	// mock data source from erroring.
	return m.rootID, nil
}

// GetRoot implements port.OrganizationReader with mock data.
func (m *MockOrganizationReader) GetRoot(ctx context.Context) (string, error) {
	m.Calls.GetRoot++
	return m.rootID, nil
}

// DescribeOrgUnit implements port.OrganizationReader with mock data. Unknown
// units come back with an empty name, the same shape the real API produces
// for a unit that has none.
func (m *MockOrganizationReader) DescribeOrgUnit(ctx context.Context, ouID string) (model.OrgUnitSummary, error) {
	m.Calls.DescribeOrgUnit = append(m.Calls.DescribeOrgUnit, ouID)

	slog.DebugContext(ctx, "describing mock organizational unit", "ou_id", ouID)

	return model.OrgUnitSummary{
		ID:   ouID,
		Name: m.names[ouID],
	}, nil
}

// ListAccounts implements port.OrganizationReader with mock data.
func (m *MockOrganizationReader) ListAccounts(ctx context.Context, parentID string) ([]model.Account, error) {
	m.Calls.ListAccounts = append(m.Calls.ListAccounts, parentID)
	return append([]model.Account{}, m.accounts[parentID]...), nil
}

// ListChildUnits implements port.OrganizationReader with mock data.
func (m *MockOrganizationReader) ListChildUnits(ctx context.Context, parentID string) ([]string, error) {
	m.Calls.ListChildUnits = append(m.Calls.ListChildUnits, parentID)
	return append([]string{}, m.childUnits[parentID]...), nil
}

// IsReady implements port.OrganizationReader; the mock is always ready.
func (m *MockOrganizationReader) IsReady(ctx context.Context) error {
	return nil
}

var _ port.OrganizationReader = (*MockOrganizationReader)(nil)
