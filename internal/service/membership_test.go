// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestAccountMembershipAccountInHaystack(t *testing.T) {
	tests := []struct {
		name                    string
		accountID               string
		haystack                []string
		requireDirectDescendant bool
		setupMock               func(*mock.MockOrganizationReader)
		expectedFound           bool
		expectedError           bool
		expectedErrorType       interface{}
		expectedParentCalls     int
	}{
		{
			name:                "account itself in haystack needs no provider calls",
			accountID:           "111111111111",
			haystack:            []string{"111111111111"},
			expectedFound:       true,
			expectedParentCalls: 0,
		},
		{
			name:                "direct parent match after one walk step",
			accountID:           "111111111111",
			haystack:            []string{"ou-sandbox"},
			expectedFound:       true,
			expectedParentCalls: 1,
		},
		{
			name:                "grandparent match after two walk steps",
			accountID:           "222222222222",
			haystack:            []string{"ou-sandbox"},
			expectedFound:       true,
			expectedParentCalls: 2,
		},
		{
			name:                "root match walks the full chain",
			accountID:           "111111111111",
			haystack:            []string{"r-root"},
			expectedFound:       true,
			expectedParentCalls: 2,
		},
		{
			name:                "no match stops at the root",
			accountID:           "111111111111",
			haystack:            []string{"ou-workloads"},
			expectedFound:       false,
			expectedParentCalls: 2,
		},
		{
			name:                "haystack with multiple node IDs matches any of them",
			accountID:           "222222222222",
			haystack:            []string{"ou-workloads", "ou-sandbox-dev"},
			expectedFound:       true,
			expectedParentCalls: 1,
		},
		{
			name:                    "direct descendant mode accepts the immediate parent",
			accountID:               "222222222222",
			haystack:                []string{"ou-sandbox-dev"},
			requireDirectDescendant: true,
			expectedFound:           true,
			expectedParentCalls:     1,
		},
		{
			name:                    "direct descendant mode rejects a grandparent",
			accountID:               "222222222222",
			haystack:                []string{"ou-sandbox"},
			requireDirectDescendant: true,
			expectedFound:           false,
			expectedParentCalls:     1,
		},
		{
			name:                "empty haystack is false without provider calls",
			accountID:           "111111111111",
			haystack:            []string{},
			expectedFound:       false,
			expectedParentCalls: 0,
		},
		{
			name:              "empty account ID is a validation error",
			accountID:         "",
			haystack:          []string{"ou-sandbox"},
			expectedError:     true,
			expectedErrorType: errors.Validation{},
		},
		{
			name:      "parent resolution error propagates",
			accountID: "111111111111",
			haystack:  []string{"ou-workloads"},
			setupMock: func(reader *mock.MockOrganizationReader) {
				reader.SetParentError("111111111111", errors.NewParentResolution("expected exactly one parent for 111111111111, got 2"))
			},
			expectedError:       true,
			expectedErrorType:   errors.ParentResolution{},
			expectedParentCalls: 1,
		},
		{
			name:      "broken parent chain is false rather than an error",
			accountID: "111111111111",
			haystack:  []string{"ou-workloads"},
			setupMock: func(reader *mock.MockOrganizationReader) {
				reader.SetParent("111111111111", "")
			},
			expectedFound:       false,
			expectedParentCalls: 1,
		},
		{
			name:      "deep chain stops at the depth bound",
			accountID: "555555555555",
			haystack:  []string{"never-there"},
			setupMock: func(reader *mock.MockOrganizationReader) {
				// Chain deeper than AWS allows, and no root to stop at.
				reader.SetParent("555555555555", "ou-l1")
				reader.SetParent("ou-l1", "ou-l2")
				reader.SetParent("ou-l2", "ou-l3")
				reader.SetParent("ou-l3", "ou-l4")
				reader.SetParent("ou-l4", "ou-l5")
				reader.SetParent("ou-l5", "ou-l6")
				reader.SetParent("ou-l6", "ou-l7")
			},
			expectedFound:       false,
			expectedParentCalls: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := mock.NewMockOrganizationReader()
			if tt.setupMock != nil {
				tt.setupMock(reader)
			}
			membership := NewAccountMembership(reader)

			found, err := membership.AccountInHaystack(context.Background(), tt.accountID, tt.haystack, tt.requireDirectDescendant)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.expectedErrorType != nil {
					assert.IsType(t, tt.expectedErrorType, err)
				}
				assert.False(t, found)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedFound, found)
			}
			assert.Len(t, reader.Calls.GetParent, tt.expectedParentCalls)
		})
	}
}

func TestAccountMembershipReusesReaderAcrossQueries(t *testing.T) {
	reader := mock.NewMockOrganizationReader()
	membership := NewAccountMembership(reader)
	ctx := context.Background()

	found, err := membership.AccountInHaystack(ctx, "111111111111", []string{"ou-sandbox"}, false)
	assert.NoError(t, err)
	assert.True(t, found)

	found, err = membership.AccountInHaystack(ctx, "111111111111", []string{"r-root"}, false)
	assert.NoError(t, err)
	assert.True(t, found)

	// The second query walks the same chain; the mock reader is not cached, so
	// every step shows up in the call log.
	assert.Equal(t, []string{"111111111111", "111111111111", "ou-sandbox"}, reader.Calls.GetParent)
}

func TestAccountMembershipIsReady(t *testing.T) {
	membership := NewAccountMembership(mock.NewMockOrganizationReader())
	assert.NoError(t, membership.IsReady(context.Background()))
}
