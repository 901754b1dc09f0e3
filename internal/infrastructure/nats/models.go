// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"time"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/model"
)

// Config represents NATS configuration
type Config struct {
	// URL is the NATS server URL
	URL string `json:"url"`
	// Timeout is the request timeout duration
	Timeout time.Duration `json:"timeout"`
	// MaxReconnect is the maximum number of reconnection attempts
	MaxReconnect int `json:"max_reconnect"`
	// ReconnectWait is the time to wait between reconnection attempts
	ReconnectWait time.Duration `json:"reconnect_wait"`
}

// AccountMembershipRequest is the payload of an account membership query
type AccountMembershipRequest struct {
	// AccountID is the account whose ancestry is checked
	AccountID string `json:"account_id"`
	// Haystack is the set of node IDs tested for membership
	Haystack []string `json:"haystack"`
	// RequireDirectDescendant restricts the check to the immediate parent
	RequireDirectDescendant bool `json:"require_direct_descendant,omitempty"`
}

// AccountMembershipResponse is the reply to an account membership query
type AccountMembershipResponse struct {
	AccountID string `json:"account_id,omitempty"`
	Found     bool   `json:"found"`
	Error     string `json:"error,omitempty"`
}

// OrgHierarchyRequest is the payload of an OU hierarchy query
type OrgHierarchyRequest struct {
	// ParentID is the node the hierarchy is built from; empty means the root
	ParentID string `json:"parent_id,omitempty"`
	// DirectDescendantsOnly limits the tree to one level
	DirectDescendantsOnly bool `json:"direct_descendants_only,omitempty"`
}

// OrgHierarchyResponse is the reply to an OU hierarchy query
type OrgHierarchyResponse struct {
	Hierarchy *model.Hierarchy `json:"hierarchy,omitempty"`
	Error     string           `json:"error,omitempty"`
}
