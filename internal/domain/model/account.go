// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// Account represents an AWS account as returned by the Organizations API.
// The metadata is carried verbatim and not interpreted by this service.
type Account struct {
	// Account ID (12-digit)
	ID string `json:"id"`
	// Account ARN
	Arn string `json:"arn,omitempty"`
	// Account display name
	Name string `json:"name,omitempty"`
	// Email address associated with the account
	Email string `json:"email,omitempty"`
	// Account status (ACTIVE, SUSPENDED, PENDING_CLOSURE)
	Status string `json:"status,omitempty"`
	// How the account joined the organization (INVITED, CREATED)
	JoinedMethod string `json:"joined_method,omitempty"`
	// When the account joined the organization
	JoinedTimestamp *time.Time `json:"joined_timestamp,omitempty"`
}

// OrgUnitSummary is the descriptive metadata of a root or organizational unit.
type OrgUnitSummary struct {
	// Node ID
	ID string `json:"id"`
	// Node ARN
	Arn string `json:"arn,omitempty"`
	// Node display name
	Name string `json:"name"`
}
