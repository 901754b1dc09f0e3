// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// MaxHierarchyDepth bounds upward ancestry walks. AWS Organizations
	// supports at most 5 nested OU levels plus the root.
	MaxHierarchyDepth = 6

	// OrganizationRootLabel is the display name used for organization roots,
	// which have no describable name of their own.
	OrganizationRootLabel = "Organization Root"

	// RootIDPrefix is the lexical prefix of organization root IDs.
	RootIDPrefix = "r-"
	// OrgUnitIDPrefix is the lexical prefix of organizational unit IDs.
	OrgUnitIDPrefix = "ou-"
)

const (
	// AccountMembershipSubject is the NATS subject for account membership queries
	AccountMembershipSubject = "dev.lfx.aws_org.account_membership.request"
	// OrgHierarchySubject is the NATS subject for OU hierarchy queries
	OrgHierarchySubject = "dev.lfx.aws_org.org_hierarchy.request"
	// QueryQueue is the NATS queue group shared by service replicas
	QueryQueue = "lfx-v2-aws-org-service"
)
