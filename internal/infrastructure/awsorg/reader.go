// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package awsorg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/errors"
)

// rootCacheKey is the single key of the root cache; an organization has
// exactly one root for the lifetime of the reader.
const rootCacheKey = "id"

// CachedReader implements port.OrganizationReader against the AWS
// Organizations API. Every operation has its own TTL+size-bounded LRU cache
// so eviction pressure from one operation cannot displace another, and
// multi-page results are exhausted into single slices before caching.
//
// Provider and transport errors are surfaced verbatim: resiliency policy
// (retry, backoff) belongs to the SDK layers underneath the ClientProvider.
type CachedReader struct {
	provider ClientProvider
	config   Config

	parentCache     *expirable.LRU[string, string]
	rootCache       *expirable.LRU[string, string]
	describeCache   *expirable.LRU[string, model.OrgUnitSummary]
	accountsCache   *expirable.LRU[string, []model.Account]
	childUnitsCache *expirable.LRU[string, []string]
}

// GetParent returns the single parent node ID of the given child. It fails
// with errors.ParentResolution when the API reports zero or more than one
// parent: a well-formed organization gives every non-root node exactly one.
func (r *CachedReader) GetParent(ctx context.Context, childID string) (string, error) {
	if parentID, ok := r.parentCache.Get(childID); ok {
		return parentID, nil
	}

	client, err := r.provider.GetClient(ctx)
	if err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "resolving parent via organizations API",
		"child_id", childID,
	)

	out, err := client.ListParents(ctx, &organizations.ListParentsInput{
		ChildId: aws.String(childID),
	})
	if err != nil {
		return "", err
	}

	if len(out.Parents) != 1 {
		return "", errors.NewParentResolution(
			fmt.Sprintf("expected exactly one parent for %s, got %d", childID, len(out.Parents)),
		)
	}

	// A parent entry without an ID marks a broken chain; cached as-is so the
	// caller's soft stop is cheap on repeat queries.
	parentID := aws.ToString(out.Parents[0].Id)
	r.parentCache.Add(childID, parentID)

	return parentID, nil
}

// GetRoot returns the organization's root node ID.
func (r *CachedReader) GetRoot(ctx context.Context) (string, error) {
	if rootID, ok := r.rootCache.Get(rootCacheKey); ok {
		return rootID, nil
	}

	client, err := r.provider.GetClient(ctx)
	if err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "resolving organization root via organizations API")

	out, err := client.ListRoots(ctx, &organizations.ListRootsInput{})
	if err != nil {
		return "", err
	}

	if len(out.Roots) != 1 {
		return "", errors.NewUnexpected(
			fmt.Sprintf("expected exactly one organization root, got %d", len(out.Roots)),
		)
	}

	rootID := aws.ToString(out.Roots[0].Id)
	r.rootCache.Add(rootCacheKey, rootID)

	return rootID, nil
}

// DescribeOrgUnit returns descriptive metadata for an organizational unit.
func (r *CachedReader) DescribeOrgUnit(ctx context.Context, ouID string) (model.OrgUnitSummary, error) {
	if summary, ok := r.describeCache.Get(ouID); ok {
		return summary, nil
	}

	client, err := r.provider.GetClient(ctx)
	if err != nil {
		return model.OrgUnitSummary{}, err
	}

	slog.DebugContext(ctx, "describing organizational unit via organizations API",
		"ou_id", ouID,
	)

	out, err := client.DescribeOrganizationalUnit(ctx, &organizations.DescribeOrganizationalUnitInput{
		OrganizationalUnitId: aws.String(ouID),
	})
	if err != nil {
		return model.OrgUnitSummary{}, err
	}

	if out.OrganizationalUnit == nil {
		return model.OrgUnitSummary{}, errors.NewNotFound(
			fmt.Sprintf("organizational unit %s not found", ouID),
		)
	}

	summary := model.OrgUnitSummary{
		ID:   aws.ToString(out.OrganizationalUnit.Id),
		Arn:  aws.ToString(out.OrganizationalUnit.Arn),
		Name: aws.ToString(out.OrganizationalUnit.Name),
	}
	r.describeCache.Add(ouID, summary)

	return summary, nil
}

// ListAccounts returns all accounts directly under the given parent node,
// exhausting every result page.
func (r *CachedReader) ListAccounts(ctx context.Context, parentID string) ([]model.Account, error) {
	if accounts, ok := r.accountsCache.Get(parentID); ok {
		return accounts, nil
	}

	client, err := r.provider.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "listing accounts via organizations API",
		"parent_id", parentID,
	)

	accounts := []model.Account{}
	paginator := organizations.NewListAccountsForParentPaginator(client, &organizations.ListAccountsForParentInput{
		ParentId: aws.String(parentID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, account := range page.Accounts {
			accounts = append(accounts, model.Account{
				ID:              aws.ToString(account.Id),
				Arn:             aws.ToString(account.Arn),
				Name:            aws.ToString(account.Name),
				Email:           aws.ToString(account.Email),
				Status:          string(account.Status),
				JoinedMethod:    string(account.JoinedMethod),
				JoinedTimestamp: account.JoinedTimestamp,
			})
		}
	}

	r.accountsCache.Add(parentID, accounts)

	return accounts, nil
}

// ListChildUnits returns the node IDs of all organizational units directly
// under the given parent node, exhausting every result page.
func (r *CachedReader) ListChildUnits(ctx context.Context, parentID string) ([]string, error) {
	if childIDs, ok := r.childUnitsCache.Get(parentID); ok {
		return childIDs, nil
	}

	client, err := r.provider.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "listing child organizational units via organizations API",
		"parent_id", parentID,
	)

	childIDs := []string{}
	paginator := organizations.NewListOrganizationalUnitsForParentPaginator(client, &organizations.ListOrganizationalUnitsForParentInput{
		ParentId: aws.String(parentID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, unit := range page.OrganizationalUnits {
			// Cache the description while we have it; the hierarchy assembly
			// asks for every child's name right after listing.
			summary := model.OrgUnitSummary{
				ID:   aws.ToString(unit.Id),
				Arn:  aws.ToString(unit.Arn),
				Name: aws.ToString(unit.Name),
			}
			r.describeCache.Add(summary.ID, summary)
			childIDs = append(childIDs, summary.ID)
		}
	}

	r.childUnitsCache.Add(parentID, childIDs)

	return childIDs, nil
}

// IsReady checks if the organizations API is reachable
func (r *CachedReader) IsReady(ctx context.Context) error {
	if _, err := r.GetRoot(ctx); err != nil {
		return errors.NewServiceUnavailable("organizations API is not reachable", err)
	}
	return nil
}

// NewCachedReader creates an organization reader backed by the AWS
// Organizations API with per-operation caching.
func NewCachedReader(provider ClientProvider, config Config) (port.OrganizationReader, error) {
	if provider == nil {
		return nil, errors.NewValidation("a client provider must be provided")
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaultCacheTTL
	}
	if config.CacheMaxSize <= 0 {
		config.CacheMaxSize = defaultCacheMaxSize
	}

	return &CachedReader{
		provider:        provider,
		config:          config,
		parentCache:     expirable.NewLRU[string, string](config.CacheMaxSize, nil, config.CacheTTL),
		rootCache:       expirable.NewLRU[string, string](1, nil, config.CacheTTL),
		describeCache:   expirable.NewLRU[string, model.OrgUnitSummary](config.CacheMaxSize, nil, config.CacheTTL),
		accountsCache:   expirable.NewLRU[string, []model.Account](config.CacheMaxSize, nil, config.CacheTTL),
		childUnitsCache: expirable.NewLRU[string, []string](config.CacheMaxSize, nil, config.CacheTTL),
	}, nil
}
