// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package awsorg

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/errors"
)

// ClientProvider supplies an Organizations client whenever the reader needs to
// issue a remote call. Implementations decide how the client is constructed or
// refreshed (static handle, ambient credentials, role assumption), which keeps
// the reader decoupled from credential management.
type ClientProvider interface {
	// GetClient returns a configured Organizations client
	GetClient(ctx context.Context) (API, error)
}

// StaticClientProvider wraps a pre-constructed Organizations client.
type StaticClientProvider struct {
	client API
}

// GetClient returns the wrapped client.
func (p *StaticClientProvider) GetClient(ctx context.Context) (API, error) {
	return p.client, nil
}

// NewStaticClientProvider creates a provider around an existing client.
func NewStaticClientProvider(client API) (*StaticClientProvider, error) {
	if client == nil {
		return nil, errors.NewValidation("an organizations client must be provided")
	}
	return &StaticClientProvider{client: client}, nil
}

// DefaultClientProvider builds one Organizations client from the ambient AWS
// configuration on first use and reuses it afterwards.
type DefaultClientProvider struct {
	region string

	once   sync.Once
	client API
	err    error
}

// GetClient returns the lazily constructed client.
func (p *DefaultClientProvider) GetClient(ctx context.Context) (API, error) {
	p.once.Do(func() {
		opts := []func(*config.LoadOptions) error{}
		if p.region != "" {
			opts = append(opts, config.WithRegion(p.region))
		}

		cfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load AWS configuration", "error", err)
			p.err = errors.NewUnexpected("failed to load AWS configuration", err)
			return
		}

		p.client = organizations.NewFromConfig(cfg)
	})

	return p.client, p.err
}

// NewDefaultClientProvider creates a provider backed by the ambient AWS
// configuration (environment, shared config files, instance metadata).
func NewDefaultClientProvider(region string) *DefaultClientProvider {
	return &DefaultClientProvider{region: region}
}

// AssumeRoleClientProvider builds an Organizations client whose credentials
// come from assuming the configured role via STS. The credentials cache
// refreshes the session transparently underneath the reader.
type AssumeRoleClientProvider struct {
	region  string
	roleARN string

	once   sync.Once
	client API
	err    error
}

// GetClient returns the lazily constructed role-assuming client.
func (p *AssumeRoleClientProvider) GetClient(ctx context.Context) (API, error) {
	p.once.Do(func() {
		opts := []func(*config.LoadOptions) error{}
		if p.region != "" {
			opts = append(opts, config.WithRegion(p.region))
		}

		cfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load AWS configuration", "error", err)
			p.err = errors.NewUnexpected("failed to load AWS configuration", err)
			return
		}

		stsClient := sts.NewFromConfig(cfg)
		cfg.Credentials = aws.NewCredentialsCache(stscreds.NewAssumeRoleProvider(stsClient, p.roleARN))

		slog.InfoContext(ctx, "assuming role for organizations access",
			"role_arn", p.roleARN,
		)

		p.client = organizations.NewFromConfig(cfg)
	})

	return p.client, p.err
}

// NewAssumeRoleClientProvider creates a provider that assumes the given role
// for all Organizations calls.
func NewAssumeRoleClientProvider(region, roleARN string) (*AssumeRoleClientProvider, error) {
	if roleARN == "" {
		return nil, errors.NewValidation("a role ARN must be provided")
	}
	return &AssumeRoleClientProvider{region: region, roleARN: roleARN}, nil
}
