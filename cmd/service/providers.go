// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/infrastructure/awsorg"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/infrastructure/nats"
)

// OrganizationReaderImpl injects the organization reader implementation
func OrganizationReaderImpl(ctx context.Context) port.OrganizationReader {

	// Hierarchy source implementation configuration
	orgDataSource := os.Getenv("ORG_DATA_SOURCE")
	if orgDataSource == "" {
		orgDataSource = "aws"
	}

	switch orgDataSource {
	case "mock":
		slog.InfoContext(ctx, "initializing mock organization reader")
		return mock.NewMockOrganizationReader()

	case "aws":
		region := os.Getenv("AWS_REGION")
		assumeRoleARN := os.Getenv("AWS_ORG_ASSUME_ROLE_ARN")
		cacheTTL := os.Getenv("AWS_ORG_CACHE_TTL")

		cacheMaxSize := 0
		if raw := os.Getenv("AWS_ORG_CACHE_MAXSIZE"); raw != "" {
			var err error
			cacheMaxSize, err = strconv.Atoi(raw)
			if err != nil {
				log.Fatalf("invalid cache max size value %s: %v", raw, err)
			}
		}

		config, err := awsorg.NewConfig(region, assumeRoleARN, cacheTTL, cacheMaxSize)
		if err != nil {
			log.Fatalf("failed to create AWS organizations configuration: %v", err)
		}

		var provider awsorg.ClientProvider
		if config.AssumeRoleARN != "" {
			provider, err = awsorg.NewAssumeRoleClientProvider(config.Region, config.AssumeRoleARN)
			if err != nil {
				log.Fatalf("failed to create assume-role client provider: %v", err)
			}
		} else {
			provider = awsorg.NewDefaultClientProvider(config.Region)
		}

		slog.InfoContext(ctx, "initializing AWS organizations reader",
			"region", config.Region,
			"assume_role", config.AssumeRoleARN != "",
			"cache_ttl", config.CacheTTL,
			"cache_maxsize", config.CacheMaxSize,
		)

		reader, err := awsorg.NewCachedReader(provider, config)
		if err != nil {
			log.Fatalf("failed to initialize AWS organizations reader: %v", err)
		}
		return reader

	default:
		log.Fatalf("unsupported organization data source: %s", orgDataSource)
		return nil
	}
}

// AuthServiceImpl injects the authentication implementation
func AuthServiceImpl(ctx context.Context) port.Authenticator {

	// Local development can bypass JWT validation with a mock principal.
	if os.Getenv("JWT_AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL") != "" {
		slog.InfoContext(ctx, "initializing mock authentication service")
		return mock.NewMockAuthService()
	}

	slog.InfoContext(ctx, "initializing JWT authentication service")
	jwtAuth, err := auth.NewJWTAuth(auth.JWTAuthConfig{
		JWKSURL:  os.Getenv("JWKS_URL"),
		Audience: os.Getenv("JWT_AUDIENCE"),
	})
	if err != nil {
		log.Fatalf("failed to initialize JWT authentication: %v", err)
	}

	return jwtAuth
}

// NATSConfigImpl builds the NATS configuration from the environment. An empty
// URL means the NATS responder is disabled.
func NATSConfigImpl(ctx context.Context) *nats.Config {

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		slog.InfoContext(ctx, "NATS_URL not set, NATS query responder disabled")
		return nil
	}

	natsTimeout := os.Getenv("NATS_TIMEOUT")
	if natsTimeout == "" {
		natsTimeout = "10s"
	}
	natsTimeoutDuration, err := time.ParseDuration(natsTimeout)
	if err != nil {
		log.Fatalf("invalid NATS timeout duration: %v", err)
	}

	natsMaxReconnect := os.Getenv("NATS_MAX_RECONNECT")
	if natsMaxReconnect == "" {
		natsMaxReconnect = "3"
	}
	natsMaxReconnectInt, err := strconv.Atoi(natsMaxReconnect)
	if err != nil {
		log.Fatalf("invalid NATS max reconnect value %s: %v", natsMaxReconnect, err)
	}

	natsReconnectWait := os.Getenv("NATS_RECONNECT_WAIT")
	if natsReconnectWait == "" {
		natsReconnectWait = "2s"
	}
	natsReconnectWaitDuration, err := time.ParseDuration(natsReconnectWait)
	if err != nil {
		log.Fatalf("invalid NATS reconnect wait duration %s : %v", natsReconnectWait, err)
	}

	return &nats.Config{
		URL:           natsURL,
		Timeout:       natsTimeoutDuration,
		MaxReconnect:  natsMaxReconnectInt,
		ReconnectWait: natsReconnectWaitDuration,
	}
}
