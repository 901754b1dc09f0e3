// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package awsorg

import (
	"fmt"
	"time"
)

const (
	defaultCacheTTL     = time.Hour
	defaultCacheMaxSize = 512
)

// Config holds the configuration for the AWS Organizations reader
type Config struct {
	// Region is the AWS region used when loading the ambient configuration
	Region string

	// AssumeRoleARN, when set, makes the reader assume this role for all
	// Organizations calls (for cross-account management access)
	AssumeRoleARN string

	// CacheTTL is how long cached hierarchy lookups stay valid
	CacheTTL time.Duration

	// CacheMaxSize is the maximum entry count per operation cache before
	// least-recently-used eviction
	CacheMaxSize int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		CacheTTL:     defaultCacheTTL,
		CacheMaxSize: defaultCacheMaxSize,
	}
}

// NewConfig creates a new reader configuration with the provided parameters
func NewConfig(region, assumeRoleARN, cacheTTL string, cacheMaxSize int) (Config, error) {
	if cacheTTL == "" {
		cacheTTL = "1h"
	}
	ttl, err := time.ParseDuration(cacheTTL)
	if err != nil {
		return Config{}, fmt.Errorf("invalid cache TTL duration: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("cache TTL must be positive, got %s", ttl)
	}

	if cacheMaxSize <= 0 {
		cacheMaxSize = defaultCacheMaxSize
	}

	return Config{
		Region:        region,
		AssumeRoleARN: assumeRoleARN,
		CacheTTL:      ttl,
		CacheMaxSize:  cacheMaxSize,
	}, nil
}
