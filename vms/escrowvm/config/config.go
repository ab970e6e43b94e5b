// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines configuration types for the escrow VM.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/ids"
)

// MaxOraclesLimit caps the oracle roster of a single project.
const MaxOraclesLimit = 10

var (
	ErrMissingAdmin      = errors.New("admin identity is required")
	ErrInvalidCacheSize  = errors.New("invalid cache size")
	ErrInvalidMaxOracles = errors.New("invalid max oracles")
	ErrInvalidTimeout    = errors.New("invalid shutdown timeout")
	ErrRoleCollision     = errors.New("identity bound to more than one role")
)

// Config contains configuration parameters for the escrow VM.
type Config struct {
	// Admin initializes projects and binds roles in every component. It is
	// persisted on first start and cannot be changed afterwards.
	Admin ids.ShortID `json:"admin"`

	// Identities bound at bootstrap. Unset identities can be bound later by
	// the admin.

	// FundingPool is the pool's identity as known to the releaser.
	FundingPool ids.ShortID `json:"fundingPool"`
	// MilestoneTracker is the tracker's identity; certifications are handed
	// to the releaser under it.
	MilestoneTracker ids.ShortID `json:"milestoneTracker"`
	// ReleaseAuthority approves milestones in the tracker and withdraws from
	// the pool. Composite settlements run under it.
	ReleaseAuthority ids.ShortID `json:"releaseAuthority"`
	// OracleVerifier attests submitted milestones.
	OracleVerifier ids.ShortID `json:"oracleVerifier"`

	// Storage configuration
	CacheSize  int `json:"cacheSize"`
	MaxOracles int `json:"maxOracles"`

	// API configuration
	HTTPHost        string        `json:"httpHost"`
	HTTPPort        uint16        `json:"httpPort"`
	AllowedOrigins  []string      `json:"allowedOrigins"`
	AllowedHosts    []string      `json:"allowedHosts"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
	ReadTimeout     time.Duration `json:"readTimeout"`
	WriteTimeout    time.Duration `json:"writeTimeout"`

	TracingEnabled bool `json:"tracingEnabled"`
}

// DefaultConfig returns the default configuration for the escrow VM.
func DefaultConfig() Config {
	return Config{
		CacheSize:       2048,
		MaxOracles:      MaxOraclesLimit,
		HTTPHost:        "127.0.0.1",
		HTTPPort:        9650,
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		ShutdownTimeout: 10 * time.Second,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Admin == ids.ShortEmpty {
		return ErrMissingAdmin
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, c.CacheSize)
	}
	if c.MaxOracles <= 0 || c.MaxOracles > MaxOraclesLimit {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidMaxOracles, c.MaxOracles, MaxOraclesLimit)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.ShutdownTimeout)
	}

	// Every role is held by a distinct identity.
	seen := map[ids.ShortID]string{c.Admin: "admin"}
	for name, id := range map[string]ids.ShortID{
		"fundingPool":      c.FundingPool,
		"milestoneTracker": c.MilestoneTracker,
		"releaseAuthority": c.ReleaseAuthority,
		"oracleVerifier":   c.OracleVerifier,
	} {
		if id == ids.ShortEmpty {
			continue
		}
		if other, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s and %s", ErrRoleCollision, other, name)
		}
		seen[id] = name
	}
	return nil
}

// ParseConfig parses configuration from JSON bytes on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
