// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
)

func TestParseConfig(t *testing.T) {
	require := require.New(t)

	admin := ids.GenerateTestShortID()
	oracle := ids.GenerateTestShortID()
	cfg, err := ParseConfig([]byte(fmt.Sprintf(
		`{"admin":%q,"oracleVerifier":%q,"cacheSize":16,"shutdownTimeout":1000000000}`,
		admin, oracle,
	)))
	require.NoError(err)
	require.Equal(admin, cfg.Admin)
	require.Equal(oracle, cfg.OracleVerifier)
	require.Equal(16, cfg.CacheSize)
	require.Equal(time.Second, cfg.ShutdownTimeout)
	require.Equal(DefaultConfig().MaxOracles, cfg.MaxOracles)
	require.NoError(cfg.Validate())

	_, err = ParseConfig([]byte(`{"admin":`))
	require.Error(err)

	cfg, err = ParseConfig(nil)
	require.NoError(err)
	require.Equal(DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	admin := ids.GenerateTestShortID()
	tests := []struct {
		name        string
		modify      func(*Config)
		expectedErr error
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:        "missing admin",
			modify:      func(c *Config) { c.Admin = ids.ShortEmpty },
			expectedErr: ErrMissingAdmin,
		},
		{
			name:        "zero cache",
			modify:      func(c *Config) { c.CacheSize = 0 },
			expectedErr: ErrInvalidCacheSize,
		},
		{
			name:        "zero oracles",
			modify:      func(c *Config) { c.MaxOracles = 0 },
			expectedErr: ErrInvalidMaxOracles,
		},
		{
			name:   "oracles at limit",
			modify: func(c *Config) { c.MaxOracles = MaxOraclesLimit },
		},
		{
			name:        "oracles above limit",
			modify:      func(c *Config) { c.MaxOracles = MaxOraclesLimit + 1 },
			expectedErr: ErrInvalidMaxOracles,
		},
		{
			name:        "zero shutdown timeout",
			modify:      func(c *Config) { c.ShutdownTimeout = 0 },
			expectedErr: ErrInvalidTimeout,
		},
		{
			name:        "admin is oracle",
			modify:      func(c *Config) { c.OracleVerifier = admin },
			expectedErr: ErrRoleCollision,
		},
		{
			name: "tracker is release authority",
			modify: func(c *Config) {
				id := ids.GenerateTestShortID()
				c.MilestoneTracker = id
				c.ReleaseAuthority = id
			},
			expectedErr: ErrRoleCollision,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Admin = admin
			test.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), test.expectedErr)
		})
	}
}
