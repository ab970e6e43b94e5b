// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package escrowvm

import (
	"github.com/luxfi/log"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/config"
)

// Factory creates escrow VM instances.
type Factory struct {
	config.Config
}

// New creates a new, uninitialized escrow VM. Unset tunables take their
// default values; the factory's own configuration is left untouched.
func (f *Factory) New(logger log.Logger) (*VM, error) {
	return &VM{
		Config: withDefaults(f.Config),
		log:    logger,
	}, nil
}

func withDefaults(cfg config.Config) config.Config {
	defaults := config.DefaultConfig()
	if cfg.CacheSize == 0 {
		cfg.CacheSize = defaults.CacheSize
	}
	if cfg.MaxOracles == 0 {
		cfg.MaxOracles = defaults.MaxOracles
	}
	if cfg.HTTPHost == "" {
		cfg.HTTPHost = defaults.HTTPHost
	}
	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = defaults.HTTPPort
	}
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = defaults.AllowedOrigins
	}
	if cfg.AllowedHosts == nil {
		cfg.AllowedHosts = defaults.AllowedHosts
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	return cfg
}

// NewFactory creates a new escrow VM factory with the given configuration.
func NewFactory(cfg config.Config) *Factory {
	return &Factory{Config: cfg}
}

// NewDefaultFactory creates a new escrow VM factory with default configuration.
func NewDefaultFactory() *Factory {
	return &Factory{Config: config.DefaultConfig()}
}
