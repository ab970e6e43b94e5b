// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/config"
)

const (
	ConfigFileKey      = "config-file"
	DataDirKey         = "data-dir"
	HTTPHostKey        = "http-host"
	HTTPPortKey        = "http-port"
	TracingEndpointKey = "tracing-endpoint"

	defaultTracingEndpoint = "localhost:4317"
)

func AddFlags(flags *pflag.FlagSet) {
	defaults := config.DefaultConfig()
	flags.String(ConfigFileKey, "", "JSON configuration file (admin and role identities are required)")
	flags.String(DataDirKey, "", "Directory of the persistent database. State is kept in memory if empty")
	flags.String(HTTPHostKey, defaults.HTTPHost, "Address the API server listens on")
	flags.Uint16(HTTPPortKey, defaults.HTTPPort, "Port the API server listens on")
	flags.String(TracingEndpointKey, defaultTracingEndpoint, "OTLP gRPC collector endpoint, used when tracing is enabled")
}

type Config struct {
	VM              config.Config
	DataDir         string
	TracingEndpoint string
}

// ParseFlags loads the configuration file and applies explicitly set flags
// on top of it.
func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	configFile, err := flags.GetString(ConfigFileKey)
	if err != nil {
		return nil, err
	}
	var configBytes []byte
	if configFile != "" {
		configBytes, err = os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	vmConfig, err := config.ParseConfig(configBytes)
	if err != nil {
		return nil, err
	}

	if flags.Changed(HTTPHostKey) {
		vmConfig.HTTPHost, err = flags.GetString(HTTPHostKey)
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed(HTTPPortKey) {
		vmConfig.HTTPPort, err = flags.GetUint16(HTTPPortKey)
		if err != nil {
			return nil, err
		}
	}
	if err := vmConfig.Validate(); err != nil {
		return nil, err
	}

	dataDir, err := flags.GetString(DataDirKey)
	if err != nil {
		return nil, err
	}
	tracingEndpoint, err := flags.GetString(TracingEndpointKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		VM:              vmConfig,
		DataDir:         dataDir,
		TracingEndpoint: tracingEndpoint,
	}, nil
}
