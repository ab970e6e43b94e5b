// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/config"
)

func TestVMCheck(t *testing.T) {
	require := require.New(t)

	cfg := config.DefaultConfig()
	cfg.Admin = ids.GenerateTestShortID()
	vm, err := escrowvm.NewFactory(cfg).New(log.NewNoOpLogger())
	require.NoError(err)

	check := vmCheck(vm)
	_, err = check.HealthCheck(t.Context())
	require.ErrorIs(err, escrowvm.ErrNotInitialized)

	require.NoError(vm.Initialize(t.Context(), memdb.New(), nil, prometheus.NewRegistry()))
	_, err = check.HealthCheck(t.Context())
	require.ErrorIs(err, errNotReady)

	require.NoError(vm.SetState(t.Context(), escrowvm.NormalOp))
	_, err = check.HealthCheck(t.Context())
	require.NoError(err)

	require.NoError(vm.Shutdown(t.Context()))
}
