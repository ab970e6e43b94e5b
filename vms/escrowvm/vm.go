// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package escrowvm wires the funding pool, milestone tracker and fund
// releaser into a single serialized state machine with all-or-nothing
// operations.
package escrowvm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/log"

	utilmetric "github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/utils/metric"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/api"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/config"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/metrics"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/pool"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/releaser"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/state"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/tracker"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/txs"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/tracedvm"
)

const (
	Name    = "escrowvm"
	Version = "v1.0.0"
)

var (
	poolPrefix     = []byte("pool")
	trackerPrefix  = []byte("tracker")
	releaserPrefix = []byte("releaser")
	metadataPrefix = []byte("metadata")

	heightKey = []byte("height")

	ErrNotInitialized = errors.New("vm not initialized")
	ErrShutdown       = errors.New("vm is shut down")

	_ txs.Executor = (*VM)(nil)
	_ api.VM       = (*VM)(nil)
)

// State is the lifecycle phase of the VM.
type State uint8

const (
	Bootstrapping State = iota
	NormalOp
)

func (s State) String() string {
	if s == NormalOp {
		return "normal-op"
	}
	return "bootstrapping"
}

// VM implements the escrow state machine.
type VM struct {
	config.Config

	log        log.Logger
	registerer prometheus.Registerer
	metrics    metrics.Metrics

	// lock serializes every operation and read.
	lock     sync.Mutex
	db       *versiondb.Database
	metadata database.Database
	height   uint64
	state    State
	shutdown bool

	pool     *pool.Pool
	tracker  *tracker.Tracker
	releaser *releaser.Releaser

	handlers map[string]handler
	flows    []flow
}

// Initialize opens the component stores on db, applies the bootstrap role
// bindings on first start and restores the operation height.
func (vm *VM) Initialize(
	_ context.Context,
	db database.Database,
	configBytes []byte,
	registerer prometheus.Registerer,
) error {
	if len(configBytes) > 0 {
		cfg, err := config.ParseConfig(configBytes)
		if err != nil {
			return err
		}
		vm.Config = cfg
	}
	if err := vm.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	m, err := metrics.New(Name, registerer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	vm.metrics = m
	vm.registerer = registerer

	vm.db = versiondb.New(db)
	vm.metadata = prefixdb.New(metadataPrefix, vm.db)
	vm.pool = pool.New(prefixdb.New(poolPrefix, vm.db), vm.CacheSize, vm.log)
	vm.tracker = tracker.New(prefixdb.New(trackerPrefix, vm.db), vm.CacheSize, vm.MaxOracles, vm.log)
	vm.releaser = releaser.New(prefixdb.New(releaserPrefix, vm.db), vm.CacheSize, vm.log)

	vm.releaser.SetAttestor(vm.tracker)
	vm.tracker.SetSink(&certificationHandoff{
		releaser: vm.releaser,
		log:      vm.log,
	})
	vm.handlers = vm.newHandlers()

	if err := vm.bootstrap(); err != nil {
		vm.db.Abort()
		return fmt.Errorf("failed to bootstrap roles: %w", err)
	}
	if err := vm.db.Commit(); err != nil {
		return err
	}

	vm.height, err = state.GetUInt64(vm.metadata, heightKey)
	if err != nil {
		return err
	}
	vm.metrics.SetHeight(vm.height)

	vm.log.Info("escrow VM initialized",
		"version", Version,
		"height", vm.height,
		"admin", vm.Admin,
		"tracing", vm.TracingEnabled,
	)
	return nil
}

func (vm *VM) bootstrap() error {
	bootstrapped, err := vm.pool.Bootstrap(pool.Roles{
		Admin:        vm.Admin,
		FundReleaser: vm.ReleaseAuthority,
	})
	if err != nil {
		return err
	}
	if !bootstrapped {
		// Roles persist across restarts; the stored bindings win.
		vm.log.Debug("funding pool roles already bootstrapped")
	}
	if _, err := vm.tracker.Bootstrap(tracker.Roles{
		Admin:          vm.Admin,
		FundReleaser:   vm.ReleaseAuthority,
		OracleVerifier: vm.OracleVerifier,
	}); err != nil {
		return err
	}
	_, err = vm.releaser.Bootstrap(releaser.Roles{
		Admin:            vm.Admin,
		FundingPool:      vm.FundingPool,
		MilestoneTracker: vm.MilestoneTracker,
		OracleVerifier:   vm.OracleVerifier,
	})
	return err
}

// SetState moves the VM between lifecycle phases.
func (vm *VM) SetState(_ context.Context, s State) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	vm.log.Info("escrow VM state transition", "from", vm.state, "to", s)
	vm.state = s
	return nil
}

func (vm *VM) Shutdown(context.Context) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.db == nil || vm.shutdown {
		return nil
	}
	vm.shutdown = true
	vm.log.Info("shutting down escrow VM", "height", vm.height)
	return vm.db.Close()
}

func (*VM) Version(context.Context) (string, error) {
	return Version, nil
}

// HealthCheck reports the VM's lifecycle state and custody totals.
func (vm *VM) HealthCheck(context.Context) (any, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.db == nil {
		return nil, ErrNotInitialized
	}
	if vm.shutdown {
		return nil, ErrShutdown
	}
	custody, err := vm.pool.TotalCustody()
	if err != nil {
		return nil, err
	}
	locked, err := vm.pool.EmergencyLocked()
	if err != nil {
		return nil, err
	}
	paused, err := vm.releaser.Paused()
	if err != nil {
		return nil, err
	}
	return api.Health{
		Healthy:         vm.state == NormalOp,
		State:           vm.state.String(),
		Version:         Version,
		Height:          vm.height,
		TotalCustody:    custody,
		EmergencyLocked: locked,
		ReleasesPaused:  paused,
	}, nil
}

// CreateHandlers returns the JSON-RPC handler of the escrow service.
func (vm *VM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	var executor txs.Executor = vm
	if vm.TracingEnabled {
		executor = tracedvm.NewExecutor(executor, otel.Tracer(Name))
	}

	interceptor, err := utilmetric.NewAPIInterceptor(Name, vm.registerer)
	if err != nil {
		return nil, err
	}
	server, err := api.NewServer(executor, vm, interceptor, vm.log)
	if err != nil {
		return nil, err
	}
	return map[string]http.Handler{
		"": server,
	}, nil
}
