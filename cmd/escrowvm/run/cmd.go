// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/api/health"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/api/server"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/api"
)

const (
	metricsEndpoint = "metrics"
	healthEndpoint  = "health"
)

var errNotReady = errors.New("vm is not in normal operation")

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   escrowvm.Name,
		Short: "Runs the milestone escrow node",
		RunE:  runFunc,
	}
	AddFlags(c.Flags())
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	cfg, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	ctx := c.Context()
	logger := log.NewLogger(escrowvm.Name)

	registry := prometheus.NewRegistry()
	err = errors.Join(
		registry.Register(collectors.NewGoCollector()),
		registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})),
	)
	if err != nil {
		return err
	}

	var tracer oteltrace.Tracer
	if cfg.VM.TracingEnabled {
		shutdownTracing, err := initTracing(ctx, cfg.TracingEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("failed to flush traces", log.Err(err))
			}
		}()
		tracer = otel.Tracer(escrowvm.Name)
	}

	db, err := openDatabase(cfg.DataDir)
	if err != nil {
		return err
	}

	vm, err := escrowvm.NewFactory(cfg.VM).New(logger)
	if err != nil {
		return errors.Join(err, db.Close())
	}
	if err := vm.Initialize(ctx, db, nil, registry); err != nil {
		return errors.Join(err, db.Close())
	}

	err = serve(ctx, logger, cfg, vm, tracer, registry)
	return errors.Join(
		err,
		vm.Shutdown(context.WithoutCancel(ctx)),
		closeDatabase(db),
	)
}

// closeDatabase tolerates a database already closed through the VM.
func closeDatabase(db database.Database) error {
	if err := db.Close(); err != nil && !errors.Is(err, database.ErrClosed) {
		return err
	}
	return nil
}

func openDatabase(dir string) (database.Database, error) {
	if dir == "" {
		return memdb.New(), nil
	}
	db, err := badgerdb.New(dir, nil, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dir, err)
	}
	return db, nil
}

func serve(
	ctx context.Context,
	logger log.Logger,
	cfg *Config,
	vm *escrowvm.VM,
	tracer oteltrace.Tracer,
	registry *prometheus.Registry,
) error {
	if err := vm.SetState(ctx, escrowvm.NormalOp); err != nil {
		return err
	}
	handlers, err := vm.CreateHandlers(ctx)
	if err != nil {
		return err
	}

	address := net.JoinHostPort(cfg.VM.HTTPHost, strconv.Itoa(int(cfg.VM.HTTPPort)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	srv, err := server.New(
		logger,
		listener,
		cfg.VM.AllowedOrigins,
		cfg.VM.AllowedHosts,
		cfg.VM.ShutdownTimeout,
		tracer,
		registry,
		server.HTTPConfig{
			ReadTimeout:       cfg.VM.ReadTimeout,
			ReadHeaderTimeout: cfg.VM.ReadTimeout,
			WriteTimeout:      cfg.VM.WriteTimeout,
			IdleTimeout:       cfg.VM.ReadTimeout,
		},
	)
	if err != nil {
		return errors.Join(err, listener.Close())
	}

	for endpoint, handler := range handlers {
		if err := srv.AddRoute(handler, api.ServiceName, endpoint); err != nil {
			return errors.Join(err, listener.Close())
		}
	}
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	if err := srv.AddRoute(metricsHandler, metricsEndpoint, ""); err != nil {
		return errors.Join(err, listener.Close())
	}

	checks, err := health.New(logger, escrowvm.Name, registry)
	if err != nil {
		return errors.Join(err, listener.Close())
	}
	if err := checks.RegisterCheck(escrowvm.Name, vmCheck(vm)); err != nil {
		return errors.Join(err, listener.Close())
	}
	if err := srv.AddRoute(health.NewGetHandler(checks), healthEndpoint, ""); err != nil {
		return errors.Join(err, listener.Close())
	}

	logger.Info("serving escrow API",
		log.String("address", listener.Addr().String()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown()
	})
	return g.Wait()
}

// vmCheck fails while the VM is not serving operations.
func vmCheck(vm *escrowvm.VM) health.Checker {
	return health.CheckerFunc(func(ctx context.Context) (any, error) {
		details, err := vm.HealthCheck(ctx)
		if err != nil {
			return nil, err
		}
		if h, ok := details.(api.Health); ok && !h.Healthy {
			return h, errNotReady
		}
		return details, nil
	})
}
