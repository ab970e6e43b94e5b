// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api serves the escrow VM over JSON-RPC 2.0.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/utils/json"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/pool"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/releaser"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/tracker"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/txs"
)

const (
	// ServiceName is the JSON-RPC service prefix, e.g. "escrow.invoke".
	ServiceName = "escrow"

	// CallerHeader carries the caller identity established by the
	// authenticating front end.
	CallerHeader = "Escrow-Caller"

	maxPageSize = 1024
)

var (
	errMissingCaller = errors.New("missing " + CallerHeader + " header")
	errInvalidStatus = errors.New("status must be submitted or oracle-verified")
)

// VM is the read side of the escrow VM.
type VM interface {
	HealthCheck(ctx context.Context) (any, error)

	PoolProject(projectID uint64) (pool.Project, bool, error)
	Contribution(projectID uint64, contributor ids.ShortID) (uint64, error)
	TotalCustody() (uint64, error)
	Transfers(start uint64, limit int) ([]pool.Transfer, error)

	TrackerProject(projectID uint64) (tracker.Project, []ids.ShortID, bool, error)
	TrackerMilestone(key core.MilestoneKey) (tracker.Milestone, bool, error)
	Milestones(projectID uint64) ([]tracker.MilestoneEntry, error)
	PendingMilestones(status tracker.Status, after *core.MilestoneKey, limit int) ([]core.MilestoneKey, error)

	ReleaserProject(projectID uint64) (releaser.Project, bool, bool, error)
	ReleaserMilestone(key core.MilestoneKey) (releaser.Milestone, bool, error)
}

// Service is the escrow JSON-RPC service.
type Service struct {
	executor txs.Executor
	vm       VM
	log      log.Logger
}

// NewServer returns the JSON-RPC handler for the escrow service.
func NewServer(executor txs.Executor, vm VM, interceptor Interceptor, logger log.Logger) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	if interceptor != nil {
		server.RegisterInterceptFunc(interceptor.InterceptRequest)
		server.RegisterAfterFunc(interceptor.AfterRequest)
	}
	service := &Service{
		executor: executor,
		vm:       vm,
		log:      logger,
	}
	if err := server.RegisterService(service, ServiceName); err != nil {
		return nil, err
	}
	return server, nil
}

// Interceptor observes every JSON-RPC call.
type Interceptor interface {
	InterceptRequest(i *rpc.RequestInfo) *http.Request
	AfterRequest(i *rpc.RequestInfo)
}

// Invoke executes a named operation as the caller named in the request
// header. Operation failures are reported in the result, not as RPC errors.
func (s *Service) Invoke(r *http.Request, args *InvokeArgs, reply *core.Result) error {
	caller, err := callerFrom(r)
	if err != nil {
		return err
	}

	s.log.Debug("escrow: invoke",
		log.String("operation", args.Name),
		log.Stringer("caller", caller),
	)

	*reply = s.executor.Execute(r.Context(), caller, txs.Operation{
		Name: args.Name,
		Args: args.Args,
	})
	return nil
}

func (s *Service) Health(r *http.Request, _ *struct{}, reply *Health) error {
	health, err := s.vm.HealthCheck(r.Context())
	if err != nil {
		return err
	}
	h, ok := health.(Health)
	if !ok {
		return fmt.Errorf("unexpected health report %T", health)
	}
	*reply = h
	return nil
}

func (s *Service) GetPoolBalance(_ *http.Request, args *ProjectArgs, reply *BalanceReply) error {
	project, found, err := s.vm.PoolProject(uint64(args.ProjectID))
	if err != nil {
		return err
	}
	custody, err := s.vm.TotalCustody()
	if err != nil {
		return err
	}
	*reply = BalanceReply{
		Found:        found,
		Balance:      json.Uint64(project.Balance),
		TargetAmount: json.Uint64(project.TargetAmount),
		TotalCustody: json.Uint64(custody),
	}
	return nil
}

func (s *Service) GetContribution(_ *http.Request, args *ContributionArgs, reply *ContributionReply) error {
	contributor, err := ids.ShortFromString(args.Contributor)
	if err != nil {
		return fmt.Errorf("invalid contributor: %w", err)
	}
	amount, err := s.vm.Contribution(uint64(args.ProjectID), contributor)
	if err != nil {
		return err
	}
	reply.Amount = json.Uint64(amount)
	return nil
}

func (s *Service) GetTransfers(_ *http.Request, args *PageArgs, reply *TransfersReply) error {
	transfers, err := s.vm.Transfers(uint64(args.Start), pageSize(args.Limit))
	if err != nil {
		return err
	}
	reply.Transfers = transfers
	return nil
}

func (s *Service) GetTrackerProject(_ *http.Request, args *ProjectArgs, reply *TrackerProjectReply) error {
	project, oracles, found, err := s.vm.TrackerProject(uint64(args.ProjectID))
	if err != nil {
		return err
	}
	*reply = TrackerProjectReply{
		Found:   found,
		Project: project,
		Oracles: oracles,
	}
	return nil
}

func (s *Service) GetMilestone(_ *http.Request, args *MilestoneArgs, reply *MilestoneReply) error {
	milestone, found, err := s.vm.TrackerMilestone(args.key())
	if err != nil {
		return err
	}
	*reply = MilestoneReply{
		Found:     found,
		Milestone: milestone,
	}
	return nil
}

func (s *Service) ListMilestones(_ *http.Request, args *ProjectArgs, reply *MilestonesReply) error {
	milestones, err := s.vm.Milestones(uint64(args.ProjectID))
	if err != nil {
		return err
	}
	reply.Milestones = milestones
	return nil
}

func (s *Service) ListPending(_ *http.Request, args *PendingArgs, reply *PendingReply) error {
	var status tracker.Status
	switch args.Status {
	case tracker.Submitted.String():
		status = tracker.Submitted
	case tracker.OracleVerified.String():
		status = tracker.OracleVerified
	default:
		return fmt.Errorf("%w: %q", errInvalidStatus, args.Status)
	}

	var after *core.MilestoneKey
	if args.After != nil {
		key := args.After.key()
		after = &key
	}
	keys, err := s.vm.PendingMilestones(status, after, pageSize(args.Limit))
	if err != nil {
		return err
	}
	reply.Keys = keys
	return nil
}

func (s *Service) GetReleaserProject(_ *http.Request, args *ProjectArgs, reply *ReleaserProjectReply) error {
	project, paused, found, err := s.vm.ReleaserProject(uint64(args.ProjectID))
	if err != nil {
		return err
	}
	*reply = ReleaserProjectReply{
		Found:   found,
		Paused:  paused,
		Project: project,
	}
	return nil
}

func (s *Service) GetReleaserMilestone(_ *http.Request, args *MilestoneArgs, reply *ReleaserMilestoneReply) error {
	milestone, found, err := s.vm.ReleaserMilestone(args.key())
	if err != nil {
		return err
	}
	*reply = ReleaserMilestoneReply{
		Found:     found,
		Milestone: milestone,
	}
	return nil
}

func callerFrom(r *http.Request) (ids.ShortID, error) {
	header := r.Header.Get(CallerHeader)
	if header == "" {
		return ids.ShortEmpty, errMissingCaller
	}
	caller, err := ids.ShortFromString(header)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("invalid %s header: %w", CallerHeader, err)
	}
	return caller, nil
}

func pageSize(limit int) int {
	if limit <= 0 || limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
