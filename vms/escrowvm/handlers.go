// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package escrowvm

import (
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/metrics"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/pool"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/releaser"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/tracker"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/txs"
)

func (vm *VM) newHandlers() map[string]handler {
	poolCoders := []*core.Coder{pool.Codes}
	trackerCoders := []*core.Coder{tracker.Codes}
	releaserCoders := []*core.Coder{releaser.Codes}
	settleCoders := []*core.Coder{releaser.Codes, pool.Codes}

	return map[string]handler{
		txs.PoolInitializeProject: {poolCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 2)
			projectID, target := args.Uint64(0), args.Uint64(1)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.pool.InitializeProject(ctx, projectID, target)
		}},
		txs.PoolContribute: {poolCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 2)
			projectID, amount := args.Uint64(0), args.Uint64(1)
			if err := args.Err(); err != nil {
				return nil, err
			}
			accepted, err := vm.pool.Contribute(ctx, projectID, amount)
			if err != nil {
				return nil, err
			}
			vm.markFlow(metrics.FlowContributed, accepted)
			return accepted, nil
		}},
		txs.PoolRequestWithdrawal: {poolCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 3)
			projectID, amount, recipient := args.Uint64(0), args.Uint64(1), args.Address(2)
			if err := args.Err(); err != nil {
				return nil, err
			}
			if err := vm.pool.RequestWithdrawal(ctx, projectID, amount, recipient); err != nil {
				return nil, err
			}
			vm.markFlow(metrics.FlowWithdrawn, amount)
			return true, nil
		}},
		txs.PoolSetFundReleaser: {poolCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 1)
			addr := args.Address(0)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.pool.SetFundReleaser(ctx, addr)
		}},
		txs.PoolToggleEmergencyLock: {poolCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			if err := txs.Expect(op, 0).Err(); err != nil {
				return nil, err
			}
			return vm.pool.ToggleEmergencyLock(ctx)
		}},

		txs.TrackerInitializeProject: {trackerCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 3)
			projectID, total, oracles := args.Uint64(0), args.Uint64(1), args.Addresses(2)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.tracker.InitializeProject(ctx, projectID, total, oracles)
		}},
		txs.TrackerSubmitMilestone: {trackerCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 6)
			var (
				projectID   = args.Uint64(0)
				milestoneID = args.Uint64(1)
				title       = args.String(2)
				description = args.String(3)
				amount      = args.Uint64(4)
				proof       = args.Hex(5)
			)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.tracker.SubmitMilestone(ctx, projectID, milestoneID, title, description, amount, proof)
		}},
		txs.TrackerOracleApprove: {trackerCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 3)
			projectID, milestoneID, proof := args.Uint64(0), args.Uint64(1), args.Hex(2)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.tracker.OracleApprove(ctx, projectID, milestoneID, proof)
		}},
		txs.TrackerApproveMilestone: {trackerCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 2)
			projectID, milestoneID := args.Uint64(0), args.Uint64(1)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.tracker.ApproveMilestone(ctx, projectID, milestoneID)
		}},
		txs.TrackerSetFundReleaser: {trackerCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 1)
			addr := args.Address(0)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.tracker.SetFundReleaser(ctx, addr)
		}},
		txs.TrackerSetOracleVerifier: {trackerCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 1)
			addr := args.Address(0)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.tracker.SetOracleVerifier(ctx, addr)
		}},

		txs.ReleaserSetContract: {releaserCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 2)
			name, addr := args.String(0), args.Address(1)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.releaser.SetContract(ctx, name, addr)
		}},
		txs.ReleaserInitializeProject: {releaserCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 4)
			var (
				projectID = args.Uint64(0)
				recipient = args.Address(1)
				budget    = args.Uint64(2)
				count     = args.Uint64(3)
			)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.releaser.InitializeProject(ctx, projectID, recipient, budget, count)
		}},
		txs.ReleaserAddMilestone: {releaserCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 4)
			var (
				projectID   = args.Uint64(0)
				milestoneID = args.Uint64(1)
				amount      = args.Uint64(2)
				proof       = args.Hex(3)
			)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.releaser.AddMilestone(ctx, projectID, milestoneID, amount, proof)
		}},
		txs.ReleaserApproveMilestone: {releaserCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 2)
			projectID, milestoneID := args.Uint64(0), args.Uint64(1)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.releaser.ApproveMilestone(ctx, projectID, milestoneID)
		}},
		txs.ReleaserReleaseFunds: {releaserCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 2)
			projectID, milestoneID := args.Uint64(0), args.Uint64(1)
			if err := args.Err(); err != nil {
				return nil, err
			}
			amount, err := vm.releaser.ReleaseFunds(ctx, projectID, milestoneID)
			if err != nil {
				return nil, err
			}
			vm.markFlow(metrics.FlowReleased, amount)
			return amount, nil
		}},
		txs.ReleaserPauseProject: {releaserCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 1)
			projectID := args.Uint64(0)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.releaser.PauseProject(ctx, projectID)
		}},
		txs.ReleaserUnpauseProject: {releaserCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 1)
			projectID := args.Uint64(0)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.releaser.UnpauseProject(ctx, projectID)
		}},
		txs.ReleaserSetPaused: {releaserCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 1)
			paused := args.Bool(0)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return nil, vm.releaser.SetPaused(ctx, paused)
		}},

		txs.SettleRelease: {settleCoders, func(ctx core.Context, op txs.Operation) (any, error) {
			args := txs.Expect(op, 2)
			projectID, milestoneID := args.Uint64(0), args.Uint64(1)
			if err := args.Err(); err != nil {
				return nil, err
			}
			return vm.settleRelease(ctx, projectID, milestoneID)
		}},
	}
}
