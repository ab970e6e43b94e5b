// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package escrowvm

import (
	"errors"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/api"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/metrics"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/releaser"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/tracker"
)

var _ tracker.CertificationSink = (*certificationHandoff)(nil)

// certificationHandoff forwards tracker certifications to the releaser under
// the tracker identity bound in the releaser's roles, so the releaser's
// capability check applies. Without a bound identity, or when the releaser
// has no matching milestone yet, the handoff is skipped and the release is
// approved later through fund-releaser.approveMilestone.
type certificationHandoff struct {
	releaser *releaser.Releaser
	log      log.Logger
}

func (h *certificationHandoff) MilestoneCertified(ctx core.Context, key core.MilestoneKey) error {
	roles, err := h.releaser.Roles()
	if err != nil {
		return err
	}
	if roles.MilestoneTracker == ids.ShortEmpty {
		h.log.Debug("skipping certification handoff: no tracker bound",
			log.Stringer("milestone", key),
		)
		return nil
	}

	err = h.releaser.ApproveMilestone(
		core.Context{
			Caller: roles.MilestoneTracker,
			Height: ctx.Height,
		},
		key.ProjectID,
		key.MilestoneID,
	)
	if errors.Is(err, releaser.ErrMilestoneNotFound) {
		h.log.Debug("skipping certification handoff: milestone unknown to releaser",
			log.Stringer("milestone", key),
		)
		return nil
	}
	return err
}

// settleRelease consumes the milestone's release entitlement and pays the
// amount out of the pool to the project's recipient. The withdrawal is issued
// as the pool's registered fund releaser. Either both steps commit or
// neither does.
func (vm *VM) settleRelease(ctx core.Context, projectID, milestoneID uint64) (api.Settlement, error) {
	amount, err := vm.releaser.ReleaseFunds(ctx, projectID, milestoneID)
	if err != nil {
		return api.Settlement{}, err
	}
	project, _, err := vm.releaser.Project(projectID)
	if err != nil {
		return api.Settlement{}, err
	}

	poolRoles, err := vm.pool.Roles()
	if err != nil {
		return api.Settlement{}, err
	}
	authority := core.Context{
		Caller: poolRoles.FundReleaser,
		Height: ctx.Height,
	}
	if err := vm.pool.RequestWithdrawal(authority, projectID, amount, project.Recipient); err != nil {
		return api.Settlement{}, err
	}

	vm.markFlow(metrics.FlowReleased, amount)
	vm.markFlow(metrics.FlowWithdrawn, amount)
	return api.Settlement{
		ProjectID:   projectID,
		MilestoneID: milestoneID,
		Recipient:   project.Recipient,
		Amount:      amount,
	}, nil
}
