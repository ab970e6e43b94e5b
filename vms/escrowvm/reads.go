// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package escrowvm

import (
	"github.com/luxfi/ids"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/pool"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/releaser"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/tracker"
)

// Reads take the VM lock so that they never observe an operation in flight.

func (vm *VM) PoolProject(projectID uint64) (pool.Project, bool, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.pool.Project(projectID)
}

func (vm *VM) Contribution(projectID uint64, contributor ids.ShortID) (uint64, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.pool.Contribution(projectID, contributor)
}

func (vm *VM) TotalCustody() (uint64, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.pool.TotalCustody()
}

func (vm *VM) Transfers(start uint64, limit int) ([]pool.Transfer, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.pool.Transfers(start, limit)
}

func (vm *VM) TrackerProject(projectID uint64) (tracker.Project, []ids.ShortID, bool, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	project, ok, err := vm.tracker.Project(projectID)
	if err != nil || !ok {
		return tracker.Project{}, nil, false, err
	}
	oracles, err := vm.tracker.ProjectOracles(projectID)
	return project, oracles, true, err
}

func (vm *VM) TrackerMilestone(key core.MilestoneKey) (tracker.Milestone, bool, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.tracker.Milestone(key)
}

func (vm *VM) Milestones(projectID uint64) ([]tracker.MilestoneEntry, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.tracker.Milestones(projectID)
}

func (vm *VM) PendingMilestones(status tracker.Status, after *core.MilestoneKey, limit int) ([]core.MilestoneKey, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.tracker.Pending(status, after, limit)
}

// ReleaserProject also reports whether the project's releases are paused.
func (vm *VM) ReleaserProject(projectID uint64) (releaser.Project, bool, bool, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	project, ok, err := vm.releaser.Project(projectID)
	if err != nil || !ok {
		return releaser.Project{}, false, false, err
	}
	paused, err := vm.releaser.ProjectPaused(projectID)
	return project, paused, true, err
}

func (vm *VM) ReleaserMilestone(key core.MilestoneKey) (releaser.Milestone, bool, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.releaser.Milestone(key)
}
