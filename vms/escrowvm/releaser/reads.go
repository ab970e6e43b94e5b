// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package releaser

import "github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"

func (r *Releaser) Roles() (Roles, error) {
	roles, ok, err := r.roles.Get(singletonKey)
	if err != nil || !ok {
		return Roles{}, err
	}
	return *roles, nil
}

func (r *Releaser) Project(projectID uint64) (Project, bool, error) {
	project, ok, err := r.projects.Get(core.ProjectKey(projectID))
	if err != nil || !ok {
		return Project{}, false, err
	}
	return *project, true, nil
}

func (r *Releaser) Milestone(key core.MilestoneKey) (Milestone, bool, error) {
	milestone, ok, err := r.milestones.Get(key.Bytes())
	if err != nil || !ok {
		return Milestone{}, false, err
	}
	return *milestone, true, nil
}

func (r *Releaser) Paused() (bool, error) {
	f, ok, err := r.paused.Get(singletonKey)
	if err != nil || !ok {
		return false, err
	}
	return f.Set, nil
}

func (r *Releaser) ProjectPaused(projectID uint64) (bool, error) {
	return r.projectPauses.Has(core.ProjectKey(projectID))
}
