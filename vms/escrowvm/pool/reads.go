// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"github.com/luxfi/ids"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

// Roles returns the current bindings. Before Bootstrap every binding is unset.
func (p *Pool) Roles() (Roles, error) {
	roles, ok, err := p.roles.Get(singletonKey)
	if err != nil || !ok {
		return Roles{}, err
	}
	return *roles, nil
}

// Balance is zero for unknown projects.
func (p *Pool) Balance(projectID uint64) (uint64, error) {
	project, ok, err := p.projects.Get(core.ProjectKey(projectID))
	if err != nil || !ok {
		return 0, err
	}
	return project.Balance, nil
}

func (p *Pool) Project(projectID uint64) (Project, bool, error) {
	project, ok, err := p.projects.Get(core.ProjectKey(projectID))
	if err != nil || !ok {
		return Project{}, false, err
	}
	return *project, true, nil
}

func (p *Pool) Contribution(projectID uint64, contributor ids.ShortID) (uint64, error) {
	key := core.ContributionKey{ProjectID: projectID, Contributor: contributor}
	contribution, ok, err := p.contributions.Get(key.Bytes())
	if err != nil || !ok {
		return 0, err
	}
	return contribution.Amount, nil
}

// TotalCustody is the sum of all project balances.
func (p *Pool) TotalCustody() (uint64, error) {
	st, err := p.getStatus()
	if err != nil {
		return 0, err
	}
	return st.Custody, nil
}

func (p *Pool) EmergencyLocked() (bool, error) {
	st, err := p.getStatus()
	if err != nil {
		return false, err
	}
	return st.EmergencyLocked, nil
}

// Transfers returns up to limit journal entries starting at sequence start.
func (p *Pool) Transfers(start uint64, limit int) ([]Transfer, error) {
	var transfers []Transfer
	if limit <= 0 {
		return transfers, nil
	}
	err := p.transfers.Iterate(sequenceKey(start), nil, func(_ []byte, t *Transfer) (bool, error) {
		transfers = append(transfers, *t)
		return len(transfers) < limit, nil
	})
	return transfers, err
}
