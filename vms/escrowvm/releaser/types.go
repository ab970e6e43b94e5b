// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package releaser

import (
	"github.com/luxfi/ids"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

// Contract names accepted by SetContract.
const (
	ContractFundingPool      = "funding-pool"
	ContractMilestoneTracker = "milestone-tracker"
	ContractOracleVerifier   = "oracle-verifier"
)

const ProjectActive = "active"

type Roles struct {
	Admin            ids.ShortID `serialize:"true" json:"admin"`
	FundingPool      ids.ShortID `serialize:"true" json:"fundingPool"`
	MilestoneTracker ids.ShortID `serialize:"true" json:"milestoneTracker"`
	OracleVerifier   ids.ShortID `serialize:"true" json:"oracleVerifier"`
}

type Project struct {
	Recipient      ids.ShortID `serialize:"true" json:"recipient"`
	TotalBudget    uint64      `serialize:"true" json:"totalBudget"`
	ReleasedAmount uint64      `serialize:"true" json:"releasedAmount"`
	MilestoneCount uint64      `serialize:"true" json:"milestoneCount"`
	Status         string      `serialize:"true" json:"status"`
}

type Milestone struct {
	Amount    uint64         `serialize:"true" json:"amount"`
	Approved  bool           `serialize:"true" json:"approved"`
	Released  bool           `serialize:"true" json:"released"`
	ProofHash core.ProofHash `serialize:"true" json:"proofHash"`
}

type flag struct {
	Set bool `serialize:"true"`
}

// Attestor is the certification source the releaser consults before
// accepting an approval.
type Attestor interface {
	Certified(key core.MilestoneKey) (bool, error)
}
