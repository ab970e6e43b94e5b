// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracker

import (
	"github.com/luxfi/ids"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

// DefaultMaxOracles bounds the oracle roster of a project.
const DefaultMaxOracles = 10

const ProjectActive = "active"

type Roles struct {
	Admin          ids.ShortID `serialize:"true" json:"admin"`
	FundReleaser   ids.ShortID `serialize:"true" json:"fundReleaser"`
	OracleVerifier ids.ShortID `serialize:"true" json:"oracleVerifier"`
}

type Project struct {
	TotalMilestones uint64 `serialize:"true" json:"totalMilestones"`
	ApprovedCount   uint64 `serialize:"true" json:"approvedCount"`
	Status          string `serialize:"true" json:"status"`
	CreatedAt       uint64 `serialize:"true" json:"createdAt"`
	UpdatedAt       uint64 `serialize:"true" json:"updatedAt"`
}

type roster struct {
	Oracles []ids.ShortID `serialize:"true"`
}

// Status is the certification stage of a milestone. Transitions only move
// forward.
type Status uint8

const (
	Submitted Status = iota
	OracleVerified
	Approved
)

func (s Status) String() string {
	switch s {
	case Submitted:
		return "submitted"
	case OracleVerified:
		return "oracle-verified"
	case Approved:
		return "approved"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Milestone struct {
	Title        string         `serialize:"true" json:"title"`
	Description  string         `serialize:"true" json:"description"`
	TargetAmount uint64         `serialize:"true" json:"targetAmount"`
	ProofHash    core.ProofHash `serialize:"true" json:"proofHash"`
	Status       Status         `serialize:"true" json:"status"`
	SubmittedAt  uint64         `serialize:"true" json:"submittedAt"`
	// ApprovedAt is the height of the oracle approval; only meaningful when
	// HasApprovedAt is set.
	ApprovedAt    uint64      `serialize:"true" json:"approvedAt"`
	HasApprovedAt bool        `serialize:"true" json:"hasApprovedAt"`
	Submitter     ids.ShortID `serialize:"true" json:"submitter"`
}

// CertificationSink receives every milestone the tracker certifies. An
// error fails the approval; the caller must then discard the operation's
// writes.
type CertificationSink interface {
	MilestoneCertified(ctx core.Context, key core.MilestoneKey) error
}
