// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	stdjson "encoding/json"

	"github.com/luxfi/ids"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/utils/json"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/pool"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/releaser"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/tracker"
)

// Health is the reply of escrow.health.
type Health struct {
	Healthy         bool   `json:"healthy"`
	State           string `json:"state"`
	Version         string `json:"version"`
	Height          uint64 `json:"height"`
	TotalCustody    uint64 `json:"totalCustody"`
	EmergencyLocked bool   `json:"emergencyLocked"`
	ReleasesPaused  bool   `json:"releasesPaused"`
}

// Settlement is the value of a committed escrow.settleRelease.
type Settlement struct {
	ProjectID   uint64      `json:"projectId"`
	MilestoneID uint64      `json:"milestoneId"`
	Recipient   ids.ShortID `json:"recipient"`
	Amount      uint64      `json:"amount"`
}

type InvokeArgs struct {
	Name string `json:"name"`
	// Args are the positional operation arguments.
	Args []stdjson.RawMessage `json:"args"`
}

type ProjectArgs struct {
	ProjectID json.Uint64 `json:"projectId"`
}

type MilestoneArgs struct {
	ProjectID   json.Uint64 `json:"projectId"`
	MilestoneID json.Uint64 `json:"milestoneId"`
}

func (a MilestoneArgs) key() core.MilestoneKey {
	return core.MilestoneKey{
		ProjectID:   uint64(a.ProjectID),
		MilestoneID: uint64(a.MilestoneID),
	}
}

type ContributionArgs struct {
	ProjectID   json.Uint64 `json:"projectId"`
	Contributor string      `json:"contributor"`
}

type PageArgs struct {
	Start json.Uint64 `json:"start"`
	Limit int         `json:"limit"`
}

type PendingArgs struct {
	// Status is "submitted" or "oracle-verified".
	Status string         `json:"status"`
	After  *MilestoneArgs `json:"after,omitempty"`
	Limit  int            `json:"limit"`
}

type BalanceReply struct {
	Found        bool        `json:"found"`
	Balance      json.Uint64 `json:"balance"`
	TargetAmount json.Uint64 `json:"targetAmount"`
	TotalCustody json.Uint64 `json:"totalCustody"`
}

type ContributionReply struct {
	Amount json.Uint64 `json:"amount"`
}

type TransfersReply struct {
	Transfers []pool.Transfer `json:"transfers"`
}

type TrackerProjectReply struct {
	Found   bool            `json:"found"`
	Project tracker.Project `json:"project"`
	Oracles []ids.ShortID   `json:"oracles"`
}

type MilestoneReply struct {
	Found     bool              `json:"found"`
	Milestone tracker.Milestone `json:"milestone"`
}

type MilestonesReply struct {
	Milestones []tracker.MilestoneEntry `json:"milestones"`
}

type PendingReply struct {
	Keys []core.MilestoneKey `json:"keys"`
}

type ReleaserProjectReply struct {
	Found   bool             `json:"found"`
	Paused  bool             `json:"paused"`
	Project releaser.Project `json:"project"`
}

type ReleaserMilestoneReply struct {
	Found     bool               `json:"found"`
	Milestone releaser.Milestone `json:"milestone"`
}
