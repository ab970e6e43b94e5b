// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import "github.com/luxfi/ids"

// Roles binds the identities the pool checks callers against.
type Roles struct {
	Admin        ids.ShortID `serialize:"true" json:"admin"`
	FundReleaser ids.ShortID `serialize:"true" json:"fundReleaser"`
}

// Project is the custody account of a single project.
type Project struct {
	TargetAmount uint64 `serialize:"true" json:"targetAmount"`
	Balance      uint64 `serialize:"true" json:"balance"`
	CreatedAt    uint64 `serialize:"true" json:"createdAt"`
}

// Contribution is the running total a contributor has deposited to a project.
type Contribution struct {
	Amount uint64 `serialize:"true" json:"amount"`
}

type Direction uint8

const (
	Inbound Direction = iota
	Outbound
)

func (d Direction) String() string {
	if d == Inbound {
		return "inbound"
	}
	return "outbound"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Transfer is a journal entry of value moving into or out of the pool.
type Transfer struct {
	ID        ids.ID      `serialize:"true" json:"id"`
	Sequence  uint64      `serialize:"true" json:"sequence"`
	Direction Direction   `serialize:"true" json:"direction"`
	ProjectID uint64      `serialize:"true" json:"projectId"`
	Account   ids.ShortID `serialize:"true" json:"account"`
	Amount    uint64      `serialize:"true" json:"amount"`
	Height    uint64      `serialize:"true" json:"height"`
}

type status struct {
	EmergencyLocked bool   `serialize:"true"`
	Custody         uint64 `serialize:"true"`
	Transfers       uint64 `serialize:"true"`
}
