// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"errors"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

// Component names the funding pool in results and operation names.
const Component = "funding-pool"

var (
	ErrNotAuthorized       = errors.New("caller is not authorized")
	ErrProjectNotFound     = errors.New("project not found")
	ErrInsufficientBalance = errors.New("insufficient project balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrAlreadyInitialized  = errors.New("project already initialized")
	ErrNotReleaser         = errors.New("no fund releaser registered")
	ErrEmergencyLocked     = errors.New("pool is emergency locked")
	ErrOverflow            = errors.New("amount overflow")

	Codes = core.NewCoder(Component,
		core.CodeEntry{Err: ErrNotAuthorized, Code: 100},
		core.CodeEntry{Err: ErrProjectNotFound, Code: 101},
		core.CodeEntry{Err: ErrInsufficientBalance, Code: 102},
		core.CodeEntry{Err: ErrInvalidAmount, Code: 103},
		core.CodeEntry{Err: ErrAlreadyInitialized, Code: 104},
		core.CodeEntry{Err: ErrNotReleaser, Code: 105},
		core.CodeEntry{Err: ErrEmergencyLocked, Code: 106},
		core.CodeEntry{Err: ErrOverflow, Code: 107},
	)
)
