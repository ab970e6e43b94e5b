// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracker

import (
	"errors"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

const Component = "milestone-tracker"

var (
	ErrNotAuthorized      = errors.New("caller is not authorized")
	ErrProjectNotFound    = errors.New("project not found")
	ErrMilestoneNotFound  = errors.New("milestone not found")
	ErrAlreadyApproved    = errors.New("milestone already approved")
	ErrInvalidStatus      = errors.New("invalid milestone status")
	ErrInvalidProofHash   = core.ErrInvalidProofHash
	ErrNotOracle          = errors.New("no oracle verifier registered")
	ErrNotReleaser        = errors.New("no fund releaser registered")
	ErrAlreadyInitialized = errors.New("project already initialized")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidMilestone   = errors.New("invalid milestone")
	ErrTooManyOracles     = errors.New("too many oracles")
	ErrMilestoneExists    = errors.New("milestone already exists")
	ErrOverflow           = errors.New("counter overflow")

	Codes = core.NewCoder(Component,
		core.CodeEntry{Err: ErrNotAuthorized, Code: 100},
		core.CodeEntry{Err: ErrProjectNotFound, Code: 101},
		core.CodeEntry{Err: ErrMilestoneNotFound, Code: 102},
		core.CodeEntry{Err: ErrAlreadyApproved, Code: 103},
		core.CodeEntry{Err: ErrInvalidStatus, Code: 104},
		core.CodeEntry{Err: ErrInvalidProofHash, Code: 105},
		core.CodeEntry{Err: ErrNotOracle, Code: 106},
		core.CodeEntry{Err: ErrNotReleaser, Code: 107},
		core.CodeEntry{Err: ErrAlreadyInitialized, Code: 108},
		core.CodeEntry{Err: ErrInvalidAmount, Code: 109},
		core.CodeEntry{Err: ErrInvalidMilestone, Code: 110},
		core.CodeEntry{Err: ErrTooManyOracles, Code: 111},
		core.CodeEntry{Err: ErrMilestoneExists, Code: 112},
		core.CodeEntry{Err: ErrOverflow, Code: 113},
	)
)
