// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package releaser

import (
	"errors"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

const Component = "fund-releaser"

var (
	ErrNotAuthorized        = errors.New("caller is not authorized")
	ErrProjectNotFound      = errors.New("project not found")
	ErrMilestoneNotFound    = errors.New("milestone not found")
	ErrMilestoneNotApproved = errors.New("milestone not approved")
	ErrInsufficientFunds    = errors.New("release exceeds project budget")
	ErrAlreadyReleased      = errors.New("milestone already released")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrPaused               = errors.New("releases are paused")
	ErrInvalidRecipient     = errors.New("invalid recipient")
	ErrContractNotSet       = errors.New("contract not set")
	ErrAlreadyInitialized   = errors.New("project already initialized")
	ErrMilestoneExists      = errors.New("milestone already exists")
	ErrInvalidContract      = errors.New("unknown contract name")
	ErrOverflow             = errors.New("amount overflow")
	ErrInvalidProofHash     = core.ErrInvalidProofHash

	Codes = core.NewCoder(Component,
		core.CodeEntry{Err: ErrNotAuthorized, Code: 100},
		core.CodeEntry{Err: ErrProjectNotFound, Code: 101},
		core.CodeEntry{Err: ErrMilestoneNotFound, Code: 102},
		core.CodeEntry{Err: ErrMilestoneNotApproved, Code: 103},
		core.CodeEntry{Err: ErrInsufficientFunds, Code: 104},
		core.CodeEntry{Err: ErrAlreadyReleased, Code: 105},
		core.CodeEntry{Err: ErrInvalidAmount, Code: 106},
		core.CodeEntry{Err: ErrPaused, Code: 107},
		core.CodeEntry{Err: ErrInvalidRecipient, Code: 108},
		core.CodeEntry{Err: ErrContractNotSet, Code: 109},
		core.CodeEntry{Err: ErrAlreadyInitialized, Code: 110},
		core.CodeEntry{Err: ErrMilestoneExists, Code: 111},
		core.CodeEntry{Err: ErrInvalidContract, Code: 112},
		core.CodeEntry{Err: ErrOverflow, Code: 113},
		core.CodeEntry{Err: ErrInvalidProofHash, Code: 114},
	)
)
