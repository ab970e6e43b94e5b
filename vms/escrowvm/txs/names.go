// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

const (
	PoolInitializeProject   = "funding-pool.initializeProject"
	PoolContribute          = "funding-pool.contribute"
	PoolRequestWithdrawal   = "funding-pool.requestWithdrawal"
	PoolSetFundReleaser     = "funding-pool.setFundReleaser"
	PoolToggleEmergencyLock = "funding-pool.toggleEmergencyLock"

	TrackerInitializeProject = "milestone-tracker.initializeProject"
	TrackerSubmitMilestone   = "milestone-tracker.submitMilestone"
	TrackerOracleApprove     = "milestone-tracker.oracleApprove"
	TrackerApproveMilestone  = "milestone-tracker.approveMilestone"
	TrackerSetFundReleaser   = "milestone-tracker.setFundReleaser"
	TrackerSetOracleVerifier = "milestone-tracker.setOracleVerifier"

	ReleaserSetContract       = "fund-releaser.setContract"
	ReleaserInitializeProject = "fund-releaser.initializeProject"
	ReleaserAddMilestone      = "fund-releaser.addMilestone"
	ReleaserApproveMilestone  = "fund-releaser.approveMilestone"
	ReleaserReleaseFunds      = "fund-releaser.releaseFunds"
	ReleaserPauseProject      = "fund-releaser.pauseProject"
	ReleaserUnpauseProject    = "fund-releaser.unpauseProject"
	ReleaserSetPaused         = "fund-releaser.setPaused"

	SettleRelease = "escrow.settleRelease"
)
