// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tracker implements the milestone certification workflow:
// submission by the admin, attestation by the oracle verifier and final
// approval by the release authority.
package tracker

import (
	"fmt"
	"slices"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	safemath "github.com/luxfi/math"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/state"
)

var (
	rolesPrefix     = []byte("roles")
	projectPrefix   = []byte("project")
	rosterPrefix    = []byte("roster")
	milestonePrefix = []byte("milestone")

	singletonKey = []byte{0}
)

// Tracker is not safe for concurrent use.
type Tracker struct {
	log        log.Logger
	maxOracles int
	sink       CertificationSink

	roles      *state.Table[Roles]
	projects   *state.Table[Project]
	rosters    *state.Table[roster]
	milestones *state.Table[Milestone]

	pending *queue
}

func New(db database.Database, cacheSize, maxOracles int, logger log.Logger) *Tracker {
	return &Tracker{
		log:        logger,
		maxOracles: maxOracles,
		roles:      state.NewTable[Roles](db, rolesPrefix, 1),
		projects:   state.NewTable[Project](db, projectPrefix, cacheSize),
		rosters:    state.NewTable[roster](db, rosterPrefix, cacheSize),
		milestones: state.NewTable[Milestone](db, milestonePrefix, cacheSize),
		pending:    newQueue(),
	}
}

// SetSink registers the receiver of certified milestones.
func (t *Tracker) SetSink(sink CertificationSink) {
	t.sink = sink
}

func (t *Tracker) Bootstrap(roles Roles) (bool, error) {
	exists, err := t.roles.Has(singletonKey)
	if err != nil || exists {
		return false, err
	}
	return true, t.roles.Put(singletonKey, &roles)
}

func (t *Tracker) Flush() {
	t.roles.Flush()
	t.projects.Flush()
	t.rosters.Flush()
	t.milestones.Flush()
	t.pending.reset()
}

func (t *Tracker) InitializeProject(ctx core.Context, projectID, totalMilestones uint64, oracles []ids.ShortID) error {
	roles, err := t.Roles()
	if err != nil {
		return err
	}
	if !ctx.HasRole(roles.Admin) {
		return ErrNotAuthorized
	}

	key := core.ProjectKey(projectID)
	exists, err := t.projects.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: project %d", ErrAlreadyInitialized, projectID)
	}
	if totalMilestones == 0 {
		return fmt.Errorf("%w: project needs at least one milestone", ErrInvalidMilestone)
	}
	if len(oracles) > t.maxOracles {
		return fmt.Errorf("%w: %d > %d", ErrTooManyOracles, len(oracles), t.maxOracles)
	}

	if err := t.projects.Put(key, &Project{
		TotalMilestones: totalMilestones,
		Status:          ProjectActive,
		CreatedAt:       ctx.Height,
		UpdatedAt:       ctx.Height,
	}); err != nil {
		return err
	}
	if err := t.rosters.Put(key, &roster{Oracles: slices.Clone(oracles)}); err != nil {
		return err
	}

	t.log.Debug("initialized tracker project",
		log.Uint64("projectID", projectID),
		log.Uint64("totalMilestones", totalMilestones),
		log.Int("oracles", len(oracles)),
	)
	return nil
}

func (t *Tracker) SubmitMilestone(
	ctx core.Context,
	projectID uint64,
	milestoneID uint64,
	title string,
	description string,
	targetAmount uint64,
	proofHash []byte,
) error {
	roles, err := t.Roles()
	if err != nil {
		return err
	}
	if !ctx.HasRole(roles.Admin) {
		return ErrNotAuthorized
	}

	projectKey := core.ProjectKey(projectID)
	project, ok, err := t.projects.Get(projectKey)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
	}

	key := core.MilestoneKey{ProjectID: projectID, MilestoneID: milestoneID}
	exists, err := t.milestones.Has(key.Bytes())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrMilestoneExists, key)
	}
	if targetAmount == 0 {
		return ErrInvalidAmount
	}
	proof, err := core.ParseProofHash(proofHash)
	if err != nil {
		return err
	}
	if milestoneID >= project.TotalMilestones {
		return fmt.Errorf("%w: id %d outside [0, %d)", ErrInvalidMilestone, milestoneID, project.TotalMilestones)
	}

	if err := t.milestones.Put(key.Bytes(), &Milestone{
		Title:        title,
		Description:  description,
		TargetAmount: targetAmount,
		ProofHash:    proof,
		Status:       Submitted,
		SubmittedAt:  ctx.Height,
		Submitter:    ctx.Caller,
	}); err != nil {
		return err
	}
	project.UpdatedAt = ctx.Height
	if err := t.projects.Put(projectKey, project); err != nil {
		return err
	}
	t.pending.add(key, Submitted)

	t.log.Debug("submitted milestone",
		log.Stringer("milestone", key),
		log.Stringer("proofHash", proof),
	)
	return nil
}

// OracleApprove records the oracle verifier's attestation. The verifier's
// proof hash replaces the submitted one.
func (t *Tracker) OracleApprove(ctx core.Context, projectID, milestoneID uint64, approvalProofHash []byte) error {
	roles, err := t.Roles()
	if err != nil {
		return err
	}
	if roles.OracleVerifier == ids.ShortEmpty {
		return ErrNotOracle
	}
	if ctx.Caller != roles.OracleVerifier {
		return ErrNotAuthorized
	}

	key := core.MilestoneKey{ProjectID: projectID, MilestoneID: milestoneID}
	milestone, ok, err := t.milestones.Get(key.Bytes())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMilestoneNotFound, key)
	}
	if milestone.Status != Submitted {
		return fmt.Errorf("%w: %s is %s", ErrInvalidStatus, key, milestone.Status)
	}
	proof, err := core.ParseProofHash(approvalProofHash)
	if err != nil {
		return err
	}

	milestone.Status = OracleVerified
	milestone.ApprovedAt = ctx.Height
	milestone.HasApprovedAt = true
	milestone.ProofHash = proof
	if err := t.milestones.Put(key.Bytes(), milestone); err != nil {
		return err
	}
	t.pending.move(key, Submitted, OracleVerified)

	t.log.Debug("oracle verified milestone",
		log.Stringer("milestone", key),
		log.Stringer("proofHash", proof),
	)
	return nil
}

// ApproveMilestone certifies an oracle-verified milestone and hands it to the
// registered sink.
func (t *Tracker) ApproveMilestone(ctx core.Context, projectID, milestoneID uint64) error {
	roles, err := t.Roles()
	if err != nil {
		return err
	}
	if roles.FundReleaser == ids.ShortEmpty {
		return ErrNotReleaser
	}
	if ctx.Caller != roles.FundReleaser {
		return ErrNotAuthorized
	}

	key := core.MilestoneKey{ProjectID: projectID, MilestoneID: milestoneID}
	milestone, ok, err := t.milestones.Get(key.Bytes())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMilestoneNotFound, key)
	}
	projectKey := core.ProjectKey(projectID)
	project, ok, err := t.projects.Get(projectKey)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
	}
	switch milestone.Status {
	case Approved:
		return fmt.Errorf("%w: %s", ErrAlreadyApproved, key)
	case OracleVerified:
	default:
		return fmt.Errorf("%w: %s is %s", ErrInvalidStatus, key, milestone.Status)
	}

	approved, err := safemath.Add64(project.ApprovedCount, 1)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOverflow, err)
	}
	project.ApprovedCount = approved
	project.UpdatedAt = ctx.Height
	milestone.Status = Approved

	if err := t.milestones.Put(key.Bytes(), milestone); err != nil {
		return err
	}
	if err := t.projects.Put(projectKey, project); err != nil {
		return err
	}
	t.pending.move(key, OracleVerified, Approved)

	t.log.Debug("approved milestone",
		log.Stringer("milestone", key),
		log.Uint64("approvedCount", project.ApprovedCount),
	)

	if t.sink == nil {
		return nil
	}
	return t.sink.MilestoneCertified(ctx, key)
}

func (t *Tracker) SetFundReleaser(ctx core.Context, releaser ids.ShortID) error {
	return t.updateRoles(ctx, func(r *Roles) { r.FundReleaser = releaser })
}

func (t *Tracker) SetOracleVerifier(ctx core.Context, verifier ids.ShortID) error {
	return t.updateRoles(ctx, func(r *Roles) { r.OracleVerifier = verifier })
}

func (t *Tracker) updateRoles(ctx core.Context, update func(*Roles)) error {
	roles, err := t.Roles()
	if err != nil {
		return err
	}
	if !ctx.HasRole(roles.Admin) {
		return ErrNotAuthorized
	}
	update(&roles)
	return t.roles.Put(singletonKey, &roles)
}
