// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package releaser implements the fund releaser: per-milestone release
// entitlements that are granted once the tracker certifies a milestone and
// can be exercised at most once.
package releaser

import (
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	safemath "github.com/luxfi/math"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/state"
)

var (
	rolesPrefix        = []byte("roles")
	pausedPrefix       = []byte("paused")
	projectPrefix      = []byte("project")
	milestonePrefix    = []byte("milestone")
	projectPausePrefix = []byte("projectPaused")

	singletonKey = []byte{0}
)

// Releaser is not safe for concurrent use.
type Releaser struct {
	log      log.Logger
	attestor Attestor

	roles         *state.Table[Roles]
	paused        *state.Table[flag]
	projects      *state.Table[Project]
	milestones    *state.Table[Milestone]
	projectPauses *state.Table[flag]
}

func New(db database.Database, cacheSize int, logger log.Logger) *Releaser {
	return &Releaser{
		log:           logger,
		roles:         state.NewTable[Roles](db, rolesPrefix, 1),
		paused:        state.NewTable[flag](db, pausedPrefix, 1),
		projects:      state.NewTable[Project](db, projectPrefix, cacheSize),
		milestones:    state.NewTable[Milestone](db, milestonePrefix, cacheSize),
		projectPauses: state.NewTable[flag](db, projectPausePrefix, cacheSize),
	}
}

// SetAttestor attaches the certification source checked by ApproveMilestone.
func (r *Releaser) SetAttestor(attestor Attestor) {
	r.attestor = attestor
}

func (r *Releaser) Bootstrap(roles Roles) (bool, error) {
	exists, err := r.roles.Has(singletonKey)
	if err != nil || exists {
		return false, err
	}
	return true, r.roles.Put(singletonKey, &roles)
}

func (r *Releaser) Flush() {
	r.roles.Flush()
	r.paused.Flush()
	r.projects.Flush()
	r.milestones.Flush()
	r.projectPauses.Flush()
}

// SetContract binds one of the named collaborator identities.
func (r *Releaser) SetContract(ctx core.Context, name string, addr ids.ShortID) error {
	roles, err := r.adminRoles(ctx)
	if err != nil {
		return err
	}
	switch name {
	case ContractFundingPool:
		roles.FundingPool = addr
	case ContractMilestoneTracker:
		roles.MilestoneTracker = addr
	case ContractOracleVerifier:
		roles.OracleVerifier = addr
	default:
		return fmt.Errorf("%w: %q", ErrInvalidContract, name)
	}
	if err := r.roles.Put(singletonKey, &roles); err != nil {
		return err
	}

	r.log.Info("bound releaser contract",
		log.String("name", name),
		log.Stringer("address", addr),
	)
	return nil
}

func (r *Releaser) InitializeProject(
	ctx core.Context,
	projectID uint64,
	recipient ids.ShortID,
	totalBudget uint64,
	milestoneCount uint64,
) error {
	if _, err := r.adminRoles(ctx); err != nil {
		return err
	}
	if recipient == ctx.Caller {
		return fmt.Errorf("%w: recipient cannot be the admin", ErrInvalidRecipient)
	}
	if totalBudget == 0 || milestoneCount == 0 {
		return ErrInvalidAmount
	}
	key := core.ProjectKey(projectID)
	exists, err := r.projects.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: project %d", ErrAlreadyInitialized, projectID)
	}

	if err := r.projects.Put(key, &Project{
		Recipient:      recipient,
		TotalBudget:    totalBudget,
		MilestoneCount: milestoneCount,
		Status:         ProjectActive,
	}); err != nil {
		return err
	}

	r.log.Debug("initialized releaser project",
		log.Uint64("projectID", projectID),
		log.Stringer("recipient", recipient),
		log.Uint64("totalBudget", totalBudget),
	)
	return nil
}

func (r *Releaser) AddMilestone(ctx core.Context, projectID, milestoneID, amount uint64, proofHash []byte) error {
	if _, err := r.adminRoles(ctx); err != nil {
		return err
	}
	exists, err := r.projects.Has(core.ProjectKey(projectID))
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	key := core.MilestoneKey{ProjectID: projectID, MilestoneID: milestoneID}
	exists, err = r.milestones.Has(key.Bytes())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrMilestoneExists, key)
	}
	proof, err := core.ParseProofHash(proofHash)
	if err != nil {
		return err
	}

	return r.milestones.Put(key.Bytes(), &Milestone{
		Amount:    amount,
		ProofHash: proof,
	})
}

// ApproveMilestone marks a milestone releasable. Only the registered tracker
// identity may approve, and an attached attestor must confirm the
// certification. Approving twice is a no-op.
func (r *Releaser) ApproveMilestone(ctx core.Context, projectID, milestoneID uint64) error {
	roles, err := r.Roles()
	if err != nil {
		return err
	}
	if roles.MilestoneTracker == ids.ShortEmpty {
		return fmt.Errorf("%w: %s", ErrContractNotSet, ContractMilestoneTracker)
	}
	if ctx.Caller != roles.MilestoneTracker {
		return ErrNotAuthorized
	}

	key := core.MilestoneKey{ProjectID: projectID, MilestoneID: milestoneID}
	milestone, ok, err := r.milestones.Get(key.Bytes())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrMilestoneNotFound, key)
	}
	if r.attestor != nil {
		certified, err := r.attestor.Certified(key)
		if err != nil {
			return err
		}
		if !certified {
			return fmt.Errorf("%w: %s is not certified", ErrMilestoneNotApproved, key)
		}
	}

	milestone.Approved = true
	if err := r.milestones.Put(key.Bytes(), milestone); err != nil {
		return err
	}

	r.log.Debug("approved release",
		log.Stringer("milestone", key),
		log.Uint64("amount", milestone.Amount),
	)
	return nil
}

// ReleaseFunds consumes the milestone's entitlement and returns the amount
// to pay out.
func (r *Releaser) ReleaseFunds(ctx core.Context, projectID, milestoneID uint64) (uint64, error) {
	paused, err := r.Paused()
	if err != nil {
		return 0, err
	}
	if paused {
		return 0, ErrPaused
	}
	projectPaused, err := r.ProjectPaused(projectID)
	if err != nil {
		return 0, err
	}
	if projectPaused {
		return 0, fmt.Errorf("%w: project %d", ErrPaused, projectID)
	}

	projectKey := core.ProjectKey(projectID)
	project, ok, err := r.projects.Get(projectKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
	}
	key := core.MilestoneKey{ProjectID: projectID, MilestoneID: milestoneID}
	milestone, ok, err := r.milestones.Get(key.Bytes())
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMilestoneNotFound, key)
	}
	if !milestone.Approved {
		return 0, fmt.Errorf("%w: %s", ErrMilestoneNotApproved, key)
	}
	if milestone.Released {
		return 0, fmt.Errorf("%w: %s", ErrAlreadyReleased, key)
	}

	roles, err := r.Roles()
	if err != nil {
		return 0, err
	}
	if roles.FundingPool == ids.ShortEmpty {
		return 0, fmt.Errorf("%w: %s", ErrContractNotSet, ContractFundingPool)
	}
	if roles.OracleVerifier == ids.ShortEmpty {
		return 0, fmt.Errorf("%w: %s", ErrContractNotSet, ContractOracleVerifier)
	}

	released, err := safemath.Add64(project.ReleasedAmount, milestone.Amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOverflow, err)
	}
	if released > project.TotalBudget {
		return 0, fmt.Errorf("%w: %d released of %d budget, %d requested",
			ErrInsufficientFunds, project.ReleasedAmount, project.TotalBudget, milestone.Amount)
	}

	milestone.Released = true
	project.ReleasedAmount = released
	if err := r.milestones.Put(key.Bytes(), milestone); err != nil {
		return 0, err
	}
	if err := r.projects.Put(projectKey, project); err != nil {
		return 0, err
	}

	r.log.Info("released milestone funds",
		log.Stringer("milestone", key),
		log.Stringer("recipient", project.Recipient),
		log.Uint64("amount", milestone.Amount),
		log.Uint64("releasedAmount", project.ReleasedAmount),
	)
	return milestone.Amount, nil
}

func (r *Releaser) PauseProject(ctx core.Context, projectID uint64) error {
	if _, err := r.adminRoles(ctx); err != nil {
		return err
	}
	return r.projectPauses.Put(core.ProjectKey(projectID), &flag{Set: true})
}

func (r *Releaser) UnpauseProject(ctx core.Context, projectID uint64) error {
	if _, err := r.adminRoles(ctx); err != nil {
		return err
	}
	return r.projectPauses.Delete(core.ProjectKey(projectID))
}

// SetPaused sets the global pause that blocks every release.
func (r *Releaser) SetPaused(ctx core.Context, paused bool) error {
	if _, err := r.adminRoles(ctx); err != nil {
		return err
	}
	if err := r.paused.Put(singletonKey, &flag{Set: paused}); err != nil {
		return err
	}

	r.log.Info("set global release pause",
		log.Bool("paused", paused),
	)
	return nil
}

func (r *Releaser) adminRoles(ctx core.Context) (Roles, error) {
	roles, err := r.Roles()
	if err != nil {
		return Roles{}, err
	}
	if !ctx.HasRole(roles.Admin) {
		return Roles{}, ErrNotAuthorized
	}
	return roles, nil
}
