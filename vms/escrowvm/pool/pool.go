// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pool implements the funding pool: per-project custody balances fed
// by contributions and drained only by the registered fund releaser.
package pool

import (
	"encoding/binary"
	"fmt"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	safemath "github.com/luxfi/math"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/state"
)

var (
	rolesPrefix        = []byte("roles")
	statusPrefix       = []byte("status")
	projectPrefix      = []byte("project")
	contributionPrefix = []byte("contribution")
	transferPrefix     = []byte("transfer")

	singletonKey = []byte{0}
)

// Pool is the custody component. It is not safe for concurrent use.
type Pool struct {
	log log.Logger

	roles         *state.Table[Roles]
	status        *state.Table[status]
	projects      *state.Table[Project]
	contributions *state.Table[Contribution]
	transfers     *state.Table[Transfer]
}

func New(db database.Database, cacheSize int, logger log.Logger) *Pool {
	return &Pool{
		log:           logger,
		roles:         state.NewTable[Roles](db, rolesPrefix, 1),
		status:        state.NewTable[status](db, statusPrefix, 1),
		projects:      state.NewTable[Project](db, projectPrefix, cacheSize),
		contributions: state.NewTable[Contribution](db, contributionPrefix, cacheSize),
		transfers:     state.NewTable[Transfer](db, transferPrefix, cacheSize),
	}
}

// Bootstrap persists the initial role bindings. It is a no-op once roles
// exist, so the admin stays fixed after the first start.
func (p *Pool) Bootstrap(roles Roles) (bool, error) {
	exists, err := p.roles.Has(singletonKey)
	if err != nil || exists {
		return false, err
	}
	return true, p.roles.Put(singletonKey, &roles)
}

// Flush drops cached records after an aborted operation.
func (p *Pool) Flush() {
	p.roles.Flush()
	p.status.Flush()
	p.projects.Flush()
	p.contributions.Flush()
	p.transfers.Flush()
}

func (p *Pool) InitializeProject(ctx core.Context, projectID, targetAmount uint64) error {
	roles, err := p.Roles()
	if err != nil {
		return err
	}
	if !ctx.HasRole(roles.Admin) {
		return ErrNotAuthorized
	}

	key := core.ProjectKey(projectID)
	exists, err := p.projects.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: project %d", ErrAlreadyInitialized, projectID)
	}
	if targetAmount == 0 {
		return ErrInvalidAmount
	}

	if err := p.projects.Put(key, &Project{
		TargetAmount: targetAmount,
		CreatedAt:    ctx.Height,
	}); err != nil {
		return err
	}

	p.log.Debug("initialized pool project",
		log.Uint64("projectID", projectID),
		log.Uint64("targetAmount", targetAmount),
	)
	return nil
}

// Contribute deposits amount from the caller into the project's balance and
// returns the accepted amount.
func (p *Pool) Contribute(ctx core.Context, projectID, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrInvalidAmount
	}
	st, err := p.getStatus()
	if err != nil {
		return 0, err
	}
	if st.EmergencyLocked {
		return 0, ErrEmergencyLocked
	}

	projectKey := core.ProjectKey(projectID)
	project, ok, err := p.projects.Get(projectKey)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
	}

	contributionKey := core.ContributionKey{ProjectID: projectID, Contributor: ctx.Caller}.Bytes()
	contribution, _, err := p.contributions.Get(contributionKey)
	if err != nil {
		return 0, err
	}
	if contribution == nil {
		contribution = &Contribution{}
	}

	if project.Balance, err = safemath.Add64(project.Balance, amount); err != nil {
		return 0, fmt.Errorf("%w: project balance: %w", ErrOverflow, err)
	}
	if contribution.Amount, err = safemath.Add64(contribution.Amount, amount); err != nil {
		return 0, fmt.Errorf("%w: contribution: %w", ErrOverflow, err)
	}
	if st.Custody, err = safemath.Add64(st.Custody, amount); err != nil {
		return 0, fmt.Errorf("%w: custody: %w", ErrOverflow, err)
	}

	if err := p.projects.Put(projectKey, project); err != nil {
		return 0, err
	}
	if err := p.contributions.Put(contributionKey, contribution); err != nil {
		return 0, err
	}
	transfer, err := p.journal(ctx, st, Inbound, projectID, ctx.Caller, amount)
	if err != nil {
		return 0, err
	}

	p.log.Debug("accepted contribution",
		log.Uint64("projectID", projectID),
		log.Stringer("contributor", ctx.Caller),
		log.Uint64("amount", amount),
		log.Stringer("transferID", transfer.ID),
	)
	return amount, nil
}

// RequestWithdrawal moves amount out of the project's balance to recipient.
// Only the registered fund releaser may withdraw.
func (p *Pool) RequestWithdrawal(ctx core.Context, projectID, amount uint64, recipient ids.ShortID) error {
	roles, err := p.Roles()
	if err != nil {
		return err
	}
	if roles.FundReleaser == ids.ShortEmpty {
		return ErrNotReleaser
	}
	if ctx.Caller != roles.FundReleaser {
		return ErrNotAuthorized
	}

	projectKey := core.ProjectKey(projectID)
	project, ok, err := p.projects.Get(projectKey)
	if err != nil {
		return err
	}
	var balance uint64
	if ok {
		balance = project.Balance
	}
	if amount > balance {
		return fmt.Errorf("%w: requested %d but project %d holds %d", ErrInsufficientBalance, amount, projectID, balance)
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	st, err := p.getStatus()
	if err != nil {
		return err
	}
	project.Balance -= amount
	if st.Custody, err = safemath.Sub(st.Custody, amount); err != nil {
		return fmt.Errorf("custody below project balance: %w", err)
	}

	if err := p.projects.Put(projectKey, project); err != nil {
		return err
	}
	transfer, err := p.journal(ctx, st, Outbound, projectID, recipient, amount)
	if err != nil {
		return err
	}

	p.log.Debug("released pool funds",
		log.Uint64("projectID", projectID),
		log.Stringer("recipient", recipient),
		log.Uint64("amount", amount),
		log.Stringer("transferID", transfer.ID),
	)
	return nil
}

func (p *Pool) SetFundReleaser(ctx core.Context, releaser ids.ShortID) error {
	roles, err := p.Roles()
	if err != nil {
		return err
	}
	if !ctx.HasRole(roles.Admin) {
		return ErrNotAuthorized
	}
	roles.FundReleaser = releaser
	return p.roles.Put(singletonKey, &roles)
}

// ToggleEmergencyLock flips the lock and returns the new state.
func (p *Pool) ToggleEmergencyLock(ctx core.Context) (bool, error) {
	roles, err := p.Roles()
	if err != nil {
		return false, err
	}
	if !ctx.HasRole(roles.Admin) {
		return false, ErrNotAuthorized
	}

	st, err := p.getStatus()
	if err != nil {
		return false, err
	}
	st.EmergencyLocked = !st.EmergencyLocked
	if err := p.status.Put(singletonKey, st); err != nil {
		return false, err
	}

	p.log.Info("toggled emergency lock",
		log.Bool("locked", st.EmergencyLocked),
	)
	return st.EmergencyLocked, nil
}

func (p *Pool) journal(
	ctx core.Context,
	st *status,
	direction Direction,
	projectID uint64,
	account ids.ShortID,
	amount uint64,
) (*Transfer, error) {
	transfer := &Transfer{
		Sequence:  st.Transfers,
		Direction: direction,
		ProjectID: projectID,
		Account:   account,
		Amount:    amount,
		Height:    ctx.Height,
	}
	bytes, err := state.Codec.Marshal(state.CodecVersion, transfer)
	if err != nil {
		return nil, err
	}
	transfer.ID = hash.ComputeHash256Array(bytes)

	if err := p.transfers.Put(sequenceKey(st.Transfers), transfer); err != nil {
		return nil, err
	}
	st.Transfers++
	return transfer, p.status.Put(singletonKey, st)
}

func (p *Pool) getStatus() (*status, error) {
	st, ok, err := p.status.Get(singletonKey)
	if err != nil || ok {
		return st, err
	}
	return &status{}, nil
}

func sequenceKey(seq uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, seq)
}
