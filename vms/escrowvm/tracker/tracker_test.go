// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracker

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/escrowmock"
)

var (
	submittedProof = bytes.Repeat([]byte{0x11}, 32)
	oracleProof    = bytes.Repeat([]byte{0x22}, 32)

	errSinkFailed = errors.New("sink failed")
)

type testTracker struct {
	*Tracker
	admin    core.Context
	oracle   core.Context
	releaser core.Context
}

func newTestTracker(t *testing.T) *testTracker {
	require := require.New(t)

	tr := New(memdb.New(), 64, DefaultMaxOracles, log.NewNoOpLogger())
	tt := &testTracker{
		Tracker:  tr,
		admin:    core.Context{Caller: ids.GenerateTestShortID(), Height: 10},
		oracle:   core.Context{Caller: ids.GenerateTestShortID(), Height: 11},
		releaser: core.Context{Caller: ids.GenerateTestShortID(), Height: 12},
	}
	_, err := tr.Bootstrap(Roles{Admin: tt.admin.Caller})
	require.NoError(err)
	require.NoError(tr.SetOracleVerifier(tt.admin, tt.oracle.Caller))
	require.NoError(tr.SetFundReleaser(tt.admin, tt.releaser.Caller))
	require.NoError(tr.InitializeProject(tt.admin, 1, 3, []ids.ShortID{tt.oracle.Caller}))
	return tt
}

func (tt *testTracker) submit(t *testing.T, milestoneID uint64) {
	require.NoError(t, tt.SubmitMilestone(tt.admin, 1, milestoneID, "foundation", "poured and cured", 300_000, submittedProof))
}

func TestInitializeProject(t *testing.T) {
	require := require.New(t)

	tt := newTestTracker(t)

	project, ok, err := tt.Project(1)
	require.NoError(err)
	require.True(ok)
	require.Equal(Project{
		TotalMilestones: 3,
		Status:          ProjectActive,
		CreatedAt:       10,
		UpdatedAt:       10,
	}, project)

	oracles, err := tt.ProjectOracles(1)
	require.NoError(err)
	require.Equal([]ids.ShortID{tt.oracle.Caller}, oracles)

	require.ErrorIs(tt.InitializeProject(tt.oracle, 2, 1, nil), ErrNotAuthorized)
	require.ErrorIs(tt.InitializeProject(tt.admin, 1, 1, nil), ErrAlreadyInitialized)
	require.ErrorIs(tt.InitializeProject(tt.admin, 2, 0, nil), ErrInvalidMilestone)

	oracles = make([]ids.ShortID, DefaultMaxOracles+1)
	require.ErrorIs(tt.InitializeProject(tt.admin, 2, 1, oracles), ErrTooManyOracles)
	require.NoError(tt.InitializeProject(tt.admin, 2, 1, oracles[:DefaultMaxOracles]))
}

func TestProjectOraclesAreCopied(t *testing.T) {
	require := require.New(t)

	tt := newTestTracker(t)
	first := ids.GenerateTestShortID()
	second := ids.GenerateTestShortID()
	input := []ids.ShortID{first, second}
	require.NoError(tt.InitializeProject(tt.admin, 2, 1, input))

	// Neither the caller's slice nor a returned roster aliases stored state.
	input[0] = ids.GenerateTestShortID()
	oracles, err := tt.ProjectOracles(2)
	require.NoError(err)
	require.Equal([]ids.ShortID{first, second}, oracles)

	oracles[1] = ids.GenerateTestShortID()
	oracles, err = tt.ProjectOracles(2)
	require.NoError(err)
	require.Equal([]ids.ShortID{first, second}, oracles)
}

func TestSubmitMilestone(t *testing.T) {
	tests := []struct {
		name        string
		caller      func(*testTracker) core.Context
		projectID   uint64
		milestoneID uint64
		amount      uint64
		proof       []byte
		expectedErr error
	}{
		{
			name:        "valid",
			caller:      func(tt *testTracker) core.Context { return tt.admin },
			projectID:   1,
			milestoneID: 2,
			amount:      1,
			proof:       submittedProof,
		},
		{
			name:        "not admin",
			caller:      func(tt *testTracker) core.Context { return tt.oracle },
			projectID:   1,
			milestoneID: 2,
			amount:      1,
			proof:       submittedProof,
			expectedErr: ErrNotAuthorized,
		},
		{
			name:        "unknown project",
			caller:      func(tt *testTracker) core.Context { return tt.admin },
			projectID:   9,
			amount:      1,
			proof:       submittedProof,
			expectedErr: ErrProjectNotFound,
		},
		{
			name:        "duplicate",
			caller:      func(tt *testTracker) core.Context { return tt.admin },
			projectID:   1,
			milestoneID: 0,
			amount:      1,
			proof:       submittedProof,
			expectedErr: ErrMilestoneExists,
		},
		{
			name:        "zero amount",
			caller:      func(tt *testTracker) core.Context { return tt.admin },
			projectID:   1,
			milestoneID: 2,
			proof:       submittedProof,
			expectedErr: ErrInvalidAmount,
		},
		{
			name:        "31 byte proof",
			caller:      func(tt *testTracker) core.Context { return tt.admin },
			projectID:   1,
			milestoneID: 2,
			amount:      1,
			proof:       submittedProof[:31],
			expectedErr: ErrInvalidProofHash,
		},
		{
			name:        "milestone id out of range",
			caller:      func(tt *testTracker) core.Context { return tt.admin },
			projectID:   1,
			milestoneID: 3,
			amount:      1,
			proof:       submittedProof,
			expectedErr: ErrInvalidMilestone,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			tt := newTestTracker(t)
			tt.submit(t, 0)

			err := tt.SubmitMilestone(test.caller(tt), test.projectID, test.milestoneID, "t", "d", test.amount, test.proof)
			require.ErrorIs(err, test.expectedErr)

			key := core.MilestoneKey{ProjectID: test.projectID, MilestoneID: test.milestoneID}
			milestone, ok, err := tt.Milestone(key)
			require.NoError(err)
			if test.expectedErr != nil {
				if test.milestoneID != 0 {
					require.False(ok)
				}
				return
			}
			require.True(ok)
			require.Equal(Submitted, milestone.Status)
			require.Equal(tt.admin.Caller, milestone.Submitter)
			require.Equal(uint64(10), milestone.SubmittedAt)
			require.False(milestone.HasApprovedAt)
		})
	}
}

func TestCertificationWorkflow(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	tt := newTestTracker(t)
	key := core.MilestoneKey{ProjectID: 1, MilestoneID: 0}

	sink := escrowmock.NewCertificationSink(ctrl)
	sink.EXPECT().MilestoneCertified(tt.releaser, key).Return(nil)
	tt.SetSink(sink)

	tt.submit(t, 0)

	// Approval before attestation is rejected.
	require.ErrorIs(tt.ApproveMilestone(tt.releaser, 1, 0), ErrInvalidStatus)

	require.ErrorIs(tt.OracleApprove(tt.admin, 1, 0, oracleProof), ErrNotAuthorized)
	require.ErrorIs(tt.OracleApprove(tt.oracle, 1, 1, oracleProof), ErrMilestoneNotFound)
	require.ErrorIs(tt.OracleApprove(tt.oracle, 1, 0, oracleProof[:31]), ErrInvalidProofHash)
	require.NoError(tt.OracleApprove(tt.oracle, 1, 0, oracleProof))
	require.ErrorIs(tt.OracleApprove(tt.oracle, 1, 0, oracleProof), ErrInvalidStatus)

	milestone, _, err := tt.Milestone(key)
	require.NoError(err)
	require.Equal(OracleVerified, milestone.Status)
	require.True(milestone.HasApprovedAt)
	require.Equal(uint64(11), milestone.ApprovedAt)
	require.Equal(oracleProof, milestone.ProofHash[:])

	certified, err := tt.Certified(key)
	require.NoError(err)
	require.False(certified)

	require.ErrorIs(tt.ApproveMilestone(tt.oracle, 1, 0), ErrNotAuthorized)
	require.NoError(tt.ApproveMilestone(tt.releaser, 1, 0))
	require.ErrorIs(tt.ApproveMilestone(tt.releaser, 1, 0), ErrAlreadyApproved)
	require.ErrorIs(tt.OracleApprove(tt.oracle, 1, 0, oracleProof), ErrInvalidStatus)

	certified, err = tt.Certified(key)
	require.NoError(err)
	require.True(certified)

	project, _, err := tt.Project(1)
	require.NoError(err)
	require.Equal(uint64(1), project.ApprovedCount)
	require.Equal(uint64(12), project.UpdatedAt)
}

func TestApproveMilestoneSinkError(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	tt := newTestTracker(t)
	sink := escrowmock.NewCertificationSink(ctrl)
	sink.EXPECT().MilestoneCertified(gomock.Any(), gomock.Any()).Return(errSinkFailed)
	tt.SetSink(sink)

	tt.submit(t, 0)
	require.NoError(tt.OracleApprove(tt.oracle, 1, 0, oracleProof))
	require.ErrorIs(tt.ApproveMilestone(tt.releaser, 1, 0), errSinkFailed)
}

func TestUnsetRoles(t *testing.T) {
	require := require.New(t)

	tt := newTestTracker(t)
	tt.submit(t, 0)

	require.NoError(tt.SetOracleVerifier(tt.admin, ids.ShortEmpty))
	require.ErrorIs(tt.OracleApprove(tt.oracle, 1, 0, oracleProof), ErrNotOracle)

	require.NoError(tt.SetFundReleaser(tt.admin, ids.ShortEmpty))
	require.ErrorIs(tt.ApproveMilestone(tt.releaser, 1, 0), ErrNotReleaser)

	require.ErrorIs(tt.SetFundReleaser(tt.oracle, tt.oracle.Caller), ErrNotAuthorized)
	require.ErrorIs(tt.SetOracleVerifier(tt.releaser, tt.releaser.Caller), ErrNotAuthorized)
}

func TestForwardOnlyStatus(t *testing.T) {
	require := require.New(t)

	tt := newTestTracker(t)
	key := core.MilestoneKey{ProjectID: 1, MilestoneID: 0}
	tt.submit(t, 0)

	var last Status
	attempts := []func() error{
		func() error { return tt.ApproveMilestone(tt.releaser, 1, 0) },
		func() error { return tt.OracleApprove(tt.oracle, 1, 0, oracleProof) },
		func() error { return tt.OracleApprove(tt.oracle, 1, 0, oracleProof) },
		func() error { return tt.ApproveMilestone(tt.releaser, 1, 0) },
		func() error { return tt.OracleApprove(tt.oracle, 1, 0, oracleProof) },
		func() error { return tt.ApproveMilestone(tt.releaser, 1, 0) },
	}
	for _, attempt := range attempts {
		_ = attempt()
		milestone, _, err := tt.Milestone(key)
		require.NoError(err)
		require.GreaterOrEqual(milestone.Status, last)
		last = milestone.Status
	}
	require.Equal(Approved, last)
}

func TestMilestonesOrdered(t *testing.T) {
	require := require.New(t)

	tt := newTestTracker(t)
	for _, id := range []uint64{2, 0, 1} {
		tt.submit(t, id)
	}

	entries, err := tt.Milestones(1)
	require.NoError(err)
	require.Len(entries, 3)
	for i, entry := range entries {
		require.Equal(core.MilestoneKey{ProjectID: 1, MilestoneID: uint64(i)}, entry.Key)
	}

	entries, err = tt.Milestones(2)
	require.NoError(err)
	require.Empty(entries)
}

func TestPendingQueue(t *testing.T) {
	require := require.New(t)

	tt := newTestTracker(t)
	require.NoError(tt.InitializeProject(tt.admin, 2, 2, nil))
	tt.submit(t, 1)
	tt.submit(t, 0)
	require.NoError(tt.SubmitMilestone(tt.admin, 2, 0, "t", "d", 1, submittedProof))

	// The queue is built from storage on first use.
	pending, err := tt.Pending(Submitted, nil, 10)
	require.NoError(err)
	require.Equal([]core.MilestoneKey{
		{ProjectID: 1, MilestoneID: 0},
		{ProjectID: 1, MilestoneID: 1},
		{ProjectID: 2, MilestoneID: 0},
	}, pending)

	require.NoError(tt.OracleApprove(tt.oracle, 1, 1, oracleProof))

	pending, err = tt.Pending(Submitted, &core.MilestoneKey{ProjectID: 1, MilestoneID: 0}, 10)
	require.NoError(err)
	require.Equal([]core.MilestoneKey{{ProjectID: 2, MilestoneID: 0}}, pending)

	verified, err := tt.Pending(OracleVerified, nil, 10)
	require.NoError(err)
	require.Equal([]core.MilestoneKey{{ProjectID: 1, MilestoneID: 1}}, verified)

	require.NoError(tt.ApproveMilestone(tt.releaser, 1, 1))
	verified, err = tt.Pending(OracleVerified, nil, 10)
	require.NoError(err)
	require.Empty(verified)

	// Flushing drops the index; the rebuilt one matches.
	tt.Flush()
	pending, err = tt.Pending(Submitted, nil, 1)
	require.NoError(err)
	require.Equal([]core.MilestoneKey{{ProjectID: 1, MilestoneID: 0}}, pending)
}
