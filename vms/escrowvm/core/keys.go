// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
)

const (
	// ProjectKeyLen is the encoded length of a project id.
	ProjectKeyLen = 8
	// MilestoneKeyLen is the encoded length of a MilestoneKey.
	MilestoneKeyLen = 2 * ProjectKeyLen
	// ContributionKeyLen is the encoded length of a ContributionKey.
	ContributionKeyLen = ProjectKeyLen + len(ids.ShortEmpty)
)

var errInvalidKeyLen = errors.New("invalid key length")

// ProjectKey encodes a project id. Big-endian keeps database iteration order
// equal to numeric order.
func ProjectKey(projectID uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, ProjectKeyLen), projectID)
}

// MilestoneKey identifies a milestone within a project.
type MilestoneKey struct {
	ProjectID   uint64 `json:"projectId"`
	MilestoneID uint64 `json:"milestoneId"`
}

// Compare orders keys by project, then milestone.
func (k MilestoneKey) Compare(o MilestoneKey) int {
	if c := cmp.Compare(k.ProjectID, o.ProjectID); c != 0 {
		return c
	}
	return cmp.Compare(k.MilestoneID, o.MilestoneID)
}

func (k MilestoneKey) Less(o MilestoneKey) bool {
	return k.Compare(o) < 0
}

func (k MilestoneKey) Bytes() []byte {
	b := make([]byte, 0, MilestoneKeyLen)
	b = binary.BigEndian.AppendUint64(b, k.ProjectID)
	return binary.BigEndian.AppendUint64(b, k.MilestoneID)
}

func (k MilestoneKey) String() string {
	return fmt.Sprintf("%d/%d", k.ProjectID, k.MilestoneID)
}

// ParseMilestoneKey is the inverse of MilestoneKey.Bytes.
func ParseMilestoneKey(b []byte) (MilestoneKey, error) {
	if len(b) != MilestoneKeyLen {
		return MilestoneKey{}, fmt.Errorf("%w: expected %d bytes but got %d", errInvalidKeyLen, MilestoneKeyLen, len(b))
	}
	return MilestoneKey{
		ProjectID:   binary.BigEndian.Uint64(b[:ProjectKeyLen]),
		MilestoneID: binary.BigEndian.Uint64(b[ProjectKeyLen:]),
	}, nil
}

// ContributionKey identifies the running contribution of one contributor to
// one project.
type ContributionKey struct {
	ProjectID   uint64
	Contributor ids.ShortID
}

func (k ContributionKey) Bytes() []byte {
	b := make([]byte, 0, ContributionKeyLen)
	b = binary.BigEndian.AppendUint64(b, k.ProjectID)
	return append(b, k.Contributor[:]...)
}
