// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"bytes"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
)

func TestMilestoneKeyOrder(t *testing.T) {
	require := require.New(t)

	keys := []MilestoneKey{
		{ProjectID: 2, MilestoneID: 0},
		{ProjectID: 1, MilestoneID: 256},
		{ProjectID: 1, MilestoneID: 3},
		{ProjectID: 0, MilestoneID: 1 << 40},
	}
	sorted := slices.Clone(keys)
	slices.SortFunc(sorted, MilestoneKey.Compare)

	require.Equal([]MilestoneKey{
		{ProjectID: 0, MilestoneID: 1 << 40},
		{ProjectID: 1, MilestoneID: 3},
		{ProjectID: 1, MilestoneID: 256},
		{ProjectID: 2, MilestoneID: 0},
	}, sorted)

	// The byte encoding sorts the same way as the keys themselves.
	for i := 1; i < len(sorted); i++ {
		require.True(sorted[i-1].Less(sorted[i]))
		require.Negative(bytes.Compare(sorted[i-1].Bytes(), sorted[i].Bytes()))
	}
}

func TestMilestoneKeyRoundTrip(t *testing.T) {
	require := require.New(t)

	key := MilestoneKey{ProjectID: 7, MilestoneID: 9}
	parsed, err := ParseMilestoneKey(key.Bytes())
	require.NoError(err)
	require.Equal(key, parsed)
	require.Equal("7/9", key.String())

	_, err = ParseMilestoneKey([]byte{1, 2, 3})
	require.ErrorIs(err, errInvalidKeyLen)
}

func TestContributionKeyLayout(t *testing.T) {
	require := require.New(t)

	contributor := ids.GenerateTestShortID()
	b := ContributionKey{ProjectID: 1, Contributor: contributor}.Bytes()
	require.Len(b, ContributionKeyLen)
	require.Equal(ProjectKey(1), b[:ProjectKeyLen])
	require.Equal(contributor[:], b[ProjectKeyLen:])
}

func TestHasRole(t *testing.T) {
	require := require.New(t)

	admin := ids.GenerateTestShortID()
	require.True(Context{Caller: admin}.HasRole(admin))
	require.False(Context{Caller: ids.GenerateTestShortID()}.HasRole(admin))
	require.False(Context{Caller: ids.ShortEmpty}.HasRole(ids.ShortEmpty))
}
