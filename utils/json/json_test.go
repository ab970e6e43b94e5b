// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	stdjson "encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64(t *testing.T) {
	require := require.New(t)

	b, err := stdjson.Marshal(Uint64(math.MaxUint64))
	require.NoError(err)
	require.JSONEq(`"18446744073709551615"`, string(b))

	var u Uint64
	require.NoError(stdjson.Unmarshal([]byte(`"42"`), &u))
	require.Equal(Uint64(42), u)
	require.NoError(stdjson.Unmarshal([]byte(`43`), &u))
	require.Equal(Uint64(43), u)
	require.NoError(stdjson.Unmarshal([]byte(`null`), &u))
	require.Equal(Uint64(43), u)
	require.Error(stdjson.Unmarshal([]byte(`"-1"`), &u))
}
