// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	errFirst  = errors.New("first")
	errSecond = errors.New("second")
)

func TestResultJSON(t *testing.T) {
	require := require.New(t)

	b, err := json.Marshal(Ok(false))
	require.NoError(err)
	require.JSONEq(`{"success":true,"value":false}`, string(b))

	b, err = json.Marshal(Fail("funding-pool", 106, errFirst))
	require.NoError(err)
	require.JSONEq(`{"success":false,"code":106,"component":"funding-pool","message":"first"}`, string(b))

	var parsed Result
	require.NoError(json.Unmarshal(b, &parsed))
	require.False(parsed.Success)
	require.Equal(Code(106), parsed.Code)
	require.Equal("funding-pool", parsed.Component)
}

func TestResolve(t *testing.T) {
	require := require.New(t)

	first := NewCoder("first", CodeEntry{Err: errFirst, Code: 100})
	second := NewCoder("second", CodeEntry{Err: errSecond, Code: 101})

	result, known := Resolve(fmt.Errorf("%w: with context", errSecond), first, second)
	require.True(known)
	require.Equal(Code(101), result.Code)
	require.Equal("second", result.Component)

	result, known = Resolve(errors.New("disk on fire"), first, second)
	require.False(known)
	require.Equal(CodeInternal, result.Code)
	require.Equal(SurfaceComponent, result.Component)

	var resultErr *ResultError
	require.ErrorAs(result.Err(), &resultErr)
	require.Equal(CodeInternal, resultErr.Code)
	require.NoError(Ok(nil).Err())
}
