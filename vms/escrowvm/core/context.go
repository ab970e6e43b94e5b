// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package core holds the primitives shared by the escrow components: the
// execution context, composite keys, proof hashes and operation results.
package core

import "github.com/luxfi/ids"

// Context is the environment a single escrow operation executes in.
type Context struct {
	// Caller is the already-authenticated identity invoking the operation.
	Caller ids.ShortID
	// Height is the sequence marker of the operation.
	Height uint64
}

// HasRole reports whether the caller is bound to role. An unset role never
// matches, even for an empty caller.
func (c Context) HasRole(role ids.ShortID) bool {
	return role != ids.ShortEmpty && c.Caller == role
}
