// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/luxfi/ids"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

// Args decodes positional arguments. The first decoding failure sticks and
// later calls return zero values, so handlers check Err once.
type Args struct {
	raw []json.RawMessage
	err error
}

// Expect binds op's arguments and checks their count.
func Expect(op Operation, n int) *Args {
	a := &Args{raw: op.Args}
	if len(op.Args) != n {
		a.err = fmt.Errorf("%w: %s takes %d but got %d", ErrWrongArity, op.Name, n, len(op.Args))
	}
	return a
}

func (a *Args) Err() error {
	return a.err
}

func (a *Args) fail(i int, what string, err error) {
	if a.err == nil {
		a.err = fmt.Errorf("%w: argument %d is not %s: %w", ErrInvalidArgument, i, what, err)
	}
}

func (a *Args) ok(i int) bool {
	return a.err == nil && i < len(a.raw)
}

// Uint64 accepts a JSON number or a decimal string.
func (a *Args) Uint64(i int) uint64 {
	if !a.ok(i) {
		return 0
	}
	raw := bytes.TrimSpace(a.raw[i])
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			a.fail(i, "a string", err)
			return 0
		}
		raw = []byte(s)
	}
	v, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		a.fail(i, "an unsigned integer", err)
	}
	return v
}

func (a *Args) String(i int) string {
	var s string
	if a.ok(i) {
		if err := json.Unmarshal(a.raw[i], &s); err != nil {
			a.fail(i, "a string", err)
		}
	}
	return s
}

func (a *Args) Bool(i int) bool {
	var b bool
	if a.ok(i) {
		if err := json.Unmarshal(a.raw[i], &b); err != nil {
			a.fail(i, "a boolean", err)
		}
	}
	return b
}

func (a *Args) Address(i int) ids.ShortID {
	s := a.String(i)
	if a.err != nil {
		return ids.ShortEmpty
	}
	addr, err := parseAddress(s)
	if err != nil {
		a.fail(i, "an address", err)
	}
	return addr
}

func (a *Args) Addresses(i int) []ids.ShortID {
	var strs []string
	if a.ok(i) {
		if err := json.Unmarshal(a.raw[i], &strs); err != nil {
			a.fail(i, "a list of addresses", err)
			return nil
		}
	}
	addrs := make([]ids.ShortID, 0, len(strs))
	for _, s := range strs {
		addr, err := parseAddress(s)
		if err != nil {
			a.fail(i, "a list of addresses", err)
			return nil
		}
		addrs = append(addrs, addr)
	}
	return addrs
}

// Hex decodes a hex string. The length is left to the component so that it
// can report its own proof hash error.
func (a *Args) Hex(i int) []byte {
	s := a.String(i)
	if a.err != nil {
		return nil
	}
	b, err := core.DecodeHex(s)
	if err != nil {
		a.fail(i, "hex", err)
	}
	return b
}

func parseAddress(s string) (ids.ShortID, error) {
	if s == "" {
		return ids.ShortEmpty, nil
	}
	return ids.ShortFromString(s)
}
