// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/ids"
)

// ProofHashLen is the only accepted proof hash length.
const ProofHashLen = ids.IDLen

var ErrInvalidProofHash = errors.New("invalid proof hash")

// ProofHash is an opaque 32-byte evidence digest.
type ProofHash = ids.ID

// ParseProofHash accepts exactly ProofHashLen bytes.
func ParseProofHash(b []byte) (ProofHash, error) {
	if len(b) != ProofHashLen {
		return ids.Empty, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidProofHash, ProofHashLen, len(b))
	}
	return ids.ToID(b)
}

// DecodeHex decodes a hex string with an optional 0x prefix. The length is
// not checked here so that callers can report it with their own error code.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}
