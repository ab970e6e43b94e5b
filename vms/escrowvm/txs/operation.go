// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the named-operation surface of the escrow VM.
package txs

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/luxfi/ids"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrWrongArity       = errors.New("wrong number of arguments")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// Invalid covers every malformed-operation error.
var Invalid = core.NewCoder(core.SurfaceComponent,
	core.CodeEntry{Err: ErrUnknownOperation, Code: core.CodeInvalidOperation},
	core.CodeEntry{Err: ErrWrongArity, Code: core.CodeInvalidOperation},
	core.CodeEntry{Err: ErrInvalidArgument, Code: core.CodeInvalidOperation},
)

// Operation is a single named invocation with positional arguments.
type Operation struct {
	Name string            `json:"name"`
	Args []json.RawMessage `json:"args"`
}

// New encodes args into an Operation.
func New(name string, args ...any) (Operation, error) {
	op := Operation{
		Name: name,
		Args: make([]json.RawMessage, len(args)),
	}
	for i, arg := range args {
		b, err := json.Marshal(arg)
		if err != nil {
			return Operation{}, err
		}
		op.Args[i] = b
	}
	return op, nil
}

// Component returns the component prefix of the operation name.
func (o Operation) Component() string {
	component, _, _ := strings.Cut(o.Name, ".")
	return component
}

// Executor runs operations on behalf of an authenticated caller.
type Executor interface {
	Execute(ctx context.Context, caller ids.ShortID, op Operation) core.Result
}
