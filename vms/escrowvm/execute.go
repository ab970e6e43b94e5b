// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package escrowvm

import (
	"context"
	"fmt"
	"time"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/txs"
)

type handler struct {
	// coders resolve the handler's errors, in order of precedence.
	coders []*core.Coder
	run    func(ctx core.Context, op txs.Operation) (any, error)
}

type flow struct {
	name   string
	amount uint64
}

// Execute runs op as caller. The operation either commits completely or
// leaves no trace.
func (vm *VM) Execute(_ context.Context, caller ids.ShortID, op txs.Operation) core.Result {
	start := time.Now()

	vm.lock.Lock()
	defer vm.lock.Unlock()

	result := vm.execute(caller, op)
	if vm.metrics != nil {
		vm.metrics.MarkOperation(op.Name, result, time.Since(start))
	}
	return result
}

func (vm *VM) execute(caller ids.ShortID, op txs.Operation) core.Result {
	switch {
	case vm.db == nil:
		return core.Fail(core.SurfaceComponent, core.CodeInternal, ErrNotInitialized)
	case vm.shutdown:
		return core.Fail(core.SurfaceComponent, core.CodeInternal, ErrShutdown)
	}

	h, ok := vm.handlers[op.Name]
	if !ok {
		err := fmt.Errorf("%w: %q", txs.ErrUnknownOperation, op.Name)
		result, _ := core.Resolve(err, txs.Invalid)
		return result
	}

	ctx := core.Context{
		Caller: caller,
		Height: vm.height + 1,
	}
	value, err := h.run(ctx, op)
	if err == nil {
		err = database.PutUInt64(vm.metadata, heightKey, ctx.Height)
	}
	if err == nil {
		err = vm.db.Commit()
	}
	if err != nil {
		vm.abort()

		result, known := core.Resolve(err, append([]*core.Coder{txs.Invalid}, h.coders...)...)
		if !known {
			vm.log.Error("operation failed",
				log.String("operation", op.Name),
				log.Stringer("caller", caller),
				log.Err(err),
			)
		} else {
			vm.log.Debug("operation rejected",
				log.String("operation", op.Name),
				log.Stringer("caller", caller),
				log.String("component", result.Component),
				log.Uint32("code", uint32(result.Code)),
				log.Err(err),
			)
		}
		return result
	}

	vm.height = ctx.Height
	if vm.metrics != nil {
		vm.metrics.SetHeight(vm.height)
		for _, f := range vm.flows {
			vm.metrics.MarkFlow(f.name, f.amount)
		}
	}
	vm.flows = vm.flows[:0]

	vm.log.Debug("operation committed",
		log.String("operation", op.Name),
		log.Stringer("caller", caller),
		log.Uint64("height", vm.height),
	)
	return core.Ok(value)
}

// abort discards the uncommitted writes of the current operation along with
// every cached record that may reflect them.
func (vm *VM) abort() {
	vm.db.Abort()
	vm.pool.Flush()
	vm.tracker.Flush()
	vm.releaser.Flush()
	vm.flows = vm.flows[:0]
}

func (vm *VM) markFlow(name string, amount uint64) {
	vm.flows = append(vm.flows, flow{name: name, amount: amount})
}
