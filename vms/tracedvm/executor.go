// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tracedvm wraps escrow executors with OpenTelemetry spans.
package tracedvm

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/luxfi/ids"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/txs"
)

var _ txs.Executor = (*tracedExecutor)(nil)

type tracedExecutor struct {
	executor txs.Executor
	tracer   oteltrace.Tracer
}

func NewExecutor(executor txs.Executor, tracer oteltrace.Tracer) txs.Executor {
	return &tracedExecutor{
		executor: executor,
		tracer:   tracer,
	}
}

func (t *tracedExecutor) Execute(ctx context.Context, caller ids.ShortID, op txs.Operation) core.Result {
	ctx, span := t.tracer.Start(ctx, "tracedExecutor.Execute", oteltrace.WithAttributes(
		attribute.String("operation", op.Name),
		attribute.Stringer("caller", caller),
		attribute.Int("args", len(op.Args)),
	))
	defer span.End()

	result := t.executor.Execute(ctx, caller, op)
	if !result.Success {
		span.SetAttributes(
			attribute.String("component", result.Component),
			attribute.Int64("code", int64(result.Code)),
		)
		span.SetStatus(codes.Error, result.Message)
	}
	return result
}
