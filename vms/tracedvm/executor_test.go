// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tracedvm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/luxfi/ids"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/txs"
)

type executorFunc func(context.Context, ids.ShortID, txs.Operation) core.Result

func (f executorFunc) Execute(ctx context.Context, caller ids.ShortID, op txs.Operation) core.Result {
	return f(ctx, caller, op)
}

func TestTracedExecutor(t *testing.T) {
	require := require.New(t)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() {
		require.NoError(provider.Shutdown(context.Background()))
	}()

	inner := executorFunc(func(_ context.Context, _ ids.ShortID, op txs.Operation) core.Result {
		if op.Name == txs.PoolContribute {
			return core.Ok(uint64(5))
		}
		return core.Fail("funding-pool", 106, errors.New("pool is emergency locked"))
	})
	executor := NewExecutor(inner, provider.Tracer("test"))
	caller := ids.GenerateTestShortID()

	result := executor.Execute(context.Background(), caller, txs.Operation{Name: txs.PoolContribute})
	require.True(result.Success)
	result = executor.Execute(context.Background(), caller, txs.Operation{Name: txs.PoolToggleEmergencyLock})
	require.False(result.Success)

	spans := recorder.Ended()
	require.Len(spans, 2)
	require.Equal("tracedExecutor.Execute", spans[0].Name())
	require.Contains(spans[0].Attributes(), attribute.String("operation", txs.PoolContribute))
	require.Contains(spans[0].Attributes(), attribute.String("caller", caller.String()))
	require.Equal(codes.Unset, spans[0].Status().Code)

	require.Equal(codes.Error, spans[1].Status().Code)
	require.Contains(spans[1].Attributes(), attribute.Int64("code", 106))
}
