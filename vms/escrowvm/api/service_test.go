// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/pool"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/tracker"
	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/txs"
)

type executorFunc func(ctx context.Context, caller ids.ShortID, op txs.Operation) core.Result

func (f executorFunc) Execute(ctx context.Context, caller ids.ShortID, op txs.Operation) core.Result {
	return f(ctx, caller, op)
}

// fakeVM serves canned reads. Methods a test does not override panic.
type fakeVM struct {
	VM

	project pool.Project
	pending []core.MilestoneKey

	gotStatus tracker.Status
	gotAfter  *core.MilestoneKey
	gotLimit  int
}

func (f *fakeVM) PoolProject(uint64) (pool.Project, bool, error) {
	return f.project, true, nil
}

func (*fakeVM) TotalCustody() (uint64, error) {
	return 750, nil
}

func (f *fakeVM) PendingMilestones(status tracker.Status, after *core.MilestoneKey, limit int) ([]core.MilestoneKey, error) {
	f.gotStatus = status
	f.gotAfter = after
	f.gotLimit = limit
	return f.pending, nil
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, handler http.Handler, caller string, method string, params string) rpcResponse {
	t.Helper()
	require := require.New(t)

	body := `{"jsonrpc":"2.0","id":1,"method":"` + method + `","params":` + params + `}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if caller != "" {
		r.Header.Set(CallerHeader, caller)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(http.StatusOK, w.Code, w.Body.String())

	var resp rpcResponse
	require.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestInvoke(t *testing.T) {
	require := require.New(t)

	caller := ids.GenerateTestShortID()
	var (
		gotCaller ids.ShortID
		gotOp     txs.Operation
	)
	executor := executorFunc(func(_ context.Context, c ids.ShortID, op txs.Operation) core.Result {
		gotCaller = c
		gotOp = op
		return core.Ok(uint64(500))
	})
	handler, err := NewServer(executor, &fakeVM{}, nil, log.NewNoOpLogger())
	require.NoError(err)

	resp := call(t, handler, caller.String(), "escrow.invoke",
		`{"name":"funding-pool.contribute","args":[1,"500"]}`,
	)
	require.Nil(resp.Error)
	require.JSONEq(`{"success":true,"value":500}`, string(resp.Result))

	require.Equal(caller, gotCaller)
	require.Equal(txs.PoolContribute, gotOp.Name)
	require.Len(gotOp.Args, 2)
	require.JSONEq(`"500"`, string(gotOp.Args[1]))
}

func TestInvokeFailureIsAResult(t *testing.T) {
	require := require.New(t)

	executor := executorFunc(func(context.Context, ids.ShortID, txs.Operation) core.Result {
		return core.Fail(pool.Component, 106, pool.ErrEmergencyLocked)
	})
	handler, err := NewServer(executor, &fakeVM{}, nil, log.NewNoOpLogger())
	require.NoError(err)

	resp := call(t, handler, ids.GenerateTestShortID().String(), "escrow.Invoke",
		`{"name":"funding-pool.contribute","args":[1,1]}`,
	)
	require.Nil(resp.Error)

	var result core.Result
	require.NoError(json.Unmarshal(resp.Result, &result))
	require.False(result.Success)
	require.Equal(core.Code(106), result.Code)
	require.Equal(pool.Component, result.Component)
	require.Equal(pool.ErrEmergencyLocked.Error(), result.Message)
}

func TestInvokeRequiresCaller(t *testing.T) {
	require := require.New(t)

	executed := false
	executor := executorFunc(func(context.Context, ids.ShortID, txs.Operation) core.Result {
		executed = true
		return core.Ok(nil)
	})
	handler, err := NewServer(executor, &fakeVM{}, nil, log.NewNoOpLogger())
	require.NoError(err)

	resp := call(t, handler, "", "escrow.invoke", `{"name":"funding-pool.toggleEmergencyLock","args":[]}`)
	require.NotNil(resp.Error)
	require.Contains(resp.Error.Message, CallerHeader)

	resp = call(t, handler, "not-an-id", "escrow.invoke", `{"name":"funding-pool.toggleEmergencyLock","args":[]}`)
	require.NotNil(resp.Error)
	require.False(executed)
}

func TestGetPoolBalance(t *testing.T) {
	require := require.New(t)

	vm := &fakeVM{
		project: pool.Project{
			TargetAmount: 1_000,
			Balance:      600,
		},
	}
	handler, err := NewServer(nil, vm, nil, log.NewNoOpLogger())
	require.NoError(err)

	resp := call(t, handler, "", "escrow.getPoolBalance", `{"projectId":"1"}`)
	require.Nil(resp.Error)

	var reply BalanceReply
	require.NoError(json.Unmarshal(resp.Result, &reply))
	require.True(reply.Found)
	require.Equal(uint64(600), uint64(reply.Balance))
	require.Equal(uint64(1_000), uint64(reply.TargetAmount))
	require.Equal(uint64(750), uint64(reply.TotalCustody))
}

func TestListPending(t *testing.T) {
	require := require.New(t)

	key := core.MilestoneKey{ProjectID: 3, MilestoneID: 4}
	vm := &fakeVM{pending: []core.MilestoneKey{key}}
	handler, err := NewServer(nil, vm, nil, log.NewNoOpLogger())
	require.NoError(err)

	resp := call(t, handler, "", "escrow.listPending",
		`{"status":"oracle-verified","after":{"projectId":"3","milestoneId":"1"},"limit":5000}`,
	)
	require.Nil(resp.Error)

	var reply PendingReply
	require.NoError(json.Unmarshal(resp.Result, &reply))
	require.Equal([]core.MilestoneKey{key}, reply.Keys)
	require.Equal(tracker.OracleVerified, vm.gotStatus)
	require.Equal(&core.MilestoneKey{ProjectID: 3, MilestoneID: 1}, vm.gotAfter)
	require.Equal(maxPageSize, vm.gotLimit)

	resp = call(t, handler, "", "escrow.listPending", `{"status":"approved"}`)
	require.NotNil(resp.Error)
	require.Contains(resp.Error.Message, errInvalidStatus.Error())
}
