// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistrationFailure(t *testing.T) {
	require := require.New(t)

	reg := prometheus.NewRegistry()

	metrics1, err := newMetrics(reg)
	require.NoError(err)
	require.NotNil(metrics1)

	// Second registration should fail due to duplicate metrics
	metrics2, err := newMetrics(reg)
	require.Error(err)
	require.Nil(metrics2)
}

func TestMetricsWrapHandler(t *testing.T) {
	require := require.New(t)

	m, err := newMetrics(prometheus.NewRegistry())
	require.NoError(err)

	var inflight float64
	handler := m.wrapHandler("escrow", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		inflight = testutil.ToFloat64(m.inflight)
		w.WriteHeader(http.StatusNoContent)
	}))

	for range 3 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ext/escrow", nil))
		require.Equal(http.StatusNoContent, w.Code)
	}

	require.Equal(float64(1), inflight)
	require.Zero(testutil.ToFloat64(m.inflight))
	require.Equal(float64(3), testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "escrow")))
	require.Zero(testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "escrow")))
	require.Equal(1, testutil.CollectAndCount(m.duration))
}
