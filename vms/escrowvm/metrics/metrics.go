// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/boadeboye/NFT-Funded-School-Infrastructure-Network/vms/escrowvm/core"
)

const (
	operationLabel = "operation"
	codeLabel      = "code"
	flowLabel      = "flow"

	FlowContributed = "contributed"
	FlowReleased    = "released"
	FlowWithdrawn   = "withdrawn"
)

var _ Metrics = (*metrics)(nil)

type Metrics interface {
	// MarkOperation records the outcome and latency of one operation.
	MarkOperation(operation string, result core.Result, duration time.Duration)
	// MarkFlow records value moving through the escrow.
	MarkFlow(flow string, amount uint64)
	SetHeight(height uint64)
}

type metrics struct {
	accepted *prometheus.CounterVec
	rejected *prometheus.CounterVec
	duration *prometheus.HistogramVec
	value    *prometheus.CounterVec
	height   prometheus.Gauge
}

func New(namespace string, registerer prometheus.Registerer) (Metrics, error) {
	m := &metrics{
		accepted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_accepted",
				Help:      "Number of operations that committed",
			},
			[]string{operationLabel},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_rejected",
				Help:      "Number of operations that failed, by result code",
			},
			[]string{operationLabel, codeLabel},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Time spent executing an operation",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{operationLabel},
		),
		value: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "value",
				Help:      "Value moved through the escrow",
			},
			[]string{flowLabel},
		),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "height",
			Help:      "Sequence number of the last committed operation",
		}),
	}

	err := errors.Join(
		registerer.Register(m.accepted),
		registerer.Register(m.rejected),
		registerer.Register(m.duration),
		registerer.Register(m.value),
		registerer.Register(m.height),
	)
	return m, err
}

func (m *metrics) MarkOperation(operation string, result core.Result, duration time.Duration) {
	if result.Success {
		m.accepted.WithLabelValues(operation).Inc()
	} else {
		m.rejected.WithLabelValues(operation, strconv.FormatUint(uint64(result.Code), 10)).Inc()
	}
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *metrics) MarkFlow(flow string, amount uint64) {
	m.value.WithLabelValues(flow).Add(float64(amount))
}

func (m *metrics) SetHeight(height uint64) {
	m.height.Set(float64(height))
}
