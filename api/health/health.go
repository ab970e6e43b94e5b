// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package health runs named checks and reports them over HTTP.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/log"
)

// AllTag labels the aggregate failing-check count.
const AllTag = "all"

var errDuplicateCheck = errors.New("duplicated check")

// Checker reports on the health of one part of the node. A non-nil error
// marks the check as failing; the details are reported either way.
type Checker interface {
	HealthCheck(ctx context.Context) (any, error)
}

type CheckerFunc func(ctx context.Context) (any, error)

func (f CheckerFunc) HealthCheck(ctx context.Context) (any, error) {
	return f(ctx)
}

// Result is the outcome of one check.
type Result struct {
	Details   any           `json:"message,omitempty"`
	Error     *string       `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// APIReply is the body served by the health handler.
type APIReply struct {
	Checks  map[string]Result `json:"checks"`
	Healthy bool              `json:"healthy"`
}

type Health struct {
	log     log.Logger
	metrics *healthMetrics

	lock   sync.RWMutex
	checks map[string]Checker
}

func New(log log.Logger, namespace string, registerer prometheus.Registerer) (*Health, error) {
	m, err := newMetrics(namespace, registerer)
	if err != nil {
		return nil, err
	}
	return &Health{
		log:     log,
		metrics: m,
		checks:  make(map[string]Checker),
	}, nil
}

func (h *Health) RegisterCheck(name string, checker Checker) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, ok := h.checks[name]; ok {
		return fmt.Errorf("%w: %q", errDuplicateCheck, name)
	}
	h.checks[name] = checker
	h.metrics.failingChecks.WithLabelValues(name).Set(0)
	return nil
}

// Check runs every registered check and reports whether all of them passed.
func (h *Health) Check(ctx context.Context) (map[string]Result, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	var (
		results = make(map[string]Result, len(h.checks))
		failing int
	)
	for name, checker := range h.checks {
		start := time.Now()
		details, err := checker.HealthCheck(ctx)
		result := Result{
			Details:   details,
			Timestamp: start,
			Duration:  time.Since(start),
		}
		if err != nil {
			msg := err.Error()
			result.Error = &msg
			failing++
			h.metrics.failingChecks.WithLabelValues(name).Set(1)
			h.log.Warn("health check failing",
				log.String("name", name),
				log.Err(err),
			)
		} else {
			h.metrics.failingChecks.WithLabelValues(name).Set(0)
		}
		results[name] = result
	}
	h.metrics.failingChecks.WithLabelValues(AllTag).Set(float64(failing))
	return results, failing == 0
}

// NewGetHandler serves the check results as JSON, with 503 while any check
// fails.
func NewGetHandler(h *Health) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		checks, healthy := h.Check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(APIReply{
			Checks:  checks,
			Healthy: healthy,
		})
	})
}
