// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	"github.com/luxfi/log"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func teapot() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestFilterInvalidHosts(t *testing.T) {
	tests := []struct {
		name         string
		allowed      []string
		host         string
		expectedCode int
	}{
		{
			name:         "no host header",
			allowed:      []string{"localhost"},
			host:         "",
			expectedCode: http.StatusTeapot,
		},
		{
			name:         "ip",
			allowed:      []string{"localhost"},
			host:         "127.0.0.1:9650",
			expectedCode: http.StatusTeapot,
		},
		{
			name:         "allowed host with port",
			allowed:      []string{"localhost"},
			host:         "localhost:9650",
			expectedCode: http.StatusTeapot,
		},
		{
			name:         "case insensitive",
			allowed:      []string{"LocalHost"},
			host:         "LOCALHOST",
			expectedCode: http.StatusTeapot,
		},
		{
			name:         "wildcard",
			allowed:      []string{"localhost", wildcard},
			host:         "escrow.example.org",
			expectedCode: http.StatusTeapot,
		},
		{
			name:         "unknown host",
			allowed:      []string{"localhost"},
			host:         "escrow.example.org",
			expectedCode: http.StatusForbidden,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			handler := filterInvalidHosts(teapot(), test.allowed)

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Host = test.host
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			require.Equal(t, test.expectedCode, w.Code)
		})
	}
}

func TestRouterAliases(t *testing.T) {
	require := require.New(t)

	r := newRouter()
	require.NoError(r.AddRouter("/ext/escrow", "", teapot()))
	require.ErrorContains(r.AddRouter("/ext/escrow", "", teapot()), "already exists")

	require.NoError(r.AddAlias("/ext/escrow", "/ext/funds"))
	require.ErrorIs(r.AddRouter("/ext/funds", "/x", teapot()), errAlreadyReserved)
	require.ErrorIs(r.AddAlias("/ext/other", "/ext/funds"), errAlreadyReserved)

	_, err := r.GetHandler("/ext/funds", "")
	require.NoError(err)
	_, err = r.GetHandler("/ext/funds", "/missing")
	require.ErrorIs(err, errUnknownEndpoint)
	_, err = r.GetHandler("/ext/missing", "")
	require.ErrorIs(err, errUnknownBaseURL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ext/funds", nil))
	require.Equal(http.StatusTeapot, w.Code)
}

func TestServerDispatchAndShutdown(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	s, err := New(
		log.NewNoOpLogger(),
		listener,
		[]string{"*"},
		[]string{"localhost"},
		time.Second,
		provider.Tracer("server"),
		prometheus.NewRegistry(),
		HTTPConfig{
			ReadTimeout:       time.Second,
			ReadHeaderTimeout: time.Second,
			WriteTimeout:      time.Second,
			IdleTimeout:       time.Second,
		},
	)
	require.NoError(err)
	require.NoError(s.AddRoute(teapot(), "escrow", ""))
	require.NoError(s.AddAliases("escrow", "funds"))

	dispatched := make(chan error, 1)
	go func() {
		dispatched <- s.Dispatch()
	}()

	client := &http.Client{}
	for _, path := range []string{"/ext/escrow", "/ext/funds"} {
		resp, err := client.Post("http://"+listener.Addr().String()+path, "application/json", nil)
		require.NoError(err)
		_, _ = io.Copy(io.Discard, resp.Body)
		require.NoError(resp.Body.Close())
		require.Equal(http.StatusTeapot, resp.StatusCode)
	}
	client.CloseIdleConnections()

	require.NoError(s.Shutdown())
	require.NoError(<-dispatched)
	require.NoError(provider.Shutdown(t.Context()))

	spans := exporter.GetSpans()
	require.Len(spans, 2)
	require.Equal("/ext/escrow", spans[0].Name)
}
