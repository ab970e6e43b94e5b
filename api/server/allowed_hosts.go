// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net"
	"net/http"
	"strings"
)

const wildcard = "*"

var _ http.Handler = (*allowedHostsHandler)(nil)

// filterInvalidHosts rejects requests whose Host header names a host outside
// allowed. IP hosts and requests without a Host header always pass.
func filterInvalidHosts(
	handler http.Handler,
	allowed []string,
) http.Handler {
	hosts := make(map[string]struct{}, len(allowed))
	for _, host := range allowed {
		if host == wildcard {
			return handler
		}
		hosts[strings.ToLower(host)] = struct{}{}
	}
	return &allowedHostsHandler{
		handler: handler,
		hosts:   hosts,
	}
}

type allowedHostsHandler struct {
	handler http.Handler
	hosts   map[string]struct{}
}

func (a *allowedHostsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Host == "" {
		a.handler.ServeHTTP(w, r)
		return
	}

	host, _, err := net.SplitHostPort(r.Host)
	if err != nil {
		// The Host header had no port.
		host = r.Host
	}

	if net.ParseIP(host) != nil {
		a.handler.ServeHTTP(w, r)
		return
	}

	if _, ok := a.hosts[strings.ToLower(host)]; !ok {
		http.Error(w, "invalid host specified", http.StatusForbidden)
		return
	}

	a.handler.ServeHTTP(w, r)
}
