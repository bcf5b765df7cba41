// Package http builds HTTP clients and middleware for outbound and inbound
// traffic.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client configured for outbound scraping and
// API calls.
//
// http.DefaultClient has no timeout, so always use a custom client here. The
// transport is set explicitly for connection stability and resource control:
// short TCP connect and TLS handshake timeouts, bounded idle connection pool,
// proxy settings taken from the environment.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
