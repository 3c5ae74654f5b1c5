// Package source provides the upstream implementations of the event feed:
// the real guild-events API client and a fixture source for running
// without credentials. Both satisfy feed.Source, so the fetcher never
// knows which one it is in front of.
package source

import (
	"net"
	"net/http"
	"time"
)

// HTTP client tuning for upstream calls.
const (
	defaultTimeout      = 15 * time.Second
	dialTimeout         = 5 * time.Second
	keepAlive           = 60 * time.Second
	maxIdleConns        = 100
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 5 * time.Second
)

// newHTTPClient builds a client with sane connection pooling. The overall
// timeout bounds a hung upstream call; expiry surfaces as a transport
// failure to the fetcher.
func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: dialTimeout, KeepAlive: keepAlive}).DialContext,
		MaxIdleConns:        maxIdleConns,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}
