// Package proxy builds HTTP clients that tunnel through a SOCKS5 proxy, for
// deployments where the Q&A backend is only reachable that way.
package proxy

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
)

// DefaultTimeout bounds one proxied request end to end.
const DefaultTimeout = 2 * time.Minute

// NewSocksClient returns an http.Client dialing every connection through the
// SOCKS5 proxy at addr. A timeout <= 0 falls back to DefaultTimeout.
func NewSocksClient(addr string, timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("socks dialer: %w", err)
	}

	dialCtx := func(ctx context.Context, network, address string) (net.Conn, error) {
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			return cd.DialContext(ctx, network, address)
		}
		return dialer.Dial(network, address)
	}

	return &http.Client{
		Transport: &http.Transport{DialContext: dialCtx},
		Timeout:   timeout,
	}, nil
}
