package ipc

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// Endpoint describes where the invoke bridge listens.
type Endpoint struct {
	Network string
	Address string
}

// NewEndpoint returns a TCP endpoint for addr.
func NewEndpoint(addr string) Endpoint {
	return Endpoint{Network: "tcp", Address: strings.TrimSpace(addr)}
}

// Listen binds to the configured endpoint.
func (e Endpoint) Listen() (net.Listener, error) {
	return net.Listen(e.Network, e.Address)
}

// DialContext establishes a client connection with sensible timeouts.
func (e Endpoint) DialContext(ctx context.Context) (net.Conn, error) {
	d := &net.Dialer{Timeout: 5 * time.Second}
	return d.DialContext(ctx, e.Network, e.Address)
}

// String provides a readable representation for logs.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s", e.Network, e.Address)
}
