//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Cleartext conn dialer.
//

package netcore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"

	"github.com/rbmk-project/dnsblock/errclass"
)

// ErrNotIPEndpoint is returned when dialing an endpoint whose
// host is not an IP address.
var ErrNotIPEndpoint = errors.New("netcore: endpoint host is not an IP address")

// DialContext establishes a new TCP/UDP connection with the given IP
// endpoint. This method signature is compatible with the DialContext
// field of the [*dnscore.Transport].
func (nx *Network) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	if _, err := netip.ParseAddrPort(address); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotIPEndpoint, address)
	}

	// enforce the optional per-connection timeout
	if nx.DialContextTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, nx.DialContextTimeout)
		defer cancel()
	}

	t0 := nx.timeNow()
	nx.debug(ctx, "connectStart",
		slog.String("protocol", network),
		slog.String("remoteAddr", address),
		slog.Time("t", t0),
	)

	conn, err := nx.dialNet(ctx, network, address)
	laddr, _ := endpoints(conn)

	nx.debug(ctx, "connectDone",
		slog.Any("err", err),
		slog.String("errClass", errclass.New(err)),
		slog.String("localAddr", laddr),
		slog.String("protocol", network),
		slog.String("remoteAddr", address),
		slog.Time("t0", t0),
		slog.Time("t", nx.timeNow()),
	)

	if err != nil {
		return nil, err
	}

	// wrap only when logging
	if nx.Logger != nil && nx.WrapConn != nil {
		conn = nx.WrapConn(ctx, nx, network, conn)
	}
	return conn, nil
}

// dialNet creates the actual connection.
func (nx *Network) dialNet(ctx context.Context, network, address string) (net.Conn, error) {
	// if there's an user provided dialer func, use it
	if nx.DialContextFunc != nil {
		return nx.DialContextFunc(ctx, network, address)
	}

	// otherwise use the net package
	child := &net.Dialer{}
	child.SetMultipathTCP(false)
	return child.DialContext(ctx, network, address)
}
