//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Definition of Network.
//

package netcore

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// Network allows dialing and measuring the TCP/UDP connections
// used to exchange DNS messages with resolvers.
//
// The zero value is ready to use.
//
// A [*Network] is safe for concurrent use by multiple goroutines as long as
// you don't modify its fields after construction and the underlying fields you
// may set (e.g., DialContextFunc) are also safe.
type Network struct {
	// DialContextFunc is the optional dialer for creating new
	// TCP and UDP connections. If this field is nil, the default
	// dialer from the [net] package will be used.
	DialContextFunc func(ctx context.Context, network, address string) (net.Conn, error)

	// DialContextTimeout is the optional timeout to use for limiting
	// the maximum time spent creating a single connection.
	DialContextTimeout time.Duration

	// Logger is the optional structured logger for emitting
	// structured diagnostic events. If this field is nil, we
	// will not be emitting structured logs.
	Logger *slog.Logger

	// TimeNow is an optional function that returns the current time.
	// If this field is nil, the [time.Now] function will be used.
	TimeNow func() time.Time

	// WrapConn is an optional function to wrap a connection to emit
	// structured logs. [WrapConn] is the default wrapper to use.
	WrapConn func(ctx context.Context, netx *Network, network string, conn net.Conn) net.Conn
}

// NewNetwork creates a new [*Network] that wraps connections using
// [WrapConn] when the given logger is not nil.
func NewNetwork(logger *slog.Logger) *Network {
	return &Network{Logger: logger, WrapConn: WrapConn}
}

// timeNow is a function that returns the current time.
func (nx *Network) timeNow() time.Time {
	if nx.TimeNow != nil {
		return nx.TimeNow()
	}
	return time.Now()
}

// debug emits a debug event when there is a logger.
func (nx *Network) debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if nx.Logger != nil {
		nx.Logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
	}
}
