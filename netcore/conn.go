// SPDX-License-Identifier: GPL-3.0-or-later

package netcore

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rbmk-project/dnsblock/errclass"
	"github.com/rbmk-project/dnsblock/netipx"
)

// endpoints returns the local and remote endpoints of conn. Missing
// addresses become the unspecified endpoint, "[::]:0".
func endpoints(conn net.Conn) (laddr, raddr string) {
	if conn == nil {
		return netipx.AddrToAddrPort(nil).String(), netipx.AddrToAddrPort(nil).String()
	}
	laddr = netipx.AddrToAddrPort(conn.LocalAddr()).String()
	raddr = netipx.AddrToAddrPort(conn.RemoteAddr()).String()
	return
}

// WrapConn returns a [net.Conn] that logs each read, write, and close,
// and that, when closed, logs how many bytes it exchanged with the
// resolver. The network is the one passed to [*Network.DialContext].
func WrapConn(ctx context.Context, netx *Network, network string, conn net.Conn) net.Conn {
	laddr, raddr := endpoints(conn)
	return &meteredConn{
		Conn:     conn,
		ctx:      ctx,
		laddr:    laddr,
		netx:     netx,
		protocol: network,
		raddr:    raddr,
	}
}

// meteredConn is the [net.Conn] returned by [WrapConn].
//
// The embedded conn provides the methods we do not log.
type meteredConn struct {
	net.Conn
	closeonce sync.Once
	ctx       context.Context // only used for logging
	laddr     string
	netx      *Network // may contain nil logger!
	protocol  string
	raddr     string
	rcount    atomic.Int64
	wcount    atomic.Int64
}

// ioDone logs the end of an I/O operation.
func (c *meteredConn) ioDone(msg string, t0 time.Time, count int, err error, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.Int("ioBytesCount", count),
		slog.Any("err", err),
		slog.String("errClass", errclass.New(err)),
		slog.String("localAddr", c.laddr),
		slog.String("protocol", c.protocol),
		slog.String("remoteAddr", c.raddr),
		slog.Time("t0", t0),
		slog.Time("t", c.netx.timeNow()),
	}
	c.netx.debug(c.ctx, msg, append(attrs, extra...)...)
}

// Read implements [net.Conn].
func (c *meteredConn) Read(buf []byte) (int, error) {
	t0 := c.netx.timeNow()
	count, err := c.Conn.Read(buf)
	c.rcount.Add(int64(count))
	c.ioDone("readDone", t0, count, err)
	return count, err
}

// Write implements [net.Conn].
func (c *meteredConn) Write(data []byte) (int, error) {
	t0 := c.netx.timeNow()
	count, err := c.Conn.Write(data)
	c.wcount.Add(int64(count))
	c.ioDone("writeDone", t0, count, err)
	return count, err
}

// Close implements [net.Conn]. Only the first call closes the conn.
func (c *meteredConn) Close() (err error) {
	c.closeonce.Do(func() {
		t0 := c.netx.timeNow()
		err = c.Conn.Close()
		c.ioDone("closeDone", t0, 0, err,
			slog.Int64("bytesRead", c.rcount.Load()),
			slog.Int64("bytesWritten", c.wcount.Load()),
		)
	})
	return
}
