// SPDX-License-Identifier: GPL-3.0-or-later

package dnstest

import (
	"net"

	"github.com/miekg/dns"
	"github.com/rbmk-project/common/runtimex"
	"github.com/rbmk-project/dnsblock/closepool"
)

// Blackhole is a [dns.Handler] that never answers.
var Blackhole = dns.HandlerFunc(func(rw dns.ResponseWriter, query *dns.Msg) {})

// Server is a DNS server listening on the loopback interface.
//
// Construct using [MustStartUDP] or [MustStartTCP].
type Server struct {
	// Addr is the endpoint where the server listens (e.g., "127.0.0.1:54321").
	Addr string

	// pool tracks all that which needs to be closed.
	pool closepool.Pool
}

// MustStartUDP starts a DNS-over-UDP server using the given handler.
//
// This function panics on error.
func MustStartUDP(handler dns.Handler) *Server {
	pconn := runtimex.Try1(net.ListenPacket("udp", "127.0.0.1:0"))
	srv := &dns.Server{PacketConn: pconn, Handler: handler}
	return mustStart(srv, pconn.LocalAddr().String())
}

// MustStartTCP starts a DNS-over-TCP server using the given handler.
//
// This function panics on error.
func MustStartTCP(handler dns.Handler) *Server {
	listener := runtimex.Try1(net.Listen("tcp", "127.0.0.1:0"))
	srv := &dns.Server{Listener: listener, Handler: handler}
	return mustStart(srv, listener.Addr().String())
}

// mustStart runs the server in the background and waits for it to be ready.
func mustStart(srv *dns.Server, addr string) *Server {
	started := make(chan struct{})
	srv.NotifyStartedFunc = func() { close(started) }
	errch := make(chan error, 1)
	go func() { errch <- srv.ActivateAndServe() }()
	select {
	case <-started:
	case err := <-errch:
		runtimex.Try0(err)
	}
	s := &Server{Addr: addr}
	s.pool.AddFunc(srv.Shutdown)
	return s
}

// Close shuts down the server.
func (s *Server) Close() error {
	return s.pool.Close()
}
