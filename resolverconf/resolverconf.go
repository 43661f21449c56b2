// SPDX-License-Identifier: GPL-3.0-or-later

// Package resolverconf contains the resolvers used by a run.
//
// A [*Config] is constructed once at startup and never modified
// afterwards, therefore it is safe to share it.
package resolverconf

import (
	"errors"
	"fmt"

	"github.com/rbmk-project/dnsblock/netipx"
	"github.com/rbmk-project/dnscore"
)

// DefaultPort is the port we use when an address does not specify one.
const DefaultPort = 53

// DefaultServers returns the resolvers used by [Default], in order.
func DefaultServers() []string {
	return []string{"8.8.8.8", "1.1.1.1", "208.67.222.222"}
}

// ErrNoServers indicates that the configuration lists no resolvers.
var ErrNoServers = errors.New("no resolvers configured")

// ErrUnsupportedProtocol indicates a protocol we cannot use.
var ErrUnsupportedProtocol = errors.New("unsupported protocol")

// Config is the ordered list of resolvers to query.
//
// Construct using [New] or [Default].
type Config struct {
	servers []*dnscore.ServerAddr
}

// New creates a [*Config] querying the given addresses in order
// using the given protocol ("udp" or "tcp").
func New(protocol string, addrs ...string) (*Config, error) {
	var proto dnscore.Protocol
	switch protocol {
	case "udp":
		proto = dnscore.ProtocolUDP
	case "tcp":
		proto = dnscore.ProtocolTCP
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProtocol, protocol)
	}
	if len(addrs) <= 0 {
		return nil, ErrNoServers
	}
	c := &Config{}
	for _, addr := range addrs {
		endpoint, err := netipx.ParseEndpoint(addr, DefaultPort)
		if err != nil {
			return nil, fmt.Errorf("resolverconf: %w", err)
		}
		c.servers = append(c.servers, dnscore.NewServerAddr(proto, endpoint.String()))
	}
	return c, nil
}

// Default returns the [*Config] for [DefaultServers] using UDP.
func Default() *Config {
	c, err := New("udp", DefaultServers()...)
	if err != nil {
		panic(err)
	}
	return c
}

// Servers returns a copy of the configured resolvers, in order.
func (c *Config) Servers() []*dnscore.ServerAddr {
	out := make([]*dnscore.ServerAddr, 0, len(c.servers))
	for _, server := range c.servers {
		copied := *server
		out = append(out, &copied)
	}
	return out
}

// Addresses returns the configured endpoints as strings, in order.
func (c *Config) Addresses() []string {
	out := make([]string, 0, len(c.servers))
	for _, server := range c.servers {
		out = append(out, server.Address)
	}
	return out
}
