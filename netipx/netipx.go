// SPDX-License-Identifier: GPL-3.0-or-later

// Package netipx contains [net/netip] extensions.
package netipx

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
)

// ErrInvalidEndpoint indicates that an endpoint is neither an IP
// address nor an IP address followed by a port.
var ErrInvalidEndpoint = errors.New("invalid endpoint")

// ParseEndpoint parses a resolver endpoint into a [netip.AddrPort].
//
// The input may be a bare IP address (e.g., "8.8.8.8" or "2001:4860:4860::8888"),
// in which case we use defaultPort, or an endpoint with an explicit port
// (e.g., "8.8.8.8:53" or "[2001:4860:4860::8888]:53"). Domain names are
// rejected because resolving the resolver would require a resolver.
func ParseEndpoint(endpoint string, defaultPort uint16) (netip.AddrPort, error) {
	// handle the case where we're given a bare IP address
	if addr, err := netip.ParseAddr(endpoint); err == nil {
		if addr.Zone() != "" {
			return netip.AddrPort{}, fmt.Errorf("%w: %q: zones are not supported", ErrInvalidEndpoint, endpoint)
		}
		return netip.AddrPortFrom(addr.Unmap(), defaultPort), nil
	}

	// otherwise, we need to have an address and a port
	host, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w: %q: %s", ErrInvalidEndpoint, endpoint, err.Error())
	}
	addr, err := netip.ParseAddr(host)
	if err != nil || addr.Zone() != "" {
		return netip.AddrPort{}, fmt.Errorf("%w: %q: not an IP address", ErrInvalidEndpoint, endpoint)
	}
	pnum, err := strconv.ParseUint(port, 10, 16)
	if err != nil || pnum == 0 {
		return netip.AddrPort{}, fmt.Errorf("%w: %q: invalid port", ErrInvalidEndpoint, endpoint)
	}
	return netip.AddrPortFrom(addr.Unmap(), uint16(pnum)), nil
}

// AddrToAddrPort converts a [net.Addr] to a [netip.AddrPort].
//
// If the input is nil or neither a [*net.TCPAddr] nor [*net.UDPAddr],
// returns an unspecified IPv6 address with port 0.
func AddrToAddrPort(addr net.Addr) netip.AddrPort {
	switch addr := addr.(type) {
	case *net.TCPAddr:
		return addr.AddrPort()
	case *net.UDPAddr:
		return addr.AddrPort()
	default:
		return netip.AddrPortFrom(netip.IPv6Unspecified(), 0)
	}
}
