// SPDX-License-Identifier: GPL-3.0-or-later

// Package blocklist contains the set of sentinel addresses that a
// censoring resolver returns in place of the real addresses.
//
// Membership is exact string equality: "104.18.27.120" does not match
// "104.18.27.12" nor "104.18.27.0/24", and "::ffff:10.0.0.1" does not
// match "10.0.0.1". No prefix or subnet matching is ever performed.
package blocklist

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"
)

// DefaultAddrs returns the sentinel addresses used by [Default].
func DefaultAddrs() []string {
	return []string{"192.168.1.1", "10.0.0.1", "172.16.0.1", "104.18.27.120"}
}

// ErrInvalidAddr indicates that a sentinel is not an IP address.
var ErrInvalidAddr = errors.New("blocklist: invalid IP address")

// Set is an immutable set of sentinel addresses.
//
// Construct using [New] or [Default].
type Set struct {
	addrs map[string]struct{}
}

// New creates a [*Set] containing the given addresses. Each address
// must be a valid IP address; it is stored exactly as written.
func New(addrs ...string) (*Set, error) {
	s := &Set{addrs: make(map[string]struct{}, len(addrs))}
	for _, addr := range addrs {
		if _, err := netip.ParseAddr(addr); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddr, addr)
		}
		s.addrs[addr] = struct{}{}
	}
	return s, nil
}

// Default returns the [*Set] for [DefaultAddrs].
func Default() *Set {
	s, err := New(DefaultAddrs()...)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains returns whether addr is one of the sentinels.
func (s *Set) Contains(addr string) bool {
	_, found := s.addrs[addr]
	return found
}

// Matches returns the addresses in addrs that are sentinels, preserving
// their order and multiplicity. The result is empty when none matches.
func (s *Set) Matches(addrs []string) []string {
	var matches []string
	for _, addr := range addrs {
		if s.Contains(addr) {
			matches = append(matches, addr)
		}
	}
	return matches
}

// Len returns the number of sentinels.
func (s *Set) Len() int {
	return len(s.addrs)
}

// Addrs returns the sentinels in lexicographic order.
func (s *Set) Addrs() []string {
	out := make([]string, 0, len(s.addrs))
	for addr := range s.addrs {
		out = append(out, addr)
	}
	slices.Sort(out)
	return out
}
