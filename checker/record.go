// SPDX-License-Identifier: GPL-3.0-or-later

package checker

import "time"

// Record is the outcome of checking a domain.
//
// A record is either resolved (ResolvedIPs and IsBlocked are set) or
// failed (Error and ErrorClass are set). The two variants are never
// populated at the same time.
type Record struct {
	// Domain is the domain we checked.
	Domain string `json:"domain"`

	// ResolvedIPs contains the resolved addresses in response order.
	ResolvedIPs []string `json:"resolved_ips,omitempty"`

	// IsBlocked is set for resolved records only.
	IsBlocked *bool `json:"is_blocked,omitempty"`

	// Error is the lookup error for failed records.
	Error string `json:"error,omitempty"`

	// ErrorClass classifies Error using the errclass package.
	ErrorClass string `json:"error_class,omitempty"`

	// Resolver is the resolver that produced the final answer, if any.
	Resolver string `json:"resolver,omitempty"`

	// Timestamp is when the outcome was captured.
	Timestamp time.Time `json:"timestamp"`
}

// newResolvedRecord creates a resolved [*Record].
func newResolvedRecord(domain string, addrs []string, blocked bool, resolver string, t time.Time) *Record {
	return &Record{
		Domain:      domain,
		ResolvedIPs: addrs,
		IsBlocked:   &blocked,
		Resolver:    resolver,
		Timestamp:   t,
	}
}

// newFailedRecord creates a failed [*Record].
func newFailedRecord(domain, errmsg, class, resolver string, t time.Time) *Record {
	return &Record{
		Domain:     domain,
		Error:      errmsg,
		ErrorClass: class,
		Resolver:   resolver,
		Timestamp:  t,
	}
}

// Failed returns whether the lookup failed.
func (r *Record) Failed() bool {
	return r.IsBlocked == nil
}

// Blocked returns whether the domain resolved to a sentinel address.
func (r *Record) Blocked() bool {
	return r.IsBlocked != nil && *r.IsBlocked
}
