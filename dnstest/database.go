// SPDX-License-Identifier: GPL-3.0-or-later

package dnstest

import (
	"net"

	"github.com/miekg/dns"
	"github.com/rbmk-project/common/runtimex"
)

// Database models the DNS as seen through a resolver.
//
// Construct using [NewDatabase].
type Database struct {
	names  map[string][]dns.RR
	rcodes map[string]int
}

// NewDatabase creates a new, empty [*Database].
func NewDatabase() *Database {
	return &Database{
		names:  make(map[string][]dns.RR),
		rcodes: make(map[string]int),
	}
}

// AddCNAME adds a CNAME alias.
//
// This method IS NOT goroutine safe.
func (dd *Database) AddCNAME(name, alias string) {
	name = dns.CanonicalName(name)
	rr := &dns.CNAME{
		Hdr:    newHeader(name, dns.TypeCNAME),
		Target: dns.CanonicalName(alias),
	}
	dd.names[name] = append(dd.names[name], rr)
}

// AddAddresses adds A/AAAA records mapping the given domainNames
// to the given IPv4/IPv6 addresses. Records are served in the
// order in which they were added, including duplicates.
//
// This method panics if an address is not a valid IP address.
//
// This method IS NOT goroutine safe.
func (dd *Database) AddAddresses(domainNames, addresses []string) {
	for _, name := range domainNames {
		name = dns.CanonicalName(name)
		for _, addr := range addresses {
			ipAddr := net.ParseIP(addr)
			runtimex.Assert(ipAddr != nil, "invalid IP address")

			var rr dns.RR
			switch ipv4 := ipAddr.To4(); ipv4 {
			case nil:
				rr = &dns.AAAA{Hdr: newHeader(name, dns.TypeAAAA), AAAA: ipAddr}
			default:
				rr = &dns.A{Hdr: newHeader(name, dns.TypeA), A: ipv4}
			}
			dd.names[name] = append(dd.names[name], rr)
		}
	}
}

// AddRcode forces the response code for the given domain names.
//
// This method IS NOT goroutine safe.
func (dd *Database) AddRcode(rcode int, domainNames ...string) {
	for _, name := range domainNames {
		dd.rcodes[dns.CanonicalName(name)] = rcode
	}
}

// newHeader creates the common header of a resource record.
func newHeader(name string, rrtype uint16) dns.RR_Header {
	return dns.RR_Header{
		Name:   name,
		Rrtype: rrtype,
		Class:  dns.ClassINET,
		Ttl:    3600,
	}
}

// Ensure [*Database] implements [dns.Handler].
var _ dns.Handler = (*Database)(nil)

// ServeDNS implements [dns.Handler].
//
// This method is goroutine safe as long as one does not
// modify the database while handling queries.
func (dd *Database) ServeDNS(rw dns.ResponseWriter, query *dns.Msg) {
	// Make sure it's a query containing just one question.
	if query.Response || query.Opcode != dns.OpcodeQuery || len(query.Question) != 1 {
		return
	}
	response := &dns.Msg{}
	response.SetReply(query)
	response.RecursionAvailable = true

	// Get the RRs if possible
	var (
		q0   = query.Question[0]
		name = dns.CanonicalName(q0.Name)
	)
	if rcode, found := dd.rcodes[name]; found {
		response.Rcode = rcode
		_ = rw.WriteMsg(response)
		return
	}
	switch {
	case q0.Qclass != dns.ClassINET:
		response.Rcode = dns.RcodeRefused
	case q0.Qtype == dns.TypeA ||
		q0.Qtype == dns.TypeAAAA ||
		q0.Qtype == dns.TypeCNAME:
		var found bool
		response.Answer, found = dd.lookup(q0.Qtype, name)
		if !found {
			response.Rcode = dns.RcodeNameError
		}
	default:
		response.Rcode = dns.RcodeNameError
	}

	_ = rw.WriteMsg(response)
}

// lookup returns the DNS records for a domain name following CNAMEs.
//
// The second return value is true when the name exists, even if there
// is no record of the requested type, which maps to a NODATA response.
func (dd *Database) lookup(qtype uint16, name string) ([]dns.RR, bool) {
	const maxloops = 10
	var rrs []dns.RR
	for idx := 0; idx < maxloops; idx++ {

		// Search whether the current name is in the database.
		interim, found := dd.names[name]
		if !found && idx == 0 {
			return nil, false
		}
		if !found {
			return filterType(rrs, dns.TypeCNAME), true
		}

		// We have definitely found something related.
		rrs = append(rrs, interim...)

		// Check whether we have found the desired record.
		var cname string
		for _, rr := range interim {
			if qtype == rr.Header().Rrtype {
				return filterType(rrs, qtype, dns.TypeCNAME), true
			}
			if rr, ok := rr.(*dns.CNAME); ok && cname == "" {
				cname = rr.Target
			}
		}

		// Otherwise, follow CNAME redirects.
		if cname == "" {
			return filterType(rrs, dns.TypeCNAME), true
		}
		name = cname
	}

	return nil, false
}

// filterType returns the RRs with one of the given types, in order.
func filterType(rrs []dns.RR, qtypes ...uint16) []dns.RR {
	var out []dns.RR
	for _, rr := range rrs {
		for _, qtype := range qtypes {
			if rr.Header().Rrtype == qtype {
				out = append(out, rr)
				break
			}
		}
	}
	return out
}
