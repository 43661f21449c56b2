// SPDX-License-Identifier: GPL-3.0-or-later

package dnstest

import "github.com/miekg/dns"

// Poisoner is a [dns.Handler] modeling a censoring resolver in front of
// an honest one. It answers the queries for the names in its database
// with the records in the database and forwards every other query to
// the upstream handler.
type Poisoner struct {
	db       *Database
	upstream dns.Handler
}

// NewPoisoner creates a new [*Poisoner] injecting the records in db.
func NewPoisoner(db *Database, upstream dns.Handler) *Poisoner {
	return &Poisoner{db: db, upstream: upstream}
}

// ServeDNS implements [dns.Handler].
func (p *Poisoner) ServeDNS(rw dns.ResponseWriter, query *dns.Msg) {
	// Only poison queries containing just one question
	if query.Response || query.Opcode != dns.OpcodeQuery || len(query.Question) != 1 {
		p.upstream.ServeDNS(rw, query)
		return
	}

	// Let the query through unless we have records to inject
	q0 := query.Question[0]
	rrs, _ := p.db.lookup(q0.Qtype, dns.CanonicalName(q0.Name))
	if len(rrs) <= 0 {
		p.upstream.ServeDNS(rw, query)
		return
	}

	resp := &dns.Msg{}
	resp.SetReply(query)
	resp.RecursionAvailable = true
	resp.Answer = rrs
	_ = rw.WriteMsg(resp)
}
