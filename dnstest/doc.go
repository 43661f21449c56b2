// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package dnstest contains local DNS servers for testing.

The [*Database] models the view of the DNS that a resolver gives to its
clients. Populating it with sentinel addresses models a censoring
resolver; populating it with the real addresses models an honest one.
Names that are not in the database get NXDOMAIN, and [*Database.AddRcode]
forces a given response code (e.g., SERVFAIL) for a name. A [*Poisoner]
puts a censoring database in front of an honest one, rewriting only the
answers for the censored names.

[MustStartUDP] and [MustStartTCP] serve a [dns.Handler] on an ephemeral
loopback port. [Blackhole] is a handler that never answers, which makes
clients time out, as with an unreachable resolver.
*/
package dnstest
