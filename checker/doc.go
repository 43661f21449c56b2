// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package checker resolves domains and classifies them as blocked or not.

A [*Checker] resolves the A records of a single domain using the
resolvers of a [*resolverconf.Config] and compares the result against a
[*blocklist.Set]. A domain is blocked when at least one of the resolved
addresses is a sentinel address, compared by exact string equality.

# Resolution

Resolvers are queried in the configured order. A transport error (e.g.,
a timeout), a SERVFAIL response, or a REFUSED response moves on to the
next resolver. NXDOMAIN and successful responses are final. Addresses
are returned in the order in which they appear in the response, without
sorting or removing duplicates. There is no retry.

# Records

[*Checker.Check] always returns a [*Record]. Lookup failures are isolated
into a failed record, so that checking a list of domains never stops
because of a single domain.

# Logging

Check emits exactly one event per domain: [LevelNotice] "domainBlocked"
when blocked, [slog.LevelInfo] "domainNotBlocked" when not blocked, and
[slog.LevelError] "domainLookupFailed" when the lookup failed. Events
about each resolver attempt use [slog.LevelDebug].
*/
package checker
