// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package errclass classifies the errors emitted while resolving domains.

The general idea is to map golang errors to an enum of strings with
names resembling standard Unix error names, so that a failed lookup
stored in a result file can be compared across runs and platforms
without parsing error messages.

This package extends [github.com/rbmk-project/common/errclass], which
classifies system and network errors (e.g., [ETIMEDOUT]), with the
errors of a DNS lookup.

# DNS Errors

- [EDNS_NONAME] for [dnscore.ErrNoName] (NXDOMAIN)

- [EDNS_NODATA] for [dnscore.ErrNoData]

- [EDNS_SERVFAIL] for [dnscore.ErrServerTemporarilyMisbehaving] (SERVFAIL)

- [EDNS_BADRCODE] for [dnscore.ErrServerMisbehaving] (other failing rcodes)

- [EDNS_BADRESPONSE] for [dnscore.ErrInvalidResponse]

- [EDNS_REFUSED] for errors with the "query refused" suffix (REFUSED)

# Joined Errors

Errors joined with [errors.Join] get the class of the first entry
we can classify, or [EGENERIC] when we cannot classify any.
*/
package errclass
