// SPDX-License-Identifier: GPL-3.0-or-later

package errclass

import (
	"errors"
	"strings"

	"github.com/rbmk-project/common/errclass"
	"github.com/rbmk-project/dnscore"
)

const (
	// ECONNREFUSED is the connection refused error.
	ECONNREFUSED = errclass.ECONNREFUSED

	// ETIMEDOUT is the operation timed out error.
	ETIMEDOUT = errclass.ETIMEDOUT

	// EDNS_NONAME is the DNS error for "no such host".
	EDNS_NONAME = errclass.EDNS_NONAME

	// EDNS_NODATA is the DNS error for "no answer".
	EDNS_NODATA = errclass.EDNS_NODATA

	// EDNS_SERVFAIL is the DNS error for a SERVFAIL response.
	EDNS_SERVFAIL = "EDNS_SERVFAIL"

	// EDNS_REFUSED is the DNS error for a REFUSED response.
	EDNS_REFUSED = "EDNS_REFUSED"

	// EDNS_BADRCODE is the DNS error for any other failing
	// response code (e.g., NOTIMP or FORMERR).
	EDNS_BADRCODE = "EDNS_BADRCODE"

	// EDNS_BADRESPONSE is the DNS error for a response that does
	// not match the query (e.g., wrong ID or question).
	EDNS_BADRESPONSE = "EDNS_BADRESPONSE"

	// EGENERIC is the generic, unclassified error.
	EGENERIC = errclass.EGENERIC
)

// dnsErrors maps the [dnscore] errors, in the order we check them.
var dnsErrors = []struct {
	err   error
	class string
}{
	{dnscore.ErrInvalidResponse, EDNS_BADRESPONSE},
	{dnscore.ErrNoName, EDNS_NONAME},
	{dnscore.ErrNoData, EDNS_NODATA},
	{dnscore.ErrServerTemporarilyMisbehaving, EDNS_SERVFAIL},
	{dnscore.ErrServerMisbehaving, EDNS_BADRCODE},
}

// refusedSuffix is the suffix of errors caused by REFUSED responses.
const refusedSuffix = "query refused"

// New creates a new error class from the given error.
//
// When err joins several errors (e.g., one per attempted resolver), the
// class is the one of the first joined error we are able to classify, so
// the result reflects the first failure cause we understand.
func New(err error) string {
	if err == nil {
		return ""
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, entry := range joined.Unwrap() {
			if class := New(entry); class != EGENERIC {
				return class
			}
		}
		return EGENERIC
	}
	for _, entry := range dnsErrors {
		if errors.Is(err, entry.err) {
			return entry.class
		}
	}
	if strings.HasSuffix(err.Error(), refusedSuffix) {
		return EDNS_REFUSED
	}
	return errclass.New(err)
}
