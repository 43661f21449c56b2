//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Internal code for DNS lookups.
//

package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/miekg/dns"
	"github.com/rbmk-project/dnsblock/errclass"
	"github.com/rbmk-project/dnscore"
)

// ErrRefused indicates a REFUSED response. The other response codes
// map to the errors returned by [dnscore.RCodeToError].
var ErrRefused = errors.New("query refused")

// Lookup resolves the A records of domain, querying each configured
// resolver in order until one gives a final answer. It returns the
// addresses and the endpoint of the resolver that answered.
//
// When all resolvers fail, the returned error joins the error of
// each resolver, and the returned resolver is empty.
func (c *Checker) Lookup(ctx context.Context, domain string) ([]string, string, error) {
	if c.LookupFunc != nil {
		return c.LookupFunc(ctx, domain)
	}

	var errv []error
	for _, server := range c.Config.Servers() {
		addrs, err := c.lookupWithServer(ctx, server, domain)
		if err == nil {
			return addrs, server.Address, nil
		}
		if !shouldTryNextServer(err) {
			return nil, server.Address, err
		}
		errv = append(errv, err)

		// do not keep going when the caller is gone
		if ctx.Err() != nil {
			break
		}
	}
	return nil, "", errors.Join(errv...)
}

// shouldTryNextServer returns whether a lookup error is specific to
// the resolver, such that another resolver may give an answer. Invalid
// responses (e.g., spoofed or mismatched) fall in this category.
func shouldTryNextServer(err error) bool {
	return !errors.Is(err, dnscore.ErrNoName) && !errors.Is(err, dnscore.ErrNoData)
}

// lookupWithServer queries a single resolver.
func (c *Checker) lookupWithServer(
	ctx context.Context, server *dnscore.ServerAddr, domain string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.lookupTimeout())
	defer cancel()

	t0 := c.timeNow()
	addrs, err := c.doLookupWithServer(ctx, server, domain)

	c.log(ctx, slog.LevelDebug, "lookupDone",
		slog.String("domain", domain),
		slog.Any("resolvedAddrs", addrs),
		slog.Any("err", err),
		slog.String("errClass", errclass.New(err)),
		slog.String("protocol", string(server.Protocol)),
		slog.String("resolver", server.Address),
		slog.Time("t0", t0),
		slog.Time("t", c.timeNow()),
	)
	return addrs, err
}

// doLookupWithServer sends the query and interprets the response.
func (c *Checker) doLookupWithServer(
	ctx context.Context, server *dnscore.ServerAddr, domain string) ([]string, error) {
	query, err := dnscore.NewQuery(domain, dns.TypeA)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", domain, err)
	}
	resp, err := c.transport().Query(ctx, server, query)
	if err != nil {
		return nil, fmt.Errorf("lookup %s on %s: %w", domain, server.Address, err)
	}
	addrs, err := responseAddrs(query, resp)
	if err != nil {
		return nil, fmt.Errorf("lookup %s on %s: %w", domain, server.Address, err)
	}
	return addrs, nil
}

// responseAddrs validates the response to query and extracts the IPv4
// addresses for the queried name, in the order in which they appear.
//
// Answers for other names are ignored, and a response that does not
// match the query is an error wrapping [dnscore.ErrInvalidResponse].
func responseAddrs(query, resp *dns.Msg) ([]string, error) {
	if err := dnscore.ValidateResponse(query, resp); err != nil {
		return nil, err
	}
	if resp.Rcode == dns.RcodeRefused {
		return nil, ErrRefused
	}
	if err := dnscore.RCodeToError(resp); err != nil {
		return nil, err
	}
	rrs, err := dnscore.ValidAnswers(query.Question[0], resp)
	if err != nil {
		return nil, err
	}
	addrs, _, err := dnscore.DecodeLookupA(rrs)
	return addrs, err
}
