// SPDX-License-Identifier: GPL-3.0-or-later

package checker

import (
	"context"
	"log/slog"
	"time"

	"github.com/rbmk-project/dnsblock/blocklist"
	"github.com/rbmk-project/dnsblock/errclass"
	"github.com/rbmk-project/dnsblock/netcore"
	"github.com/rbmk-project/dnsblock/resolverconf"
	"github.com/rbmk-project/dnscore"
)

// LevelNotice is the level used for blocked domains. It sits between
// [slog.LevelInfo] and [slog.LevelWarn].
const LevelNotice = slog.LevelInfo + 2

// DefaultLookupTimeout is the default per-resolver lookup timeout.
const DefaultLookupTimeout = 5 * time.Second

// Checker checks whether domains are blocked.
//
// Construct using [New].
//
// A [*Checker] is safe for concurrent use by multiple goroutines as long as
// you don't modify its fields after construction.
type Checker struct {
	// Blocklist contains the sentinel addresses.
	Blocklist *blocklist.Set

	// Config contains the resolvers to use.
	Config *resolverconf.Config

	// Logger is the optional structured logger. If this field
	// is nil, we will not be emitting structured logs.
	Logger *slog.Logger

	// LookupFunc is the optional function to resolve a domain. It
	// returns the addresses and the resolver that answered. If this
	// field is nil, we query the resolvers in Config using Transport.
	LookupFunc func(ctx context.Context, domain string) ([]string, string, error)

	// LookupTimeout is the optional timeout for querying a single
	// resolver. If zero, we use [DefaultLookupTimeout].
	LookupTimeout time.Duration

	// TimeNow is an optional function that returns the current time.
	// If this field is nil, the [time.Now] function will be used.
	TimeNow func() time.Time

	// Transport is the optional [*dnscore.Transport] used to query
	// resolvers. If this field is nil, we use a zero [dnscore.Transport].
	Transport *dnscore.Transport
}

// New creates a new [*Checker] whose transport dials resolvers
// using a [*netcore.Network] sharing the same logger.
func New(config *resolverconf.Config, blocked *blocklist.Set, logger *slog.Logger) *Checker {
	netx := netcore.NewNetwork(logger)
	return &Checker{
		Blocklist: blocked,
		Config:    config,
		Logger:    logger,
		Transport: &dnscore.Transport{DialContext: netx.DialContext},
	}
}

// timeNow returns the current time.
func (c *Checker) timeNow() time.Time {
	if c.TimeNow != nil {
		return c.TimeNow()
	}
	return time.Now()
}

// transport returns the transport to use.
func (c *Checker) transport() *dnscore.Transport {
	if c.Transport != nil {
		return c.Transport
	}
	return &dnscore.Transport{}
}

// lookupTimeout returns the per-resolver timeout.
func (c *Checker) lookupTimeout() time.Duration {
	if c.LookupTimeout > 0 {
		return c.LookupTimeout
	}
	return DefaultLookupTimeout
}

// Check resolves the given domain and classifies it. The returned
// [*Record] is never nil: lookup failures become failed records.
func (c *Checker) Check(ctx context.Context, domain string) *Record {
	addrs, resolver, err := c.Lookup(ctx, domain)
	t := c.timeNow().UTC()

	if err != nil {
		return c.failed(ctx, domain, resolver, err, t)
	}

	matches := c.Blocklist.Matches(addrs)
	if len(matches) > 0 {
		c.log(ctx, LevelNotice, "domainBlocked",
			slog.String("domain", domain),
			slog.Any("resolvedAddrs", addrs),
			slog.Any("blockedAddrs", matches),
			slog.String("resolver", resolver),
		)
		return newResolvedRecord(domain, addrs, true, resolver, t)
	}

	c.log(ctx, slog.LevelInfo, "domainNotBlocked",
		slog.String("domain", domain),
		slog.Any("resolvedAddrs", addrs),
		slog.String("resolver", resolver),
	)
	return newResolvedRecord(domain, addrs, false, resolver, t)
}

// Reject returns the failed [*Record] for an input entry that we cannot
// resolve at all (e.g., because it is not a string), logging it as a
// failed lookup without sending any query.
func (c *Checker) Reject(ctx context.Context, domain string, err error) *Record {
	return c.failed(ctx, domain, "", err, c.timeNow().UTC())
}

// failed logs and returns a failed [*Record].
func (c *Checker) failed(ctx context.Context, domain, resolver string, err error, t time.Time) *Record {
	class := errclass.New(err)
	c.log(ctx, slog.LevelError, "domainLookupFailed",
		slog.String("domain", domain),
		slog.Any("err", err),
		slog.String("errClass", class),
		slog.String("resolver", resolver),
	)
	return newFailedRecord(domain, err.Error(), class, resolver, t)
}

// log emits an event when there is a logger.
func (c *Checker) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if c.Logger != nil {
		c.Logger.LogAttrs(ctx, level, msg, attrs...)
	}
}
