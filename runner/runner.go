// SPDX-License-Identifier: GPL-3.0-or-later

// Package runner checks a list of domains, one at a time.
//
// A [*Runner] loads the domain list, checks each domain strictly in
// sequence, waiting a fixed delay after each domain to limit the rate of
// queries sent to resolvers, and finally saves all the records at once.
//
// The run moves through the [State] values [StateInit], [StateRunning],
// and then either [StateDone] or [StateAborted]. Only two errors abort a
// run: failing to load the domain list ([*StartupError]) and failing to
// save the results ([*PersistenceError]). Lookup failures are recorded and
// never abort the run. An aborted run saves nothing.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rbmk-project/dnsblock/checker"
	"github.com/rbmk-project/dnsblock/domainlist"
	"github.com/rbmk-project/dnsblock/resultset"
)

const (
	// DefaultDomainsPath is the default path of the domain list.
	DefaultDomainsPath = "domains.json"

	// DefaultResultsPath is the default path of the results.
	DefaultResultsPath = "check_results.json"

	// DefaultDelay is the default delay after checking each domain.
	DefaultDelay = 100 * time.Millisecond
)

// State is the state of a run.
type State int32

const (
	// StateInit means we are loading the domain list.
	StateInit State = iota

	// StateRunning means we are checking domains.
	StateRunning

	// StateDone means we saved the results.
	StateDone

	// StateAborted means the run failed and nothing was saved.
	StateAborted
)

// String implements [fmt.Stringer].
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateRunning:
		return "RUNNING"
	case StateDone:
		return "DONE"
	case StateAborted:
		return "ABORTED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Runner checks the domains in a list file and saves the results.
//
// Construct using [New].
type Runner struct {
	// Checker checks each domain.
	Checker *checker.Checker

	// Delay is the delay after checking each domain.
	Delay time.Duration

	// DomainsPath is the path of the domain list.
	DomainsPath string

	// Logger is the optional structured logger. If this field
	// is nil, we will not be emitting structured logs.
	Logger *slog.Logger

	// ResultsPath is the path where to save the results.
	ResultsPath string

	// Sleep is the optional function to wait for the given duration. If
	// this field is nil, we use a timer interrupted by the context.
	Sleep func(ctx context.Context, d time.Duration) error

	// state is the current [State].
	state atomic.Int32
}

// New creates a [*Runner] using the default paths and delay.
func New(c *checker.Checker, logger *slog.Logger) *Runner {
	return &Runner{
		Checker:     c,
		Delay:       DefaultDelay,
		DomainsPath: DefaultDomainsPath,
		Logger:      logger,
		ResultsPath: DefaultResultsPath,
	}
}

// State returns the current [State].
func (r *Runner) State() State {
	return State(r.state.Load())
}

// setState updates the current [State].
func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
}

// Run loads the domains, checks them, and saves the results.
//
// A run is not reentrant: do not call Run concurrently.
func (r *Runner) Run(ctx context.Context) error {
	r.setState(StateInit)
	entries, err := domainlist.Load(r.DomainsPath)
	if err != nil {
		return r.abort(ctx, &StartupError{Path: r.DomainsPath, Err: err})
	}

	r.setState(StateRunning)
	r.log(ctx, slog.LevelInfo, "checkStart",
		slog.Int("domains", len(entries)),
		slog.String("domainsPath", r.DomainsPath),
		slog.Any("resolvers", r.Checker.Config.Addresses()),
		slog.Int("blockedAddrs", r.Checker.Blocklist.Len()),
	)

	set, err := r.Check(ctx, entries)
	if err != nil {
		return r.abort(ctx, err)
	}

	if err := set.Save(r.ResultsPath); err != nil {
		return r.abort(ctx, &PersistenceError{Path: r.ResultsPath, Err: err})
	}

	r.setState(StateDone)
	summary := set.Summary()
	r.log(ctx, slog.LevelInfo, "checkDone",
		slog.String("resultsPath", r.ResultsPath),
		slog.Int("total", summary.Total),
		slog.Int("resolved", summary.Resolved),
		slog.Int("blocked", summary.Blocked),
		slog.Int("failed", summary.Failed),
	)
	return nil
}

// Check checks the given domains in order, one at a time, waiting for
// the configured delay after each domain regardless of the outcome.
//
// The only error is the context error, returned when the context is
// done before we have checked all the domains.
func (r *Runner) Check(ctx context.Context, entries []domainlist.Entry) (*resultset.Set, error) {
	set := &resultset.Set{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set.Add(r.checkEntry(ctx, entry))
		if err := r.sleep(ctx, r.Delay); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// checkEntry checks a single entry. Entries that are not domain
// names become failed records.
func (r *Runner) checkEntry(ctx context.Context, entry domainlist.Entry) *checker.Record {
	if entry.Err != nil {
		return r.Checker.Reject(ctx, entry.Domain, entry.Err)
	}
	return r.Checker.Check(ctx, entry.Domain)
}

// sleep waits for the given duration.
func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// abort moves to [StateAborted] and logs the given error.
func (r *Runner) abort(ctx context.Context, err error) error {
	r.setState(StateAborted)
	r.log(ctx, slog.LevelError, "checkAborted", slog.Any("err", err))
	return err
}

// log emits an event when there is a logger.
func (r *Runner) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if r.Logger != nil {
		r.Logger.LogAttrs(ctx, level, msg, attrs...)
	}
}
