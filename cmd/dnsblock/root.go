// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rbmk-project/dnsblock/blocklist"
	"github.com/rbmk-project/dnsblock/checker"
	"github.com/rbmk-project/dnsblock/resolverconf"
	"github.com/rbmk-project/dnsblock/runner"
	"github.com/spf13/cobra"
)

// options contains the command line options.
type options struct {
	blockedAddrs []string
	delay        time.Duration
	domainsPath  string
	logJSON      bool
	protocol     string
	resolvers    []string
	resultsPath  string
	timeout      time.Duration
	verbose      bool
}

// newRootCommand creates the root command writing logs and errors to stderr.
func newRootCommand(stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "dnsblock",
		Short: "Check whether DNS resolvers block a list of domains",
		Long: `Resolve each domain in the domain list, one at a time, and mark it as
blocked when any resolved address is a known sentinel address. Save the
outcome of every check into the output file once all domains are checked.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         opts.run,
	}
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.blockedAddrs, "blocked-ip", blocklist.DefaultAddrs(), "sentinel address meaning the domain is blocked (repeatable)")
	flags.DurationVar(&opts.delay, "delay", runner.DefaultDelay, "delay after checking each domain")
	flags.StringVar(&opts.domainsPath, "domains", runner.DefaultDomainsPath, "path of the JSON array of domains to check")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit logs as JSON lines")
	flags.StringVar(&opts.protocol, "protocol", "udp", "protocol used to query resolvers [udp|tcp]")
	flags.StringSliceVar(&opts.resolvers, "resolver", resolverconf.DefaultServers(), "resolver endpoint to query, in order (repeatable)")
	flags.StringVarP(&opts.resultsPath, "output", "o", runner.DefaultResultsPath, "path where to save the results")
	flags.DurationVar(&opts.timeout, "timeout", checker.DefaultLookupTimeout, "timeout for querying a single resolver")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "also log network events")
	return cmd
}

// errInvalidDuration indicates that a duration flag is out of range.
var errInvalidDuration = errors.New("invalid duration")

// run builds the components from the options and runs the check.
func (opts *options) run(cmd *cobra.Command, args []string) error {
	if err := opts.validate(); err != nil {
		return err
	}
	config, err := resolverconf.New(opts.protocol, opts.resolvers...)
	if err != nil {
		return err
	}
	blocked, err := blocklist.New(opts.blockedAddrs...)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.logJSON, opts.verbose)
	c := checker.New(config, blocked, logger)
	c.LookupTimeout = opts.timeout

	r := runner.New(c, logger)
	r.Delay = opts.delay
	r.DomainsPath = opts.domainsPath
	r.ResultsPath = opts.resultsPath
	return r.Run(cmd.Context())
}

// validate checks the options that no constructor checks.
func (opts *options) validate() error {
	if opts.delay < 0 {
		return fmt.Errorf("%w: --delay %s", errInvalidDuration, opts.delay)
	}
	if opts.timeout <= 0 {
		return fmt.Errorf("%w: --timeout %s", errInvalidDuration, opts.timeout)
	}
	return nil
}
