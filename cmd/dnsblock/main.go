// SPDX-License-Identifier: GPL-3.0-or-later

// Command dnsblock checks whether DNS resolvers block a list of domains.
//
// It reads a JSON array of domains, resolves each domain in sequence using
// the configured resolvers, marks a domain as blocked when it resolves to
// a known sentinel address, and saves the records as a JSON array.
//
// Usage:
//
//	dnsblock [--domains domains.json] [--output check_results.json] [flags]
//
// The process exits with status 0 when it saved the results and 1 on
// any fatal error, including an interrupt.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command line and returns the exit code.
func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
