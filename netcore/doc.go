// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package netcore provides the dialer used to reach DNS resolvers.

This package is designed to facilitate measuring the TCP and UDP
connections used for exchanging DNS messages with resolvers via the
[log/slog] package. Events are emitted at [slog.LevelDebug].

# Features

- TCP/UDP dialer compatible with the [*net.Dialer];

- [net.Conn] wrapper emitting structured events on I/O and reporting
the bytes exchanged with the resolver when closed.

Only IP endpoints can be dialed: resolvers are configured by address,
so we never need to resolve a name before talking to a resolver.
*/
package netcore
