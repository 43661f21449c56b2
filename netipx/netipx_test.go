// SPDX-License-Identifier: GPL-3.0-or-later

package netipx_test

import (
	"net"
	"net/netip"
	"testing"

	"github.com/rbmk-project/dnsblock/netipx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    netip.AddrPort
		wantErr bool
	}{
		{
			name:  "bare IPv4 address",
			input: "8.8.8.8",
			want:  netip.MustParseAddrPort("8.8.8.8:53"),
		},

		{
			name:  "bare IPv6 address",
			input: "2001:4860:4860::8888",
			want:  netip.MustParseAddrPort("[2001:4860:4860::8888]:53"),
		},

		{
			name:  "IPv4 with port",
			input: "127.0.0.1:5353",
			want:  netip.MustParseAddrPort("127.0.0.1:5353"),
		},

		{
			name:  "IPv6 with port",
			input: "[::1]:5353",
			want:  netip.MustParseAddrPort("[::1]:5353"),
		},

		{
			name:  "IPv4-mapped IPv6 is unmapped",
			input: "::ffff:1.1.1.1",
			want:  netip.MustParseAddrPort("1.1.1.1:53"),
		},

		{
			name:    "domain name",
			input:   "dns.google",
			wantErr: true,
		},

		{
			name:    "domain name with port",
			input:   "dns.google:53",
			wantErr: true,
		},

		{
			name:    "zero port",
			input:   "8.8.8.8:0",
			wantErr: true,
		},

		{
			name:    "port out of range",
			input:   "8.8.8.8:65536",
			wantErr: true,
		},

		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},

		{
			name:    "truncated address",
			input:   "8.8.8",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := netipx.ParseEndpoint(tt.input, 53)
			if tt.wantErr {
				require.ErrorIs(t, err, netipx.ErrInvalidEndpoint)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddrToAddrPort(t *testing.T) {
	tests := []struct {
		name string
		addr net.Addr
		want netip.AddrPort
	}{
		{
			name: "nil address",
			addr: nil,
			want: netip.AddrPortFrom(netip.IPv6Unspecified(), 0),
		},

		{
			name: "UDP address",
			addr: &net.UDPAddr{
				IP:   net.ParseIP("8.8.8.8").To4(),
				Port: 53,
			},
			want: netip.MustParseAddrPort("8.8.8.8:53"),
		},

		{
			name: "TCP address",
			addr: &net.TCPAddr{
				IP:   net.ParseIP("2001:db8::1"),
				Port: 853,
			},
			want: netip.MustParseAddrPort("[2001:db8::1]:853"),
		},

		{
			name: "other address type",
			addr: &net.UnixAddr{},
			want: netip.AddrPortFrom(netip.IPv6Unspecified(), 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, netipx.AddrToAddrPort(tt.addr))
		})
	}
}
