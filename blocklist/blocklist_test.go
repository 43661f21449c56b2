// SPDX-License-Identifier: GPL-3.0-or-later

package blocklist_test

import (
	"testing"

	"github.com/rbmk-project/dnsblock/blocklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid addresses", func(t *testing.T) {
		s, err := blocklist.New("10.0.0.1", "2001:db8::1", "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, []string{"10.0.0.1", "2001:db8::1"}, s.Addrs())
	})

	t.Run("invalid address", func(t *testing.T) {
		for _, input := range []string{"10.0.0.0/8", "10.0.0", "blocked.example", ""} {
			s, err := blocklist.New("10.0.0.1", input)
			assert.ErrorIs(t, err, blocklist.ErrInvalidAddr, input)
			assert.Nil(t, s)
		}
	})

	t.Run("empty set", func(t *testing.T) {
		s, err := blocklist.New()
		require.NoError(t, err)
		assert.False(t, s.Contains("10.0.0.1"))
		assert.Empty(t, s.Matches([]string{"10.0.0.1"}))
	})
}

func TestSetContains(t *testing.T) {
	s := blocklist.Default()

	tests := []struct {
		addr   string
		expect bool
	}{
		{"104.18.27.120", true},
		{"10.0.0.1", true},
		{"192.168.1.1", true},
		{"172.16.0.1", true},
		{"93.184.216.34", false},
		{"104.18.27.12", false},
		{"104.18.27.1200", false},
		{"10.0.0.10", false},
		{"10.0.0.2", false},
		{"::ffff:10.0.0.1", false},
		{"010.000.000.001", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.expect, s.Contains(tt.addr))
		})
	}
}

func TestSetMatches(t *testing.T) {
	s := blocklist.Default()

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, s.Matches([]string{"93.184.216.34", "93.184.216.35"}))
	})

	t.Run("preserves order and duplicates", func(t *testing.T) {
		got := s.Matches([]string{"10.0.0.1", "93.184.216.34", "104.18.27.120", "10.0.0.1"})
		assert.Equal(t, []string{"10.0.0.1", "104.18.27.120", "10.0.0.1"}, got)
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Empty(t, s.Matches(nil))
	})
}

func TestDefaultAddrsCannotBeChanged(t *testing.T) {
	addrs := blocklist.DefaultAddrs()
	addrs[0] = "93.184.216.34"
	assert.Equal(t, "192.168.1.1", blocklist.DefaultAddrs()[0])
	assert.False(t, blocklist.Default().Contains("93.184.216.34"))
	assert.Equal(t, 4, blocklist.Default().Len())
}
