// SPDX-License-Identifier: GPL-3.0-or-later

package resultset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rbmk-project/dnsblock/blocklist"
	"github.com/rbmk-project/dnsblock/checker"
	"github.com/rbmk-project/dnsblock/resultset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRecords returns a resolved, a blocked, and a failed record.
func newRecords() []*checker.Record {
	answers := map[string][]string{
		"clean.example":   {"93.184.216.34"},
		"blocked.example": {"104.18.27.120"},
	}
	c := &checker.Checker{
		Blocklist: blocklist.Default(),
		LookupFunc: func(ctx context.Context, domain string) ([]string, string, error) {
			if addrs, found := answers[domain]; found {
				return addrs, "8.8.8.8:53", nil
			}
			return nil, "8.8.8.8:53", errors.New("lookup " + domain + " on 8.8.8.8:53: no such host")
		},
		TimeNow: func() time.Time {
			return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		},
	}
	ctx := context.Background()
	return []*checker.Record{
		c.Check(ctx, "clean.example"),
		c.Check(ctx, "blocked.example"),
		c.Check(ctx, "broken.example"),
	}
}

// expectedJSON is the serialization of newRecords.
const expectedJSON = `[
  {
    "domain": "clean.example",
    "resolved_ips": [
      "93.184.216.34"
    ],
    "is_blocked": false,
    "resolver": "8.8.8.8:53",
    "timestamp": "2024-01-01T00:00:00Z"
  },
  {
    "domain": "blocked.example",
    "resolved_ips": [
      "104.18.27.120"
    ],
    "is_blocked": true,
    "resolver": "8.8.8.8:53",
    "timestamp": "2024-01-01T00:00:00Z"
  },
  {
    "domain": "broken.example",
    "error": "lookup broken.example on 8.8.8.8:53: no such host",
    "error_class": "EDNS_NONAME",
    "resolver": "8.8.8.8:53",
    "timestamp": "2024-01-01T00:00:00Z"
  }
]
`

func TestSet(t *testing.T) {
	set := &resultset.Set{}
	for _, rec := range newRecords() {
		set.Add(rec)
	}

	t.Run("preserves order", func(t *testing.T) {
		require.Equal(t, 3, set.Len())
		var domains []string
		for _, rec := range set.Records() {
			domains = append(domains, rec.Domain)
		}
		assert.Equal(t, []string{"clean.example", "blocked.example", "broken.example"}, domains)
	})

	t.Run("Summary", func(t *testing.T) {
		assert.Equal(t, resultset.Summary{Total: 3, Resolved: 2, Blocked: 1, Failed: 1}, set.Summary())
	})

	t.Run("Marshal", func(t *testing.T) {
		data, err := set.Marshal()
		require.NoError(t, err)
		assert.Equal(t, expectedJSON, string(data))
	})

	t.Run("empty set", func(t *testing.T) {
		data, err := (&resultset.Set{}).Marshal()
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})
}

func TestSetSave(t *testing.T) {
	set := &resultset.Set{}
	for _, rec := range newRecords() {
		set.Add(rec)
	}

	t.Run("creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "check_results.json")
		require.NoError(t, set.Save(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, expectedJSON, string(data))
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "check_results.json")
		require.NoError(t, os.WriteFile(path, []byte("old content, much longer than the new content"), 0600))
		require.NoError(t, (&resultset.Set{}).Save(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))

		// no temporary files are left behind
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("failure leaves no file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing-dir", "check_results.json")
		err := set.Save(path)
		assert.Error(t, err)
		_, statErr := os.Stat(path)
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	})

	t.Run("failure when the destination is a directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "check_results.json")
		require.NoError(t, os.Mkdir(path, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0600))

		assert.Error(t, set.Save(path))

		// the existing directory is untouched
		data, err := os.ReadFile(filepath.Join(path, "keep"))
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})
}
